package server

import (
	"github.com/gin-gonic/gin"

	"journal-backend/internal/entries"
	"journal-backend/internal/identity"
	"journal-backend/internal/shared/config"
	"journal-backend/internal/shared/metrics"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
	"journal-backend/internal/uploads"
	"journal-backend/internal/users"
)

// RouterDeps carries the wired handlers into router assembly.
type RouterDeps struct {
	Config         config.Config
	Verifier       identity.Verifier
	UsersHandler   *users.Handler
	EntriesHandler *entries.Handler
	UploadsHandler *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	if deps.Config.Env == "dev" {
		api.GET("/metrics", metrics.Handler())
	}

	deps.UsersHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Verifier))
	deps.UsersHandler.RegisterProtectedRoutes(protected)
	deps.EntriesHandler.RegisterRoutes(protected)
	deps.UploadsHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
