package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/server/respond"
)

const (
	userIDKey = "userId"
	userKey   = "authUser"
	tokenKey  = "authToken"
)

// Auth resolves the bearer token through the identity provider and stores
// the user plus a caller-scoped access handle in the request context. Every
// protected request costs one provider round trip; nothing is cached.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		token := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		}
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "No token provided", "")
			return
		}

		user, err := verifier.UserFromToken(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// UserFromContext fetches the user stored by the auth middleware.
func UserFromContext(c *gin.Context) identity.User {
	if c == nil {
		return identity.User{}
	}
	val, _ := c.Get(userKey)
	if user, ok := val.(identity.User); ok {
		return user
	}
	return identity.User{}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// ScopeFromContext builds the caller-scoped access handle used by
// repositories and object stores.
func ScopeFromContext(c *gin.Context) identity.Scope {
	scope := identity.Scope{UserID: UserIDFromContext(c)}
	if c == nil {
		return scope
	}
	if val, ok := c.Get(tokenKey); ok {
		if token, ok2 := val.(string); ok2 {
			scope.Token = token
		}
	}
	return scope
}
