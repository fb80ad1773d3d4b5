package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
)

// Handler serves registration, login, and the current-user endpoint.
type Handler struct {
	Registrar identity.Registrar

	// RoleSecrets maps organization passwords to roles; injected from
	// config, never read from the environment here.
	RoleSecrets map[string]string
}

// NewHandler constructs a Handler.
func NewHandler(registrar identity.Registrar, roleSecrets map[string]string) *Handler {
	return &Handler{Registrar: registrar, RoleSecrets: roleSecrets}
}

// RegisterPublicRoutes attaches the unauthenticated identity routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.register)
	rg.POST("/users/login", h.login)
}

// RegisterProtectedRoutes attaches routes that require a bearer token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.me)
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	OrgPassword string `json:"orgPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Please add all fields", "")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.OrgPassword == "" {
		respond.Error(c, http.StatusBadRequest, "Please add all fields", "")
		return
	}

	// The organization password gates registration before any provider
	// call is made.
	role, ok := identity.ResolveRole(req.OrgPassword, h.RoleSecrets)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "Enter a valid org password", "")
		return
	}

	session, err := h.Registrar.SignUp(c.Request.Context(), identity.SignUpParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Signup failed", err.Error())
		return
	}

	// Second, privileged call: attach the resolved role as a claim.
	if err := h.Registrar.SetRole(c.Request.Context(), session.User.ID, role); err != nil {
		respond.Error(c, http.StatusBadRequest, "Role assignment failed", err.Error())
		return
	}

	respond.JSON(c, http.StatusCreated, userResponse{
		ID:        session.User.ID,
		Email:     session.User.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      string(role),
		Token:     session.AccessToken,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Please add all fields", "")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "Please add all fields", "")
		return
	}

	// Deliberately vaguer than registration: the provider's message is
	// never echoed on a failed login.
	session, err := h.Registrar.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid credentials", "")
		return
	}

	respond.OK(c, userResponse{
		ID:        session.User.ID,
		Email:     session.User.Email,
		FirstName: session.User.FirstName,
		LastName:  session.User.LastName,
		Role:      string(session.User.Role),
		Token:     session.AccessToken,
	})
}

func (h *Handler) me(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user.ID == "" {
		respond.Error(c, http.StatusNotFound, "User not found", "")
		return
	}
	respond.OK(c, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	})
}
