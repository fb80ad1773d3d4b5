package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken is returned when a bearer token cannot be resolved to a user.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned on failed password sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the identity-provider-owned record for an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Session pairs a user with the access token issued for it.
type Session struct {
	User        User
	AccessToken string
}

// Scope carries the caller's identity into repositories and stores so the
// backing service enforces access with the caller's own permissions rather
// than a privileged service identity.
type Scope struct {
	UserID string
	Token  string
}

// SignUpParams is the input to account creation.
type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Verifier resolves bearer tokens to users. One provider round trip per
// request; results are not cached.
type Verifier interface {
	UserFromToken(ctx context.Context, token string) (User, error)
}

// Registrar creates accounts and sessions with the identity provider.
// SetRole is a privileged call that attaches the role claim after sign-up.
type Registrar interface {
	SignUp(ctx context.Context, params SignUpParams) (Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	SetRole(ctx context.Context, userID string, role Role) error
}
