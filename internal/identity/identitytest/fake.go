// Package identitytest provides an in-memory identity provider for handler
// tests, substituting for the hosted auth service.
package identitytest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"journal-backend/internal/identity"
)

// Fake implements identity.Verifier and identity.Registrar in memory.
// Tokens are opaque strings mapped straight to user ids.
type Fake struct {
	mu       sync.RWMutex
	users    map[string]identity.User // by id
	byEmail  map[string]string        // email -> id
	tokens   map[string]string        // token -> user id
	pass     map[string]string        // id -> password
	SignUpN  int
	SignInN  int
	SetRoleN int
}

func New() *Fake {
	return &Fake{
		users:   make(map[string]identity.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string]string),
		pass:    make(map[string]string),
	}
}

var (
	_ identity.Verifier  = (*Fake)(nil)
	_ identity.Registrar = (*Fake)(nil)
)

func (f *Fake) SignUp(ctx context.Context, params identity.SignUpParams) (identity.Session, error) {
	if err := ctx.Err(); err != nil {
		return identity.Session{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignUpN++

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if _, exists := f.byEmail[email]; exists {
		return identity.Session{}, identity.ErrUserExists
	}

	user := identity.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}
	f.users[user.ID] = user
	f.byEmail[email] = user.ID
	f.pass[user.ID] = params.Password

	token := f.issueToken(user.ID)
	return identity.Session{User: user, AccessToken: token}, nil
}

func (f *Fake) SignInWithPassword(ctx context.Context, email, password string) (identity.Session, error) {
	if err := ctx.Err(); err != nil {
		return identity.Session{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignInN++

	id, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok || f.pass[id] != password {
		return identity.Session{}, identity.ErrInvalidCredentials
	}
	user := f.users[id]
	return identity.Session{User: user, AccessToken: f.issueToken(id)}, nil
}

func (f *Fake) SetRole(ctx context.Context, userID string, role identity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetRoleN++

	user, ok := f.users[userID]
	if !ok {
		return identity.ErrUserNotFound
	}
	user.Role = role
	f.users[userID] = user
	return nil
}

func (f *Fake) UserFromToken(ctx context.Context, token string) (identity.User, error) {
	if err := ctx.Err(); err != nil {
		return identity.User{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	id, ok := f.tokens[token]
	if !ok {
		return identity.User{}, identity.ErrInvalidToken
	}
	return f.users[id], nil
}

// Seed registers a user directly and returns it with a valid token.
func (f *Fake) Seed(email string, role identity.Role) (identity.User, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := identity.User{
		ID:    uuid.NewString(),
		Email: email,
		Role:  role,
	}
	f.users[user.ID] = user
	f.byEmail[email] = user.ID
	return user, f.issueToken(user.ID)
}

func (f *Fake) issueToken(userID string) string {
	token := fmt.Sprintf("fake-token-%s-%d", userID, len(f.tokens))
	f.tokens[token] = userID
	return token
}
