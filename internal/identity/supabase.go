package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"journal-backend/internal/shared/supabase"
)

// SupabaseService implements Verifier and Registrar against the hosted
// auth service. Role claims live in the user's app metadata and are written
// with the privileged key; everything else uses the caller's own token.
type SupabaseService struct {
	Client *supabase.Client
}

var (
	_ Verifier  = (*SupabaseService)(nil)
	_ Registrar = (*SupabaseService)(nil)
)

// gotrueUser is the wire shape of an auth user record.
type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user_metadata"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

type gotrueSession struct {
	AccessToken string     `json:"access_token"`
	User        gotrueUser `json:"user"`
}

func (u gotrueUser) toUser() User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.UserMetadata.FirstName,
		LastName:  u.UserMetadata.LastName,
		Role:      Role(u.AppMetadata.Role),
	}
}

// SignUp creates the account and returns the session issued for it.
func (s *SupabaseService) SignUp(ctx context.Context, params SignUpParams) (Session, error) {
	var out gotrueSession
	resp, err := s.Client.R(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"email":    params.Email,
			"password": params.Password,
			"data": map[string]string{
				"firstName": params.FirstName,
				"lastName":  params.LastName,
			},
		}).
		SetResult(&out).
		Post("/auth/v1/signup")
	if err != nil {
		return Session{}, fmt.Errorf("signup request: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return Session{}, err
	}
	return Session{User: out.User.toUser(), AccessToken: out.AccessToken}, nil
}

// SignInWithPassword exchanges credentials for a session. Any provider
// failure is reported as ErrInvalidCredentials; the provider's message is
// intentionally not surfaced on this path.
func (s *SupabaseService) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	var out gotrueSession
	resp, err := s.Client.R(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/auth/v1/token")
	if err != nil {
		return Session{}, fmt.Errorf("sign-in request: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return Session{}, ErrInvalidCredentials
	}
	return Session{User: out.User.toUser(), AccessToken: out.AccessToken}, nil
}

// SetRole attaches the role claim to the user's app metadata. Privileged.
func (s *SupabaseService) SetRole(ctx context.Context, userID string, role Role) error {
	resp, err := s.Client.AdminR(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"app_metadata": map[string]string{"role": string(role)},
		}).
		Put("/auth/v1/admin/users/" + userID)
	if err != nil {
		return fmt.Errorf("set role request: %w", err)
	}
	return supabase.CheckResponse(resp)
}

// UserFromToken resolves a bearer token to its user record.
func (s *SupabaseService) UserFromToken(ctx context.Context, token string) (User, error) {
	var out gotrueUser
	resp, err := s.Client.R(ctx, token).
		SetResult(&out).
		Get("/auth/v1/user")
	if err != nil {
		return User{}, fmt.Errorf("get user request: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return User{}, ErrInvalidToken
		}
		return User{}, err
	}
	if out.ID == "" {
		return User{}, ErrInvalidToken
	}
	return out.toUser(), nil
}
