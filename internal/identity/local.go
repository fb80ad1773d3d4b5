package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when an email is already registered.
	ErrUserExists = errors.New("email already registered")
	// ErrUserNotFound is returned when no account matches.
	ErrUserNotFound = errors.New("user not found")
)

// Account is the stored record behind the local provider.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    time.Time
}

// AccountsRepo defines persistence operations for local accounts.
type AccountsRepo interface {
	Create(ctx context.Context, account Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	SetRole(ctx context.Context, id, role string) error
}

// LocalService implements Verifier and Registrar on top of a Postgres
// accounts table. It is the development stand-in for the hosted auth
// service, mirroring its contract: bcrypt credentials, bearer tokens, a
// role claim attached after sign-up.
type LocalService struct {
	Repo   AccountsRepo
	Signer *TokenSigner
}

var (
	_ Verifier  = (*LocalService)(nil)
	_ Registrar = (*LocalService)(nil)
)

func (s *LocalService) SignUp(ctx context.Context, params SignUpParams) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || params.Password == "" {
		return Session{}, errors.New("email and password are required")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	account := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return Session{}, err
	}

	return s.sessionFor(account)
}

func (s *LocalService) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	account, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.sessionFor(account)
}

func (s *LocalService) SetRole(ctx context.Context, userID string, role Role) error {
	return s.Repo.SetRole(ctx, userID, string(role))
}

// UserFromToken parses the token, then re-reads the account so revoked or
// deleted accounts stop resolving. One store round trip per request, like
// the hosted path.
func (s *LocalService) UserFromToken(ctx context.Context, token string) (User, error) {
	claims, err := s.Signer.Parse(token)
	if err != nil {
		return User{}, err
	}
	account, err := s.Repo.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidToken
		}
		return User{}, err
	}
	return accountUser(account), nil
}

func (s *LocalService) sessionFor(account Account) (Session, error) {
	user := accountUser(account)
	token, err := s.Signer.Sign(user)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{User: user, AccessToken: token}, nil
}

func accountUser(account Account) User {
	return User{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Role:      Role(account.Role),
	}
}
