package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalService() *LocalService {
	return &LocalService{
		Repo:   NewMemoryAccountsRepo(),
		Signer: NewTokenSigner("test-secret", time.Hour),
	}
}

func TestLocalServiceSignUpAndSignIn(t *testing.T) {
	svc := newLocalService()
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpParams{
		Email:     "Ada@Example.com",
		Password:  "pass123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEmpty(t, session.AccessToken)

	// Token round-trips through the verifier side.
	user, err := svc.UserFromToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)

	signIn, err := svc.SignInWithPassword(ctx, "ada@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, signIn.User.ID)
}

func TestLocalServiceRejectsDuplicateEmail(t *testing.T) {
	svc := newLocalService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpParams{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, SignUpParams{Email: "A@Example.com", Password: "y"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLocalServiceRejectsBadPassword(t *testing.T) {
	svc := newLocalService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpParams{Email: "a@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.SignInWithPassword(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignInWithPassword(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalServiceSetRoleSurvivesTokenVerification(t *testing.T) {
	svc := newLocalService()
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpParams{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.SetRole(ctx, session.User.ID, RoleMainConsultant))

	// Verification re-reads the account, so the role set after sign-up is
	// visible even though the token predates it.
	user, err := svc.UserFromToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleMainConsultant, user.Role)
}

func TestLocalServiceTokenForDeletedAccountFails(t *testing.T) {
	repo := NewMemoryAccountsRepo()
	svc := &LocalService{Repo: repo, Signer: NewTokenSigner("test-secret", time.Hour)}
	ctx := context.Background()

	signer := svc.Signer
	token, err := signer.Sign(User{ID: "ghost-user"})
	require.NoError(t, err)

	_, err = svc.UserFromToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
