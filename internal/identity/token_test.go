package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	user := User{
		ID:        "user-1",
		Email:     "a@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      RoleClient,
	}
	token, err := signer.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user, parsed)
}

func TestTokenSignerRejectsWrongSecret(t *testing.T) {
	signer := NewTokenSigner("secret-a", time.Hour)
	other := NewTokenSigner("secret-b", time.Hour)

	token, err := signer.Sign(User{ID: "user-1"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignerRejectsExpiredToken(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Nanosecond)

	token, err := signer.Sign(User{ID: "user-1"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignerRejectsGarbage(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	_, err := signer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignRequiresUserID(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	_, err := signer.Sign(User{Email: "a@example.com"})
	assert.Error(t, err)
}
