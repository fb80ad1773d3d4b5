package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenSigner issues and parses the HS256 access tokens used by the local
// provider.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner constructs a signer. An empty secret is rejected at
// bootstrap, not here.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

// Sign issues an access token for the user.
func (s *TokenSigner) Sign(user User) (string, error) {
	if strings.TrimSpace(user.ID) == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now().UTC()
	claims := tokenClaims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns the user identity it carries.
func (s *TokenSigner) Parse(token string) (User, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return User{}, ErrInvalidToken
	}
	return User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      Role(claims.Role),
	}, nil
}
