package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	secrets := map[string]string{
		"client-pass": "client",
		"main-pass":   "main_consultant",
		"sub-pass":    "sub_consultant",
		"weird-pass":  "superuser",
	}

	role, ok := ResolveRole("client-pass", secrets)
	assert.True(t, ok)
	assert.Equal(t, RoleClient, role)

	role, ok = ResolveRole("main-pass", secrets)
	assert.True(t, ok)
	assert.Equal(t, RoleMainConsultant, role)

	role, ok = ResolveRole("sub-pass", secrets)
	assert.True(t, ok)
	assert.Equal(t, RoleSubConsultant, role)
}

func TestResolveRoleRejectsUnknownSecret(t *testing.T) {
	secrets := map[string]string{"client-pass": "client"}

	_, ok := ResolveRole("wrong", secrets)
	assert.False(t, ok)

	_, ok = ResolveRole("", secrets)
	assert.False(t, ok)
}

func TestResolveRoleRejectsUnknownRoleName(t *testing.T) {
	// A secret mapped to a role outside the fixed set never resolves.
	secrets := map[string]string{"weird-pass": "superuser"}

	_, ok := ResolveRole("weird-pass", secrets)
	assert.False(t, ok)
}
