package identity

// Role is one of the three fixed roles assigned at registration.
type Role string

const (
	RoleClient         Role = "client"
	RoleMainConsultant Role = "main_consultant"
	RoleSubConsultant  Role = "sub_consultant"
)

// ResolveRole maps an organization password to the role it grants via exact
// match against the configured secrets. It reads no ambient state.
func ResolveRole(secret string, secrets map[string]string) (Role, bool) {
	if secret == "" {
		return "", false
	}
	role, ok := secrets[secret]
	if !ok {
		return "", false
	}
	switch Role(role) {
	case RoleClient, RoleMainConsultant, RoleSubConsultant:
		return Role(role), true
	default:
		return "", false
	}
}
