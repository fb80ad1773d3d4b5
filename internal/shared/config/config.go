package config

import (
	"log"
	"os"
	"strings"
)

// Provider values accepted in PROVIDER.
const (
	ProviderSupabase = "supabase"
	ProviderLocal    = "local"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Provider selects where identity, entries, and objects live:
	// "supabase" (hosted backend) or "local" (Postgres + disk/S3).
	Provider string

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	StorageBucket      string

	// RoleSecrets maps an organization password to the role it grants.
	RoleSecrets map[string]string

	DatabaseURL     string
	JWTSecret       string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	supabaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/")

	provider := normalizeProvider(os.Getenv("PROVIDER"), supabaseURL)
	if provider == ProviderSupabase && supabaseURL == "" {
		log.Printf("PROVIDER=supabase requires SUPABASE_URL")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:19006")),
		Provider:           provider,
		SupabaseURL:        supabaseURL,
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "uploads"),
		RoleSecrets:        loadRoleSecrets(),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          getEnv("AWS_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Prefix:           getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:        getEnv("SSE_KMS_KEY_ID", ""),
	}
}

// loadRoleSecrets builds the organization-password to role mapping. Handlers
// never read these from the environment; they receive this map.
func loadRoleSecrets() map[string]string {
	secrets := map[string]string{}
	for env, role := range map[string]string{
		"ORG_PASSWORD_CLIENT":          "client",
		"ORG_PASSWORD_MAIN_CONSULTANT": "main_consultant",
		"ORG_PASSWORD_SUB_CONSULTANT":  "sub_consultant",
	} {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			secrets[secret] = role
		}
	}
	return secrets
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw, supabaseURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderSupabase:
		return ProviderSupabase
	case ProviderLocal:
		return ProviderLocal
	default:
		if supabaseURL != "" {
			return ProviderSupabase
		}
		return ProviderLocal
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
