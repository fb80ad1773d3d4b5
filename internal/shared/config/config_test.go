package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "PROVIDER", "SUPABASE_URL", "SUPABASE_ANON_KEY",
		"SUPABASE_SERVICE_ROLE_KEY", "STORAGE_BUCKET", "DATABASE_URL",
		"JWT_SECRET", "OBJECT_STORE", "CORS_ALLOW_ORIGINS",
		"ORG_PASSWORD_CLIENT", "ORG_PASSWORD_MAIN_CONSULTANT", "ORG_PASSWORD_SUB_CONSULTANT",
	} {
		t.Setenv(key, "")
	}
}

func TestProviderDefaultsToLocalWithoutSupabaseURL(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Provider != ProviderLocal {
		t.Fatalf("expected local provider, got %q", cfg.Provider)
	}
}

func TestProviderDefaultsToSupabaseWithURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")

	cfg := Load()
	if cfg.Provider != ProviderSupabase {
		t.Fatalf("expected supabase provider, got %q", cfg.Provider)
	}
	if cfg.SupabaseURL != "https://abc.supabase.co" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SupabaseURL)
	}
}

func TestExplicitProviderWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("PROVIDER", "local")

	cfg := Load()
	if cfg.Provider != ProviderLocal {
		t.Fatalf("expected local provider, got %q", cfg.Provider)
	}
}

func TestRoleSecretsMapSecretToRole(t *testing.T) {
	clearEnv(t)
	t.Setenv("ORG_PASSWORD_CLIENT", "client-pass")
	t.Setenv("ORG_PASSWORD_MAIN_CONSULTANT", " main-pass ")

	cfg := Load()
	if cfg.RoleSecrets["client-pass"] != "client" {
		t.Fatalf("expected client role, got %q", cfg.RoleSecrets["client-pass"])
	}
	if cfg.RoleSecrets["main-pass"] != "main_consultant" {
		t.Fatalf("expected secret trimmed, got map %v", cfg.RoleSecrets)
	}
	if len(cfg.RoleSecrets) != 2 {
		t.Fatalf("unset secrets should be absent, got %v", cfg.RoleSecrets)
	}
}

func TestCORSOriginsSplit(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:19006, https://app.example.com ,")

	cfg := Load()
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.CORSAllowOrigin[1] != "https://app.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}
