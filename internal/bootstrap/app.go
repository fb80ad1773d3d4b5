package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/entries"
	"journal-backend/internal/identity"
	"journal-backend/internal/shared/config"
	"journal-backend/internal/shared/server"
	"journal-backend/internal/shared/storage/db"
	"journal-backend/internal/shared/storage/object"
	localstore "journal-backend/internal/shared/storage/object/local"
	s3store "journal-backend/internal/shared/storage/object/s3"
	"journal-backend/internal/shared/storage/object/supabasestore"
	"journal-backend/internal/shared/supabase"
	"journal-backend/internal/uploads"
	"journal-backend/internal/users"
)

// devJWTSecret signs local tokens when JWT_SECRET is unset in dev. Never
// used outside dev-like environments.
const devJWTSecret = "dev-secret"

// App holds the wired dependencies for one running process.
type App struct {
	Config config.Config
	Router *gin.Engine

	// DB is nil when the supabase provider or the in-memory fallback is
	// active.
	DB *sql.DB

	Verifier    identity.Verifier
	Registrar   identity.Registrar
	EntriesRepo entries.Repo
	Store       object.Store

	UsersHandler   *users.Handler
	EntriesHandler *entries.Handler
	UploadsHandler *uploads.Handler
}

// Build wires the provider stack selected by cfg.Provider and assembles the
// router on top of it.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	var err error
	switch cfg.Provider {
	case config.ProviderSupabase:
		err = buildSupabase(app, cfg)
	case config.ProviderLocal:
		err = buildLocal(ctx, app, cfg)
	default:
		err = fmt.Errorf("unknown PROVIDER %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	app.UsersHandler = users.NewHandler(app.Registrar, cfg.RoleSecrets)
	app.EntriesHandler = entries.NewHandler(app.EntriesRepo)
	app.UploadsHandler = uploads.NewHandler(app.Store)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Verifier:       app.Verifier,
		UsersHandler:   app.UsersHandler,
		EntriesHandler: app.EntriesHandler,
		UploadsHandler: app.UploadsHandler,
	})

	return app, nil
}

// buildSupabase delegates auth, rows, and objects to the hosted project.
// One shared client carries the anon and service keys.
func buildSupabase(app *App, cfg config.Config) error {
	client, err := supabase.New(supabase.Config{
		URL:        cfg.SupabaseURL,
		AnonKey:    cfg.SupabaseAnonKey,
		ServiceKey: cfg.SupabaseServiceKey,
	})
	if err != nil {
		return fmt.Errorf("supabase client: %w", err)
	}

	store, err := supabasestore.New(client, cfg.StorageBucket)
	if err != nil {
		return fmt.Errorf("supabase store: %w", err)
	}

	svc := &identity.SupabaseService{Client: client}
	app.Verifier = svc
	app.Registrar = svc
	app.EntriesRepo = &entries.SupabaseRepo{Client: client}
	app.Store = store
	return nil
}

// buildLocal runs the whole stack in-process: Postgres-backed accounts and
// entries (with an in-memory fallback in dev), HS256 tokens, and a disk or
// S3 object store.
func buildLocal(ctx context.Context, app *App, cfg config.Config) error {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !isDevLike(cfg.Env) {
			return fmt.Errorf("JWT_SECRET is required when PROVIDER=local")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using the dev signing secret")
		secret = devJWTSecret
	}
	signer := identity.NewTokenSigner(secret, 0)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return err
	}
	app.DB = sqlDB

	var accounts identity.AccountsRepo
	if sqlDB != nil {
		accounts = &identity.PGAccountsRepo{DB: sqlDB}
		app.EntriesRepo = &entries.PGRepo{DB: sqlDB}
	} else {
		accounts = identity.NewMemoryAccountsRepo()
		app.EntriesRepo = entries.NewMemoryRepo()
	}

	svc := &identity.LocalService{Repo: accounts, Signer: signer}
	app.Verifier = svc
	app.Registrar = svc

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	app.Store = store
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required when PROVIDER=local")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
