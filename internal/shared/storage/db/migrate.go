package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// migrationsFS embeds the accounts and entries schema used by the local
// provider; the hosted provider manages its own schema.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies embedded SQL migrations via goose. A nil database is
// a no-op so the in-memory dev fallback skips migration entirely.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
