package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGAccountsRepo implements AccountsRepo using Postgres.
type PGAccountsRepo struct {
	DB *sql.DB
}

func (r *PGAccountsRepo) Create(ctx context.Context, account Account) error {
	const query = `
INSERT INTO accounts (id, email, password_hash, first_name, last_name, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		nullableString(account.FirstName),
		nullableString(account.LastName),
		nullableString(account.Role),
		account.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUserExists
	}
	return err
}

func (r *PGAccountsRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, role, created_at
FROM accounts
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGAccountsRepo) GetByID(ctx context.Context, id string) (Account, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, role, created_at
FROM accounts
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGAccountsRepo) SetRole(ctx context.Context, id, role string) error {
	const query = `UPDATE accounts SET role = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PGAccountsRepo) scanOne(row *sql.Row) (Account, error) {
	var account Account
	var firstName, lastName, role sql.NullString
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&firstName,
		&lastName,
		&role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, err
	}
	if firstName.Valid {
		account.FirstName = firstName.String
	}
	if lastName.Valid {
		account.LastName = lastName.String
	}
	if role.Valid {
		account.Role = role.String
	}
	return account, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ AccountsRepo = (*PGAccountsRepo)(nil)
