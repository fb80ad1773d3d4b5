package entries

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"journal-backend/internal/identity"
)

// PGRepo implements Repo using Postgres. The caller's user id scopes every
// statement, standing in for the hosted store's row-level policies.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func (r *PGRepo) List(ctx context.Context, scope identity.Scope) ([]Entry, error) {
	const query = `
SELECT id, title, content, user_id, created_at
FROM entries
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, scope.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.UserID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, scope identity.Scope, id string) (Entry, error) {
	const query = `
SELECT id, title, content, user_id, created_at
FROM entries
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var entry Entry
	err := r.DB.QueryRowContext(ctx, query, scope.UserID, id).Scan(
		&entry.ID,
		&entry.Title,
		&entry.Content,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *PGRepo) Create(ctx context.Context, scope identity.Scope, title, content string) (Entry, error) {
	const query = `
INSERT INTO entries (id, title, content, user_id, created_at)
VALUES (gen_random_uuid(), $1, $2, $3, now())
RETURNING id, title, content, user_id, created_at`
	var entry Entry
	err := r.DB.QueryRowContext(ctx, query, title, content, scope.UserID).Scan(
		&entry.ID,
		&entry.Title,
		&entry.Content,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *PGRepo) Update(ctx context.Context, scope identity.Scope, id string, update Update) (Entry, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if update.Title != nil {
		args = append(args, *update.Title)
		sets = append(sets, "title = $"+strconv.Itoa(len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		sets = append(sets, "content = $"+strconv.Itoa(len(args)))
	}

	args = append(args, scope.UserID)
	userArg := strconv.Itoa(len(args))
	args = append(args, id)
	idArg := strconv.Itoa(len(args))

	query := `
UPDATE entries
SET ` + strings.Join(sets, ", ") + `
WHERE user_id = $` + userArg + ` AND id = $` + idArg + `
RETURNING id, title, content, user_id, created_at`

	var entry Entry
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.Title,
		&entry.Content,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *PGRepo) Delete(ctx context.Context, scope identity.Scope, id string) error {
	const query = `DELETE FROM entries WHERE user_id = $1 AND id = $2`
	_, err := r.DB.ExecContext(ctx, query, scope.UserID, id)
	return err
}
