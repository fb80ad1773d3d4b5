package object

import (
	"context"
	"errors"
	"io"
	"time"

	"journal-backend/internal/identity"
)

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrExists is returned by Put when the key is already taken; writes
	// never overwrite.
	ErrExists = errors.New("object already exists")
)

// ObjectInfo describes one stored object in a listing.
type ObjectInfo struct {
	ID        string
	Name      string
	Size      int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the object storage contract. Keys are hierarchical
// ("{userId}/{category}/{fileName}") and every call carries the caller's
// scope so a hosted backend can enforce its own per-user policies.
type Store interface {
	List(ctx context.Context, scope identity.Scope, prefix string, limit, offset int) ([]ObjectInfo, error)
	Put(ctx context.Context, scope identity.Scope, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, scope identity.Scope, key string) error
}
