package entries

import (
	"context"

	"journal-backend/internal/identity"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "entry not found" }

// Repo defines persistence operations for entries. Every call carries the
// caller's scope so the backing store can enforce per-user access itself.
type Repo interface {
	List(ctx context.Context, scope identity.Scope) ([]Entry, error)
	Get(ctx context.Context, scope identity.Scope, id string) (Entry, error)
	Create(ctx context.Context, scope identity.Scope, title, content string) (Entry, error)
	Update(ctx context.Context, scope identity.Scope, id string, update Update) (Entry, error)
	Delete(ctx context.Context, scope identity.Scope, id string) error
}
