package entries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"journal-backend/internal/identity"
)

// MemoryRepo is an in-memory implementation of Repo used for tests and for
// dev runs without a database.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Entry // userId -> entries
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Entry)}
}

var _ Repo = (*MemoryRepo)(nil)

func (r *MemoryRepo) List(ctx context.Context, scope identity.Scope) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	userEntries := r.data[scope.UserID]
	out := make([]Entry, len(userEntries))
	copy(out, userEntries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, scope identity.Scope, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.data[scope.UserID] {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, scope identity.Scope, title, content string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := Entry{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		UserID:    scope.UserID,
		CreatedAt: time.Now().UTC(),
	}
	r.data[scope.UserID] = append(r.data[scope.UserID], entry)
	return entry, nil
}

func (r *MemoryRepo) Update(ctx context.Context, scope identity.Scope, id string, update Update) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	userEntries := r.data[scope.UserID]
	for i := range userEntries {
		if userEntries[i].ID != id {
			continue
		}
		if update.Title != nil {
			userEntries[i].Title = *update.Title
		}
		if update.Content != nil {
			userEntries[i].Content = *update.Content
		}
		return userEntries[i], nil
	}
	return Entry{}, ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, scope identity.Scope, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	userEntries := r.data[scope.UserID]
	for i := range userEntries {
		if userEntries[i].ID == id {
			r.data[scope.UserID] = append(userEntries[:i], userEntries[i+1:]...)
			return nil
		}
	}
	return nil
}
