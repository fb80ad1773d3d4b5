// Package memory implements object.Store in memory for tests.
package memory

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/storage/object"
)

type storedObject struct {
	data      []byte
	createdAt time.Time
}

// Store keeps objects in a map keyed by their full storage key.
type Store struct {
	mu      sync.RWMutex
	objects map[string]storedObject
	// Now is swappable so tests can control listing order and timestamps.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		objects: make(map[string]storedObject),
		Now:     time.Now,
	}
}

var _ object.Store = (*Store)(nil)

func (s *Store) List(ctx context.Context, scope identity.Scope, prefix string, limit, offset int) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cleanPrefix := strings.TrimSuffix(prefix, "/") + "/"
	infos := []object.ObjectInfo{}
	for key, obj := range s.objects {
		if !strings.HasPrefix(key, cleanPrefix) {
			continue
		}
		// Direct children only; keys never nest deeper in practice.
		rest := strings.TrimPrefix(key, cleanPrefix)
		if strings.Contains(rest, "/") {
			continue
		}
		infos = append(infos, object.ObjectInfo{
			ID:        key,
			Name:      path.Base(key),
			Size:      int64(len(obj.data)),
			CreatedAt: obj.createdAt,
			UpdatedAt: obj.createdAt,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	if offset >= len(infos) {
		return []object.ObjectInfo{}, nil
	}
	infos = infos[offset:]
	if limit > 0 && limit < len(infos) {
		infos = infos[:limit]
	}
	return infos, nil
}

func (s *Store) Put(ctx context.Context, scope identity.Scope, key string, r io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		return object.ErrExists
	}
	s.objects[key] = storedObject{data: data, createdAt: s.Now().UTC()}
	return nil
}

func (s *Store) Remove(ctx context.Context, scope identity.Scope, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; !exists {
		return object.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
