// Package local implements object.Store on the local filesystem, the dev
// substitute for hosted bucket storage.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/storage/object"
)

// Store keeps objects as plain files under baseDir, mirroring the
// "{userId}/{category}/{fileName}" key hierarchy as directories.
type Store struct {
	baseDir string
}

// New creates a local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

var _ object.Store = (*Store)(nil)

func (s *Store) List(ctx context.Context, scope identity.Scope, prefix string, limit, offset int) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []object.ObjectInfo{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}

	infos := make([]object.ObjectInfo, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, object.ObjectInfo{
			ID:        prefix + "/" + entry.Name(),
			Name:      entry.Name(),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().UTC(),
			UpdatedAt: fi.ModTime().UTC(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
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

// Put writes the object with create-if-absent semantics; an existing file
// at the key is a conflict, never an overwrite.
func (s *Store) Put(ctx context.Context, scope identity.Scope, key string, r io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return object.ErrExists
		}
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, scope identity.Scope, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// resolve maps a key onto baseDir, rejecting traversal.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}
