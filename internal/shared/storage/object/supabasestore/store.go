// Package supabasestore implements object.Store against the hosted storage
// service. The caller's token rides on every call, so the project's bucket
// policies decide who may read or write each path.
package supabasestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/storage/object"
	"journal-backend/internal/shared/supabase"
)

// Store is a bucket-scoped storage adapter.
type Store struct {
	Client *supabase.Client
	Bucket string
}

// New constructs the adapter.
func New(client *supabase.Client, bucket string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &Store{Client: client, Bucket: bucket}, nil
}

var _ object.Store = (*Store)(nil)

// listItem is the wire shape of one listing row. Size hides inside the
// object's metadata blob.
type listItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Metadata  struct {
		Size int64 `json:"size"`
	} `json:"metadata"`
}

func (s *Store) List(ctx context.Context, scope identity.Scope, prefix string, limit, offset int) ([]object.ObjectInfo, error) {
	var items []listItem
	resp, err := s.Client.R(ctx, scope.Token).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"prefix": prefix,
			"limit":  limit,
			"offset": offset,
			"sortBy": map[string]string{"column": "created_at", "order": "desc"},
		}).
		SetResult(&items).
		Post("/storage/v1/object/list/" + s.Bucket)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return nil, err
	}

	out := make([]object.ObjectInfo, 0, len(items))
	for _, item := range items {
		// Folder placeholders come back with a null id; skip them.
		if item.ID == "" {
			continue
		}
		out = append(out, object.ObjectInfo{
			ID:        item.ID,
			Name:      item.Name,
			Size:      item.Metadata.Size,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, scope identity.Scope, key string, r io.Reader, size int64, contentType string) error {
	req := s.Client.R(ctx, scope.Token).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(r)
	if size > 0 {
		req.SetHeader("Content-Length", strconv.FormatInt(size, 10))
	}
	resp, err := req.Post("/storage/v1/object/" + s.Bucket + "/" + key)
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return object.ErrExists
		}
		return err
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, scope identity.Scope, key string) error {
	resp, err := s.Client.R(ctx, scope.Token).
		Delete("/storage/v1/object/" + s.Bucket + "/" + key)
	if err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return object.ErrNotFound
		}
		return err
	}
	return nil
}
