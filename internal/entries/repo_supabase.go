package entries

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/supabase"
)

// pgrstSingular asks PostgREST for exactly one object instead of an array.
const pgrstSingular = "application/vnd.pgrst.object+json"

// SupabaseRepo implements Repo against the hosted REST layer. The caller's
// token rides on every request, so the project's row-level policies decide
// what each user can see and touch.
type SupabaseRepo struct {
	Client *supabase.Client
}

var _ Repo = (*SupabaseRepo)(nil)

func (r *SupabaseRepo) List(ctx context.Context, scope identity.Scope) ([]Entry, error) {
	var out []Entry
	resp, err := r.Client.R(ctx, scope.Token).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&out).
		Get("/rest/v1/entries")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

func (r *SupabaseRepo) Get(ctx context.Context, scope identity.Scope, id string) (Entry, error) {
	var out Entry
	resp, err := r.Client.R(ctx, scope.Token).
		SetHeader("Accept", pgrstSingular).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetResult(&out).
		Get("/rest/v1/entries")
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		if isNoRows(err) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return out, nil
}

func (r *SupabaseRepo) Create(ctx context.Context, scope identity.Scope, title, content string) (Entry, error) {
	var out Entry
	resp, err := r.Client.R(ctx, scope.Token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", pgrstSingular).
		SetHeader("Prefer", "return=representation").
		SetBody(map[string]string{
			"title":   title,
			"content": content,
			"user_id": scope.UserID,
		}).
		SetResult(&out).
		Post("/rest/v1/entries")
	if err != nil {
		return Entry{}, fmt.Errorf("create entry: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return Entry{}, err
	}
	return out, nil
}

func (r *SupabaseRepo) Update(ctx context.Context, scope identity.Scope, id string, update Update) (Entry, error) {
	body := map[string]string{}
	if update.Title != nil {
		body["title"] = *update.Title
	}
	if update.Content != nil {
		body["content"] = *update.Content
	}

	var out Entry
	resp, err := r.Client.R(ctx, scope.Token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", pgrstSingular).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetBody(body).
		SetResult(&out).
		Patch("/rest/v1/entries")
	if err != nil {
		return Entry{}, fmt.Errorf("update entry: %w", err)
	}
	if err := supabase.CheckResponse(resp); err != nil {
		return Entry{}, err
	}
	return out, nil
}

func (r *SupabaseRepo) Delete(ctx context.Context, scope identity.Scope, id string) error {
	resp, err := r.Client.R(ctx, scope.Token).
		SetQueryParam("id", "eq."+id).
		Delete("/rest/v1/entries")
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return supabase.CheckResponse(resp)
}

// isNoRows reports whether the REST layer answered "zero rows" to a request
// that demanded exactly one object.
func isNoRows(err error) bool {
	var apiErr *supabase.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotAcceptable
}
