package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Config holds the connection settings for a hosted Supabase project.
type Config struct {
	URL        string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

// Client is the low-level REST transport shared by the identity, entries,
// and storage adapters. It only knows how to build requests; each adapter
// owns its endpoints.
type Client struct {
	http       *resty.Client
	anonKey    string
	serviceKey string
}

// New validates the project URL and constructs the transport.
func New(cfg Config) (*Client, error) {
	base, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cli := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout)

	return &Client{
		http:       cli,
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
	}, nil
}

// R builds a request authorized with the caller's token, falling back to the
// anonymous key when no token is supplied. The apikey header is always the
// anonymous key so the project's row-level policies apply.
func (c *Client) R(ctx context.Context, token string) *resty.Request {
	bearer := strings.TrimSpace(token)
	if bearer == "" {
		bearer = c.anonKey
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetHeader("Authorization", "Bearer "+bearer)
}

// AdminR builds a request authorized with the privileged service key.
func (c *Client) AdminR(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetHeader("Authorization", "Bearer "+c.serviceKey)
}

// APIError is a non-2xx answer from the hosted service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %d %s", e.StatusCode, e.Message)
}

// CheckResponse converts a non-2xx response into an *APIError, extracting the
// service's message from the body when one is present.
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    messageFromBody(resp.Body(), resp.Status()),
	}
}

// messageFromBody pulls the human-readable message out of the varying error
// shapes the auth, rest, and storage services answer with.
func messageFromBody(body []byte, fallback string) string {
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Err              string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Msg, payload.ErrorDescription, payload.Err} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return fallback
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}
	return strings.TrimRight(u.String(), "/"), nil
}
