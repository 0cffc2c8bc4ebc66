package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. It reports false when
// no token is present, in which case the request goes out without an
// Authorization header. session.Manager.Token satisfies this signature.
type TokenSource func() (string, bool)

// Client is the single outbound call path to the backend. Every request
// carries the current bearer token when one is present; a 401 response
// triggers the configured unauthorized hook exactly once before the
// error is returned to the caller. The client never retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func(context.Context)
	log            *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithOnUnauthorized sets the hook invoked when the backend answers
// with 401. Wire this to session.Manager.Logout so an invalidated
// token forces a logout.
func WithOnUnauthorized(fn func(context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
// Default: 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger for request diagnostics.
// Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a gateway client for the backend at baseURL.
//
// Example:
//
//	api, err := gateway.New("https://api.locallink.example",
//	    gateway.WithTokenSource(sessions.Token),
//	    gateway.WithOnUnauthorized(func(ctx context.Context) {
//	        _ = sessions.Logout(ctx)
//	    }),
//	)
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrRequestFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}
	return nil
}
