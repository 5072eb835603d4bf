// Package client is a Go client for the MovieHub API. Client covers every
// route; the *Store types keep a local copy of server state for callers
// that render it (a CLI, a TUI, integration tests).
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is where a local server listens.
const DefaultBaseURL = "http://localhost:3500/api/v1"

// FallbackMessage is used when a failed response carries no message.
const FallbackMessage = "Something went wrong"

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client talks to one server. The cookie jar carries the session cookie
// between calls, so a Client represents one signed-in operator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Jar must be set
// for the session to persist.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a Client for baseURL (e.g., http://localhost:3500/api/v1).
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the server's response shape. Payload keys vary per route.
type envelope map[string]json.RawMessage

func (e envelope) message() string {
	var msg string
	if raw, ok := e["message"]; ok {
		_ = json.Unmarshal(raw, &msg)
	}
	return msg
}

// do sends the request and decodes the payload under key into out. An
// empty key or nil out skips payload decoding. The server message is
// returned on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, key string, out any) (string, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return "", fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body (a proxy error page) leaves env nil.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.message()
		if msg == "" {
			msg = FallbackMessage
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if key != "" && out != nil {
		payload, ok := env[key]
		if !ok {
			return "", fmt.Errorf("%s %s: response has no %q", method, path, key)
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return "", fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return env.message(), nil
}

// deleted decodes the subscriptionsRemoved count a cascading delete reports.
func (c *Client) deleted(ctx context.Context, path string) (int64, error) {
	var removed int64
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "subscriptionsRemoved", &removed)
	return removed, err
}
