package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperatorUser returns a signed-in operator for handler tests.
func OperatorUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test Operator",
		Username: "operator",
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, u)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request whose body is body encoded as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON parses a recorded response body into a generic map.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return out
}
