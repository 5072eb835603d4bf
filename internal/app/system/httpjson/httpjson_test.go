package httpjson_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/goccy/go-json"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Fail(rec, http.StatusNotFound, "Movie not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success: got %v", body["success"])
	}
	if body["message"] != "Movie not found" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestFromResult_List(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.FromResult(rec, result.List([]string{"a", "b"}, "2 found"), "movies")

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["count"] != float64(2) {
		t.Errorf("count: got %v", body["count"])
	}
	if items, ok := body["movies"].([]any); !ok || len(items) != 2 {
		t.Errorf("movies: got %v", body["movies"])
	}
}

func TestFromResult_EmptyListEncodesArray(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.FromResult(rec, result.List[int](nil, ""), "members")

	if !strings.Contains(rec.Body.String(), `"members":[]`) {
		t.Errorf("body: %s", rec.Body.String())
	}
	if _, ok := decodeBody(t, rec)["message"]; ok {
		t.Error("empty message should be omitted")
	}
}

func TestFromResult_Created(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.FromResult(rec, result.Created(map[string]string{"name": "Heat"}, "Movie created"), "movie")

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	body := decodeBody(t, rec)
	if _, ok := body["count"]; ok {
		t.Error("count should be absent for single results")
	}
}

func TestFromResult_Failure(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.FromResult(rec, result.Conflict[string]("Movie name already exists"), "movie")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if _, ok := body["movie"]; ok {
		t.Error("payload key should be absent on failure")
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Heat"}`))
	if err := httpjson.Decode(httptest.NewRecorder(), req, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Name != "Heat" {
		t.Errorf("Name: got %q", v.Name)
	}

	for _, in := range []string{"", "{", "not json"} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(in))
		if err := httpjson.Decode(httptest.NewRecorder(), req, &v); !errors.Is(err, httpjson.ErrBadBody) {
			t.Errorf("Decode(%q): got %v, want ErrBadBody", in, err)
		}
	}
}
