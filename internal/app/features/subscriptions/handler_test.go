package subscriptions_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/moviehub/internal/app/features/subscriptions"
	"github.com/dalemusser/moviehub/internal/app/system/indexes"
	"github.com/dalemusser/moviehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*subscriptions.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return subscriptions.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleAdd(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fixtures.CreateMember(ctx, "Ann", "a@x.com", "NY")
	mv := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")

	body := map[string]string{"memberId": m.ID.Hex(), "movieId": mv.ID.Hex(), "watchedDate": "2024-03-01"}

	rec := httptest.NewRecorder()
	handler.HandleAdd(rec, testutil.NewJSONRequest(t, "POST", "/subs/addsubscription", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	sub := testutil.DecodeJSON(t, rec)["subscription"].(map[string]any)
	if sub["memberId"] != m.ID.Hex() || sub["movieId"] != mv.ID.Hex() {
		t.Errorf("subscription: got %v", sub)
	}
	if watched, _ := sub["watchedDate"].(string); !strings.HasPrefix(watched, "2024-03-01") {
		t.Errorf("watchedDate: got %v", sub["watchedDate"])
	}

	rec = httptest.NewRecorder()
	handler.HandleAdd(rec, testutil.NewJSONRequest(t, "POST", "/subs/addsubscription", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second add: got %d, want 400", rec.Code)
	}
	if msg := testutil.DecodeJSON(t, rec)["message"]; msg != "Member already watched this movie" {
		t.Errorf("second add message: got %v", msg)
	}
}

func TestHandleAdd_Errors(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fixtures.CreateMember(ctx, "Ann", "a@x.com", "NY")

	tests := []struct {
		name string
		body map[string]string
		want int
		msg  string
	}{
		{"missing ids", map[string]string{"memberId": m.ID.Hex()}, http.StatusBadRequest, "Member ID and Movie ID are required"},
		{"bad date", map[string]string{"memberId": m.ID.Hex(), "movieId": primitive.NewObjectID().Hex(), "watchedDate": "yesterday"}, http.StatusBadRequest, "Invalid watched date"},
		{"malformed member", map[string]string{"memberId": "nope", "movieId": primitive.NewObjectID().Hex()}, http.StatusBadRequest, "Invalid member ID format"},
		{"unknown movie", map[string]string{"memberId": m.ID.Hex(), "movieId": primitive.NewObjectID().Hex()}, http.StatusNotFound, "Movie not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.HandleAdd(rec, testutil.NewJSONRequest(t, "POST", "/subs/addsubscription", tt.body))
			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.want)
			}
			if msg := testutil.DecodeJSON(t, rec)["message"]; msg != tt.msg {
				t.Errorf("message: got %v, want %q", msg, tt.msg)
			}
		})
	}
}

func TestReadEndpoints(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ann := fixtures.CreateMember(ctx, "Ann", "a@x.com", "NY")
	bob := fixtures.CreateMember(ctx, "Bob", "b@x.com", "LA")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	alien := fixtures.CreateMovie(ctx, "Alien", "1979", "Horror")
	fixtures.CreateSubscription(ctx, ann.ID, heat.ID, time.Now())
	fixtures.CreateSubscription(ctx, ann.ID, alien.ID, time.Now())
	fixtures.CreateSubscription(ctx, bob.ID, heat.ID, time.Now())

	rec := httptest.NewRecorder()
	handler.ServeListAll(rec, testutil.NewRequest("GET", "/subs"))
	if body := testutil.DecodeJSON(t, rec); body["count"] != float64(3) {
		t.Errorf("list all count: got %v", body["count"])
	}

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/subs/members/x/movies"), "memberId", ann.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ServeMoviesByMember(rec, req)
	if body := testutil.DecodeJSON(t, rec); body["count"] != float64(2) || body["movies"] == nil {
		t.Errorf("movies by member: got %v", body)
	}

	req = testutil.WithChiURLParam(testutil.NewRequest("GET", "/subs/movies/x"), "movieId", heat.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ServeMembersByMovie(rec, req)
	if body := testutil.DecodeJSON(t, rec); body["count"] != float64(2) || body["members"] == nil {
		t.Errorf("members by movie: got %v", body)
	}

	req = testutil.WithChiURLParam(testutil.NewRequest("GET", "/subs/members/x/stats"), "memberId", ann.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ServeMemberStats(rec, req)
	data, _ := testutil.DecodeJSON(t, rec)["data"].(map[string]any)
	if data["totalMoviesWatched"] != float64(2) || data["memberId"] != ann.ID.Hex() {
		t.Errorf("member stats: got %v", data)
	}

	req = testutil.WithChiURLParam(testutil.NewRequest("GET", "/subs/movies/x/stats"), "movieId", alien.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ServeMovieStats(rec, req)
	data, _ = testutil.DecodeJSON(t, rec)["data"].(map[string]any)
	if data["totalMembersWatched"] != float64(1) {
		t.Errorf("movie stats: got %v", data)
	}

	q := "/subs/subscription?memberId=" + bob.ID.Hex() + "&movieId=" + alien.ID.Hex()
	rec = httptest.NewRecorder()
	handler.ServeGet(rec, testutil.NewRequest("GET", q))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get missing pair: got %d, want 404", rec.Code)
	}
}

func TestHandleUpdateDateAndRemove(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fixtures.CreateMember(ctx, "Ann", "a@x.com", "NY")
	mv := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateSubscription(ctx, m.ID, mv.ID, time.Now())

	rec := httptest.NewRecorder()
	handler.HandleUpdateDate(rec, testutil.NewJSONRequest(t, "PATCH", "/subs/updatedate", map[string]string{
		"memberId": m.ID.Hex(), "movieId": mv.ID.Hex(), "watchedDate": "2020-01-02",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d (%s)", rec.Code, rec.Body.String())
	}
	if msg := testutil.DecodeJSON(t, rec)["message"]; msg != "Watched date updated successfully" {
		t.Errorf("update message: got %v", msg)
	}

	pair := map[string]string{"memberId": m.ID.Hex(), "movieId": mv.ID.Hex()}
	rec = httptest.NewRecorder()
	handler.HandleRemove(rec, testutil.NewJSONRequest(t, "DELETE", "/subs/removesubscription", pair))
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.HandleRemove(rec, testutil.NewJSONRequest(t, "DELETE", "/subs/removesubscription", pair))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second remove: got %d, want 404", rec.Code)
	}
}
