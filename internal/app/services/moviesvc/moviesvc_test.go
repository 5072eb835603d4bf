package moviesvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/moviehub/internal/app/services/moviesvc"
	"github.com/dalemusser/moviehub/internal/app/system/indexes"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/dalemusser/moviehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newService(t *testing.T) (*moviesvc.Service, *testutil.Fixtures, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return moviesvc.New(db), testutil.NewFixtures(t, db), ctx
}

func TestCreate(t *testing.T) {
	svc, _, ctx := newService(t)

	res, err := svc.Create(ctx, moviesvc.Input{
		Name:          "Matrix",
		YearPremiered: "1999",
		Genres:        []string{"Sci-Fi", " sci-fi ", "Action", ""},
		ImageURL:      "http://x/y.jpg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.Is(result.CodeCreated) || res.StatusCode != 201 {
		t.Fatalf("got %+v, want created", res)
	}
	m := res.Data
	if m.ID.IsZero() || m.Name != "Matrix" || m.YearPremiered != "1999" {
		t.Errorf("stored values: %+v", m)
	}
	if len(m.Genres) != 2 || m.Genres[0] != "Sci-Fi" || m.Genres[1] != "Action" {
		t.Errorf("genres: got %v", m.Genres)
	}
}

func TestCreate_ImageURLOptional(t *testing.T) {
	svc, _, ctx := newService(t)

	res, err := svc.Create(ctx, moviesvc.Input{Name: "Heat", YearPremiered: "1995", Genres: []string{"Crime"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.Success || res.Data.ImageURL != "" {
		t.Errorf("got %+v", res)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, ctx := newService(t)

	tests := []struct {
		name string
		in   moviesvc.Input
		msg  string
	}{
		{"missing name", moviesvc.Input{YearPremiered: "1999", Genres: []string{"A"}}, moviesvc.MsgFieldsRequired},
		{"missing year", moviesvc.Input{Name: "M", Genres: []string{"A"}}, moviesvc.MsgFieldsRequired},
		{"blank genres", moviesvc.Input{Name: "M", YearPremiered: "1999", Genres: []string{" ", ""}}, moviesvc.MsgFieldsRequired},
		{"bad year", moviesvc.Input{Name: "M", YearPremiered: "99", Genres: []string{"A"}}, "Year premiered must be a four-digit year."},
		{"bad url", moviesvc.Input{Name: "M", YearPremiered: "1999", Genres: []string{"A"}, ImageURL: "ftp://x/y"}, "Image URL must be a valid http or https URL."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Create(ctx, tt.in)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if !res.Is(result.CodeInvalid) {
				t.Fatalf("got %+v, want invalid", res)
			}
			if res.Message != tt.msg {
				t.Errorf("message: got %q, want %q", res.Message, tt.msg)
			}
		})
	}
}

func TestCreate_ExactNameConflict(t *testing.T) {
	svc, fixtures, ctx := newService(t)
	fixtures.CreateMovie(ctx, "Matrix", "1999", "Sci-Fi")

	res, err := svc.Create(ctx, moviesvc.Input{Name: "Matrix", YearPremiered: "2003", Genres: []string{"Sci-Fi"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.Is(result.CodeConflict) || res.StatusCode != 400 || res.Message != moviesvc.MsgNameExists {
		t.Errorf("same name: got %+v", res)
	}

	res, err = svc.Create(ctx, moviesvc.Input{Name: "Matrix Reloaded", YearPremiered: "2003", Genres: []string{"Sci-Fi"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.Success {
		t.Errorf("different name: got %+v", res)
	}
}

func TestSearch(t *testing.T) {
	svc, fixtures, ctx := newService(t)
	fixtures.CreateMovie(ctx, "The Matrix", "1999", "Sci-Fi", "Action")
	fixtures.CreateMovie(ctx, "Matrix Reloaded", "2003", "Sci-Fi")
	fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")

	byName, err := svc.SearchByName(ctx, "MATRIX")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if byName.Count != 2 || byName.Message != "2 Movies found successfully" {
		t.Errorf("by name: got count %d message %q", byName.Count, byName.Message)
	}

	byGenre, err := svc.SearchByGenre(ctx, "crim")
	if err != nil {
		t.Fatalf("SearchByGenre: %v", err)
	}
	if byGenre.Count != 1 || byGenre.Data[0].Name != "Heat" {
		t.Errorf("by genre: got %+v", byGenre.Data)
	}

	none, _ := svc.SearchByGenre(ctx, "Western")
	if !none.Success || none.Count != 0 || none.Message != moviesvc.MsgNoneFound {
		t.Errorf("no match: got %+v", none)
	}

	blank, _ := svc.SearchByName(ctx, "")
	if !blank.Is(result.CodeInvalid) || blank.Message != moviesvc.MsgNameRequired {
		t.Errorf("blank name: got %+v", blank)
	}
	blank, _ = svc.SearchByGenre(ctx, " ")
	if !blank.Is(result.CodeInvalid) || blank.Message != moviesvc.MsgGenreRequired {
		t.Errorf("blank genre: got %+v", blank)
	}
}

func TestGetAndList(t *testing.T) {
	svc, fixtures, ctx := newService(t)
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateMovie(ctx, "Up", "2009", "Animation")

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Count != 2 {
		t.Errorf("count: got %d, want 2", all.Count)
	}

	got, err := svc.Get(ctx, heat.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Data.Name != "Heat" {
		t.Errorf("Get: got %+v", got.Data)
	}

	bad, _ := svc.Get(ctx, "xyz")
	if !bad.Is(result.CodeInvalid) || bad.Message != moviesvc.MsgInvalidID {
		t.Errorf("malformed id: got %+v", bad)
	}
	missing, _ := svc.Get(ctx, primitive.NewObjectID().Hex())
	if !missing.Is(result.CodeNotFound) {
		t.Errorf("missing: got %+v", missing)
	}
}

func TestUpdate(t *testing.T) {
	svc, fixtures, ctx := newService(t)
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateMovie(ctx, "Up", "2009", "Animation")

	res, err := svc.Update(ctx, heat.ID.Hex(), moviesvc.Input{Genres: []string{"Crime", "Thriller"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !res.Success || res.Data.Name != "Heat" || res.Data.YearPremiered != "1995" || len(res.Data.Genres) != 2 {
		t.Errorf("partial update: got %+v", res.Data)
	}

	clash, _ := svc.Update(ctx, heat.ID.Hex(), moviesvc.Input{Name: "Up"})
	if !clash.Is(result.CodeConflict) {
		t.Errorf("name clash: got %+v", clash)
	}

	missing, _ := svc.Update(ctx, primitive.NewObjectID().Hex(), moviesvc.Input{Name: "New"})
	if !missing.Is(result.CodeNotFound) {
		t.Errorf("missing: got %+v", missing)
	}

	badYear, _ := svc.Update(ctx, heat.ID.Hex(), moviesvc.Input{YearPremiered: "19x5"})
	if !badYear.Is(result.CodeInvalid) {
		t.Errorf("bad year: got %+v", badYear)
	}
}

func TestDelete_CascadesSubscriptions(t *testing.T) {
	svc, fixtures, ctx := newService(t)
	ann := fixtures.CreateMember(ctx, "Ann", "a@x.com", "NY")
	bob := fixtures.CreateMember(ctx, "Bob", "b@x.com", "LA")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	up := fixtures.CreateMovie(ctx, "Up", "2009", "Animation")
	fixtures.CreateSubscription(ctx, ann.ID, heat.ID, time.Now())
	fixtures.CreateSubscription(ctx, bob.ID, heat.ID, time.Now())
	fixtures.CreateSubscription(ctx, bob.ID, up.ID, time.Now())

	res, err := svc.Delete(ctx, heat.ID.Hex())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !res.Success || res.Data.Movie.Name != "Heat" || res.Data.SubscriptionsRemoved != 2 {
		t.Fatalf("got %+v", res)
	}

	left, err := fixtures.DB().Collection("subscriptions").CountDocuments(ctx, bson.M{"movie_id": up.ID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if left != 1 {
		t.Errorf("unrelated subscriptions: got %d, want 1", left)
	}

	bad, _ := svc.Delete(ctx, "nope")
	if !bad.Is(result.CodeInvalid) {
		t.Errorf("malformed id: got %+v", bad)
	}
}
