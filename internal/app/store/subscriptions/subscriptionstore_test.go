package subscriptionstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	subscriptionstore "github.com/dalemusser/moviehub/internal/app/store/subscriptions"
	"github.com/dalemusser/moviehub/internal/app/system/indexes"
	"github.com/dalemusser/moviehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateReturnsJoined(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	watched := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	view, err := store.Create(ctx, member.ID, movie.ID, watched)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Member == nil || view.Member.Email != "ada@example.com" {
		t.Errorf("Member: got %+v", view.Member)
	}
	if view.Movie == nil || view.Movie.Name != "Heat" {
		t.Errorf("Movie: got %+v", view.Movie)
	}
	if !view.WatchedDate.Equal(watched) {
		t.Errorf("WatchedDate: got %v, want %v", view.WatchedDate, watched)
	}
}

func TestStore_Create_DuplicatePair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")

	if _, err := store.Create(ctx, member.ID, movie.ID, time.Now()); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := store.Create(ctx, member.ID, movie.ID, time.Now()); !errors.Is(err, subscriptionstore.ErrDuplicateSubscription) {
		t.Errorf("second Create: got %v, want ErrDuplicateSubscription", err)
	}
}

func TestStore_Create_ConcurrentSamePair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(ctx, member.ID, movie.ID, time.Now())
		}(i)
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, subscriptionstore.ErrDuplicateSubscription):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", ok, dup, n-1)
	}
}

func TestStore_ListOrderAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com", "Paris")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	alien := fixtures.CreateMovie(ctx, "Alien", "1979", "Horror")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixtures.CreateSubscription(ctx, ada.ID, heat.ID, base)
	fixtures.CreateSubscription(ctx, ada.ID, alien.ID, base.Add(48*time.Hour))
	fixtures.CreateSubscription(ctx, bob.ID, heat.ID, base.Add(24*time.Hour))

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll: got %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].WatchedDate.After(all[i-1].WatchedDate) {
			t.Errorf("ListAll not sorted by watched date desc at %d", i)
		}
	}

	byAda, err := store.ListByMember(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(byAda) != 2 || byAda[0].Movie.Name != "Alien" {
		t.Errorf("ListByMember: got %d rows, first %+v", len(byAda), byAda[0].Movie)
	}

	byHeat, err := store.ListByMovie(ctx, heat.ID)
	if err != nil {
		t.Fatalf("ListByMovie: %v", err)
	}
	if len(byHeat) != 2 || byHeat[0].Member.FullName != "Bob" {
		t.Errorf("ListByMovie: got %d rows", len(byHeat))
	}

	if n, _ := store.CountByMember(ctx, ada.ID); n != 2 {
		t.Errorf("CountByMember: got %d, want 2", n)
	}
	if n, _ := store.CountByMovie(ctx, alien.ID); n != 1 {
		t.Errorf("CountByMovie: got %d, want 1", n)
	}
}

func TestStore_DanglingReferenceIsNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateSubscription(ctx, member.ID, movie.ID, time.Now())

	if _, err := db.Collection("movies").DeleteOne(ctx, bson.M{"_id": movie.ID}); err != nil {
		t.Fatalf("delete movie: %v", err)
	}

	view, err := store.GetByPair(ctx, member.ID, movie.ID)
	if err != nil {
		t.Fatalf("GetByPair: %v", err)
	}
	if view.Movie != nil {
		t.Errorf("Movie: got %+v, want nil", view.Movie)
	}
	if view.Member == nil {
		t.Error("Member should still resolve")
	}
}

func TestStore_UpdateWatchedDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateSubscription(ctx, member.ID, movie.ID, time.Now())

	when := time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)
	view, err := store.UpdateWatchedDate(ctx, member.ID, movie.ID, when)
	if err != nil {
		t.Fatalf("UpdateWatchedDate: %v", err)
	}
	if !view.WatchedDate.Equal(when) {
		t.Errorf("WatchedDate: got %v, want %v", view.WatchedDate, when)
	}

	_, err = store.UpdateWatchedDate(ctx, member.ID, primitive.NewObjectID(), when)
	if !errors.Is(err, subscriptionstore.ErrNotFound) {
		t.Errorf("UpdateWatchedDate(missing): got %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteByPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	movie := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateSubscription(ctx, member.ID, movie.ID, time.Now())

	view, err := store.DeleteByPair(ctx, member.ID, movie.ID)
	if err != nil {
		t.Fatalf("DeleteByPair: %v", err)
	}
	if view.Movie == nil || view.Movie.Name != "Heat" {
		t.Errorf("deleted record should be joined: %+v", view)
	}
	if _, err := store.DeleteByPair(ctx, member.ID, movie.ID); !errors.Is(err, subscriptionstore.ErrNotFound) {
		t.Errorf("second DeleteByPair: got %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteByMemberAndMovie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com", "Paris")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	alien := fixtures.CreateMovie(ctx, "Alien", "1979", "Horror")
	fixtures.CreateSubscription(ctx, ada.ID, heat.ID, time.Now())
	fixtures.CreateSubscription(ctx, ada.ID, alien.ID, time.Now())
	fixtures.CreateSubscription(ctx, bob.ID, heat.ID, time.Now())

	n, err := store.DeleteByMember(ctx, ada.ID)
	if err != nil || n != 2 {
		t.Errorf("DeleteByMember: got %d, %v; want 2", n, err)
	}
	n, err = store.DeleteByMovie(ctx, heat.ID)
	if err != nil || n != 1 {
		t.Errorf("DeleteByMovie: got %d, %v; want 1", n, err)
	}
	n, err = store.DeleteByMovie(ctx, heat.ID)
	if err != nil || n != 0 {
		t.Errorf("DeleteByMovie again: got %d, %v; want 0", n, err)
	}
}

func TestStore_DeleteOrphans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subscriptionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com", "Paris")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	alien := fixtures.CreateMovie(ctx, "Alien", "1979", "Horror")
	fixtures.CreateSubscription(ctx, ada.ID, heat.ID, time.Now())
	fixtures.CreateSubscription(ctx, ada.ID, alien.ID, time.Now())
	fixtures.CreateSubscription(ctx, bob.ID, heat.ID, time.Now())

	if _, err := db.Collection("movies").DeleteOne(ctx, bson.M{"_id": alien.ID}); err != nil {
		t.Fatalf("delete movie: %v", err)
	}
	if _, err := db.Collection("members").DeleteOne(ctx, bson.M{"_id": bob.ID}); err != nil {
		t.Fatalf("delete member: %v", err)
	}

	n, err := store.DeleteOrphans(ctx)
	if err != nil {
		t.Fatalf("DeleteOrphans: %v", err)
	}
	if n != 2 {
		t.Errorf("removed: got %d, want 2", n)
	}
	if total, _ := store.Count(ctx); total != 1 {
		t.Errorf("remaining: got %d, want 1", total)
	}

	if n, _ := store.DeleteOrphans(ctx); n != 0 {
		t.Errorf("second sweep: got %d, want 0", n)
	}
}
