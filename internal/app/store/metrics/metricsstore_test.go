package metricsstore_test

import (
	"strings"
	"testing"
	"time"

	metricsstore "github.com/dalemusser/moviehub/internal/app/store/metrics"
	"github.com/dalemusser/moviehub/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExact_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if counts := metricsstore.Exact(ctx, db); counts != (metricsstore.Counts{}) {
		t.Errorf("got %+v, want all zero", counts)
	}
}

func TestExact_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMember(ctx, "Ada", "ada@example.com", "London")
	fixtures.CreateMember(ctx, "Bob", "bob@example.com", "Paris")
	heat := fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")
	fixtures.CreateSubscription(ctx, ada.ID, heat.ID, time.Now())
	fixtures.CreateUser(ctx, "Op", "op", "secret1")

	want := metricsstore.Counts{Members: 2, Movies: 1, Subscriptions: 1, Users: 1}
	if got := metricsstore.Exact(ctx, db); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCollector(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures.CreateMovie(ctx, "Heat", "1995", "Crime")

	c := metricsstore.NewCollector(db, time.Second)
	if n := promtest.CollectAndCount(c, "moviehub_catalog_documents"); n != 4 {
		t.Fatalf("series: got %d, want 4", n)
	}

	expected := `
# HELP moviehub_catalog_documents Documents per catalog collection.
# TYPE moviehub_catalog_documents gauge
moviehub_catalog_documents{collection="members"} 0
moviehub_catalog_documents{collection="movies"} 1
moviehub_catalog_documents{collection="subscriptions"} 0
moviehub_catalog_documents{collection="users"} 0
`
	if err := promtest.CollectAndCompare(c, strings.NewReader(expected), "moviehub_catalog_documents"); err != nil {
		t.Error(err)
	}
}
