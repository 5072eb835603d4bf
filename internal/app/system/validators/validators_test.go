package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/validators"
	"github.com/dalemusser/moviehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"members", "movies", "subscriptions", "users"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestSchemas(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{
			name: "valid member",
			coll: "members",
			doc:  bson.M{"full_name": "Ada", "email": "ada@example.com", "city": "London", "city_ci": "london"},
		},
		{
			name:    "member missing email",
			coll:    "members",
			doc:     bson.M{"full_name": "Ada", "city": "London"},
			wantErr: true,
		},
		{
			name:    "member blank name",
			coll:    "members",
			doc:     bson.M{"full_name": "   ", "email": "x@example.com", "city": "London"},
			wantErr: true,
		},
		{
			name: "valid movie",
			coll: "movies",
			doc:  bson.M{"name": "Heat", "year_premiered": "1995", "genres": bson.A{"Crime"}},
		},
		{
			name:    "movie without genres",
			coll:    "movies",
			doc:     bson.M{"name": "Heat", "year_premiered": "1995", "genres": bson.A{}},
			wantErr: true,
		},
		{
			name:    "movie bad year",
			coll:    "movies",
			doc:     bson.M{"name": "Heat", "year_premiered": "95", "genres": bson.A{"Crime"}},
			wantErr: true,
		},
		{
			name: "valid subscription",
			coll: "subscriptions",
			doc: bson.M{
				"member_id":    primitive.NewObjectID(),
				"movie_id":     primitive.NewObjectID(),
				"watched_date": time.Now(),
			},
		},
		{
			name:    "subscription with string ids",
			coll:    "subscriptions",
			doc:     bson.M{"member_id": "abc", "movie_id": "def", "watched_date": time.Now()},
			wantErr: true,
		},
		{
			name:    "user without password",
			coll:    "users",
			doc:     bson.M{"full_name": "Op", "username": "op", "username_ci": "op"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertOne err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
