package indexes_test

import (
	"testing"

	"github.com/dalemusser/moviehub/internal/app/system/indexes"
	"github.com/dalemusser/moviehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"members":       {"uniq_members_email", "idx_members_cityci__id"},
		"movies":        {"uniq_movies_name", "idx_movies_nameci__id", "idx_movies_genresci"},
		"subscriptions": {"uniq_subscriptions_member_movie", "idx_subscriptions_movie_watched", "idx_subscriptions_watched"},
		"users":         {"uniq_users_username"},
	}
	for coll, names := range want {
		got := indexNames(t, db, coll)
		for _, name := range names {
			if !got[name] {
				t.Errorf("expected index %q on %s", name, coll)
			}
		}
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("members").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	got := indexNames(t, db, "members")
	if !got["uniq_members_email"] {
		t.Error("expected uniq_members_email after upgrade")
	}
	if got["email_1"] {
		t.Error("legacy index email_1 should have been replaced")
	}
}

func TestEnsureAll_SubscriptionPairIsUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	doc := bson.M{"member_id": primitive.NewObjectID(), "movie_id": primitive.NewObjectID()}
	if _, err := db.Collection("subscriptions").InsertOne(ctx, doc); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Collection("subscriptions").InsertOne(ctx, bson.M{
		"member_id": doc["member_id"], "movie_id": doc["movie_id"],
	}); !mongo.IsDuplicateKeyError(err) {
		t.Errorf("second insert: got %v, want duplicate key error", err)
	}
}
