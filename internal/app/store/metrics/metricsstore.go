package metricsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of catalog totals exported as gauges.
type Counts struct {
	Members       int64
	Movies        int64
	Subscriptions int64
	Users         int64
}

// FetchCounts returns the catalog totals.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchCounts(ctx context.Context, db *mongo.Database) Counts {
	count := func(coll string) int64 {
		n, err := db.Collection(coll).EstimatedDocumentCount(ctx)
		if err != nil {
			return 0
		}
		return n
	}
	return Counts{
		Members:       count("members"),
		Movies:        count("movies"),
		Subscriptions: count("subscriptions"),
		Users:         count("users"),
	}
}

// Exact is FetchCounts using CountDocuments. Use it where the metadata
// estimate may lag (right after writes in tests).
func Exact(ctx context.Context, db *mongo.Database) Counts {
	count := func(coll string) int64 {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			return 0
		}
		return n
	}
	return Counts{
		Members:       count("members"),
		Movies:        count("movies"),
		Subscriptions: count("subscriptions"),
		Users:         count("users"),
	}
}
