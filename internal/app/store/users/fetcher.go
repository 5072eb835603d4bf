package userstore

import (
	"context"

	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh user data on each request.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser returns nil if the id is malformed, the user is gone, or the
// lookup fails.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u struct {
		ID       primitive.ObjectID `bson:"_id"`
		FullName string             `bson:"full_name"`
		Username string             `bson:"username"`
	}
	proj := options.FindOne().SetProjection(bson.M{"_id": 1, "full_name": 1, "username": 1})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		return nil
	}

	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Name:     u.FullName,
		Username: u.Username,
	}
}
