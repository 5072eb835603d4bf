// internal/app/store/subscriptions/subscriptionstore.go
package subscriptionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/moviehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the subscriptions collection. Reads resolve member_id and
// movie_id against the members and movies collections.
type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound              = errors.New("subscription not found")
	ErrDuplicateSubscription = errors.New("member already watched this movie")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subscriptions")}
}

// joinStages resolves both references. A reference that no longer resolves
// leaves the field absent, which decodes to a nil pointer.
func joinStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "members",
			"localField":   "member_id",
			"foreignField": "_id",
			"as":           "member",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$member", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "movies",
			"localField":   "movie_id",
			"foreignField": "_id",
			"as":           "movie",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$movie", "preserveNullAndEmptyArrays": true}}},
	}
}

// listJoined returns joined subscriptions matching filter, newest watch first.
func (s *Store) listJoined(ctx context.Context, filter bson.M) ([]models.SubscriptionView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "watched_date", Value: -1},
			{Key: "_id", Value: -1},
		}}},
	}
	pipe = append(pipe, joinStages()...)

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SubscriptionView
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pairFilter(memberID, movieID primitive.ObjectID) bson.M {
	return bson.M{"member_id": memberID, "movie_id": movieID}
}

// ListAll returns every subscription, joined.
func (s *Store) ListAll(ctx context.Context) ([]models.SubscriptionView, error) {
	return s.listJoined(ctx, bson.M{})
}

// ListByMember returns the member's subscriptions, joined.
func (s *Store) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.SubscriptionView, error) {
	return s.listJoined(ctx, bson.M{"member_id": memberID})
}

// ListByMovie returns the movie's subscriptions, joined.
func (s *Store) ListByMovie(ctx context.Context, movieID primitive.ObjectID) ([]models.SubscriptionView, error) {
	return s.listJoined(ctx, bson.M{"movie_id": movieID})
}

// GetByPair returns the joined subscription for the pair or ErrNotFound.
func (s *Store) GetByPair(ctx context.Context, memberID, movieID primitive.ObjectID) (models.SubscriptionView, error) {
	rows, err := s.listJoined(ctx, pairFilter(memberID, movieID))
	if err != nil {
		return models.SubscriptionView{}, err
	}
	if len(rows) == 0 {
		return models.SubscriptionView{}, ErrNotFound
	}
	return rows[0], nil
}

// Create inserts the pair and returns it joined. The compound unique index
// rejects a second insert for the same pair with ErrDuplicateSubscription.
func (s *Store) Create(ctx context.Context, memberID, movieID primitive.ObjectID, watched time.Time) (models.SubscriptionView, error) {
	doc := models.Subscription{
		ID:          primitive.NewObjectID(),
		MemberID:    memberID,
		MovieID:     movieID,
		WatchedDate: watched.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SubscriptionView{}, ErrDuplicateSubscription
		}
		return models.SubscriptionView{}, err
	}
	return s.GetByPair(ctx, memberID, movieID)
}

// UpdateWatchedDate overwrites watched_date for the pair and returns the
// joined record, or ErrNotFound.
func (s *Store) UpdateWatchedDate(ctx context.Context, memberID, movieID primitive.ObjectID, watched time.Time) (models.SubscriptionView, error) {
	res, err := s.c.UpdateOne(ctx, pairFilter(memberID, movieID),
		bson.M{"$set": bson.M{"watched_date": watched.UTC()}})
	if err != nil {
		return models.SubscriptionView{}, err
	}
	if res.MatchedCount == 0 {
		return models.SubscriptionView{}, ErrNotFound
	}
	return s.GetByPair(ctx, memberID, movieID)
}

// DeleteByPair removes the pair and returns the record as it was, or
// ErrNotFound. Of two concurrent deletes only one succeeds.
func (s *Store) DeleteByPair(ctx context.Context, memberID, movieID primitive.ObjectID) (models.SubscriptionView, error) {
	view, err := s.GetByPair(ctx, memberID, movieID)
	if err != nil {
		return models.SubscriptionView{}, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": view.ID})
	if err != nil {
		return models.SubscriptionView{}, err
	}
	if res.DeletedCount == 0 {
		return models.SubscriptionView{}, ErrNotFound
	}
	return view, nil
}

// DeleteByMember removes every subscription of the member. Returns the number removed.
func (s *Store) DeleteByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	return s.deleteMany(ctx, bson.M{"member_id": memberID})
}

// DeleteByMovie removes every subscription of the movie. Returns the number removed.
func (s *Store) DeleteByMovie(ctx context.Context, movieID primitive.ObjectID) (int64, error) {
	return s.deleteMany(ctx, bson.M{"movie_id": movieID})
}

func (s *Store) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByMember returns how many movies the member has watched.
func (s *Store) CountByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"member_id": memberID})
}

// CountByMovie returns how many members have watched the movie.
func (s *Store) CountByMovie(ctx context.Context, movieID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"movie_id": movieID})
}

// DeleteOrphans removes subscriptions whose member or movie no longer
// exists. Returns the number removed.
func (s *Store) DeleteOrphans(ctx context.Context) (int64, error) {
	pipe := append(joinStages(),
		bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"member": bson.M{"$exists": false}},
			bson.M{"movie": bson.M{"$exists": false}},
		}}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 1}}},
	)

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.deleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// Count returns the number of subscriptions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
