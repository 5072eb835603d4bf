// internal/domain/models/subscription.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is the authoritative join between members and movies: a
// member having watched a movie on a date.
// Exactly one document per (member_id, movie_id).
type Subscription struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"memberId"`
	MovieID     primitive.ObjectID `bson:"movie_id" json:"movieId"`
	WatchedDate time.Time          `bson:"watched_date" json:"watchedDate"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// SubscriptionView is a Subscription with both references resolved.
// Member or Movie is nil when the referenced document no longer exists.
type SubscriptionView struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"memberId"`
	MovieID     primitive.ObjectID `bson:"movie_id" json:"movieId"`
	Member      *Member            `bson:"member,omitempty" json:"member"`
	Movie       *Movie             `bson:"movie,omitempty" json:"movie"`
	WatchedDate time.Time          `bson:"watched_date" json:"watchedDate"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
