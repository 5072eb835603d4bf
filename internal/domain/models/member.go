// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a person tracked by the catalog, identified by a unique email.
//
// NOTE:
//   - Watched movies are not embedded on Member.
//     Use the subscriptions collection to discover a member's movies.
type Member struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Email    string             `bson:"email" json:"email"` // lowercase, unique
	City     string             `bson:"city" json:"city"`
	CityCI   string             `bson:"city_ci" json:"-"` // lowercase, diacritics-stripped

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
