// internal/domain/models/appuser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppUser is an operator account that signs in to manage the catalog.
// It is unrelated to Member; members never sign in.
type AppUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName   string             `bson:"full_name" json:"fullName"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
