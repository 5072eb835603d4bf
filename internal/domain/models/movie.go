// internal/domain/models/movie.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is a catalog entry identified by a unique (case-sensitive) name.
type Movie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"`
	YearPremiered string             `bson:"year_premiered" json:"yearPremiered"`
	Genres        []string           `bson:"genres" json:"genres"`
	GenresCI      []string           `bson:"genres_ci" json:"-"`
	ImageURL      string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
