package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/normalize"
	"github.com/dalemusser/moviehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when the username is already taken
	// (compared case-insensitively).
	ErrDuplicateUsername = errors.New("username already exists")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.AppUser, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername looks up a user by case-insensitive username.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.AppUser, error) {
	return s.findOne(ctx, bson.M{"username_ci": text.Fold(strings.TrimSpace(username))})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.AppUser, error) {
	var u models.AppUser
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.AppUser{}, ErrNotFound
		}
		return models.AppUser{}, err
	}
	return u, nil
}

// Create inserts a new user. Password must already be hashed.
func (s *Store) Create(ctx context.Context, u models.AppUser) (models.AppUser, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.Username = strings.TrimSpace(u.Username)
	u.UsernameCI = text.Fold(u.Username)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.AppUser{}, ErrDuplicateUsername
		}
		return models.AppUser{}, err
	}
	return u, nil
}
