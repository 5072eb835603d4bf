// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/normalize"
	"github.com/dalemusser/moviehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound       = errors.New("member not found")
	ErrDuplicateEmail = errors.New("a member with this email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// Create inserts m with a fresh ID, folded city and timestamps.
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.Email = normalize.Email(m.Email)
	m.CityCI = text.Fold(m.City)
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Member{}, ErrDuplicateEmail
		}
		return models.Member{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Member{}, ErrNotFound
		}
		return models.Member{}, err
	}
	return m, nil
}

// Exists reports whether a member with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// List returns every member in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Member, error) {
	return s.find(ctx, bson.M{})
}

// SearchByCity returns members whose city contains term, ignoring case and
// diacritics.
func (s *Store) SearchByCity(ctx context.Context, term string) ([]models.Member, error) {
	return s.find(ctx, bson.M{"city_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(term))}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Member, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmailExists reports whether any member already uses email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": normalize.Email(email)})
}

// EmailExistsForOther is EmailExists excluding the member being updated.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	return s.exists(ctx, bson.M{"email": normalize.Email(email), "_id": bson.M{"$ne": excludeID}})
}

func (s *Store) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Update overwrites the non-empty fields of upd and returns the updated
// member. Returns ErrNotFound or ErrDuplicateEmail.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd models.Member) (models.Member, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != "" {
		set["full_name"] = upd.FullName
	}
	if upd.Email != "" {
		set["email"] = normalize.Email(upd.Email)
	}
	if upd.City != "" {
		set["city"] = upd.City
		set["city_ci"] = text.Fold(upd.City)
	}

	var out models.Member
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Member{}, ErrNotFound
	case wafflemongo.IsDup(err) || mongo.IsDuplicateKeyError(err):
		return models.Member{}, ErrDuplicateEmail
	default:
		return models.Member{}, err
	}
}

// Delete removes the member and returns what was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var out models.Member
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Member{}, ErrNotFound
		}
		return models.Member{}, err
	}
	return out, nil
}
