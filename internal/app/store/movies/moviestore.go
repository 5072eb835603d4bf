// internal/app/store/movies/moviestore.go
package moviestore

import (
	"context"
	"errors"
	"regexp"
	"time"

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
	ErrNotFound      = errors.New("movie not found")
	ErrDuplicateName = errors.New("a movie with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("movies")}
}

func foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = text.Fold(s)
	}
	return out
}

// Create inserts m with a fresh ID, folded search fields and timestamps.
func (s *Store) Create(ctx context.Context, m models.Movie) (models.Movie, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.GenresCI = foldAll(m.Genres)
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Movie{}, ErrDuplicateName
		}
		return models.Movie{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Movie, error) {
	var m models.Movie
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, err
	}
	return m, nil
}

// Exists reports whether a movie with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// List returns every movie in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Movie, error) {
	return s.find(ctx, bson.M{})
}

// SearchByName returns movies whose name contains term, ignoring case.
func (s *Store) SearchByName(ctx context.Context, term string) ([]models.Movie, error) {
	return s.find(ctx, bson.M{"name_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(term))}})
}

// SearchByGenre returns movies with any genre containing term, ignoring case.
func (s *Store) SearchByGenre(ctx context.Context, term string) ([]models.Movie, error) {
	return s.find(ctx, bson.M{"genres_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(term))}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Movie, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NameExists reports whether a movie is named exactly name (case-sensitive).
func (s *Store) NameExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, bson.M{"name": name})
}

// NameExistsForOther is NameExists excluding the movie being updated.
func (s *Store) NameExistsForOther(ctx context.Context, name string, excludeID primitive.ObjectID) (bool, error) {
	return s.exists(ctx, bson.M{"name": name, "_id": bson.M{"$ne": excludeID}})
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

// Update overwrites the non-empty fields of upd (genres when non-empty) and
// returns the updated movie. Returns ErrNotFound or ErrDuplicateName.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd models.Movie) (models.Movie, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		set["name"] = upd.Name
		set["name_ci"] = text.Fold(upd.Name)
	}
	if upd.YearPremiered != "" {
		set["year_premiered"] = upd.YearPremiered
	}
	if len(upd.Genres) > 0 {
		set["genres"] = upd.Genres
		set["genres_ci"] = foldAll(upd.Genres)
	}
	if upd.ImageURL != "" {
		set["image_url"] = upd.ImageURL
	}

	var out models.Movie
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Movie{}, ErrNotFound
	case wafflemongo.IsDup(err) || mongo.IsDuplicateKeyError(err):
		return models.Movie{}, ErrDuplicateName
	default:
		return models.Movie{}, err
	}
}

// Delete removes the movie and returns what was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Movie, error) {
	var out models.Movie
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, err
	}
	return out, nil
}
