package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/moviehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures inserts test data directly, bypassing stores and services.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts a member.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email, city string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		City:      city,
		CityCI:    text.Fold(city),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateMovie inserts a movie.
func (f *Fixtures) CreateMovie(ctx context.Context, name, year string, genres ...string) models.Movie {
	f.t.Helper()

	now := time.Now().UTC()
	folded := make([]string, len(genres))
	for i, g := range genres {
		folded[i] = text.Fold(g)
	}
	m := models.Movie{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		YearPremiered: year,
		Genres:        genres,
		GenresCI:      folded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("movies").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test movie: %v", err)
	}
	return m
}

// CreateSubscription records that memberID watched movieID at watched.
func (f *Fixtures) CreateSubscription(ctx context.Context, memberID, movieID primitive.ObjectID, watched time.Time) models.Subscription {
	f.t.Helper()

	s := models.Subscription{
		ID:          primitive.NewObjectID(),
		MemberID:    memberID,
		MovieID:     movieID,
		WatchedDate: watched.UTC().Truncate(time.Millisecond),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("subscriptions").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test subscription: %v", err)
	}
	return s
}

// CreateUser inserts an operator account with a bcrypt-hashed password.
// The minimum cost keeps tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, username, password string) models.AppUser {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.AppUser{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		Username:   username,
		UsernameCI: text.Fold(username),
		Password:   string(hash),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
