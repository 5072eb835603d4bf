// Package moviesvc implements the movie catalog operations used by the
// movies API.
package moviesvc

import (
	"context"
	"errors"
	"fmt"

	moviestore "github.com/dalemusser/moviehub/internal/app/store/movies"
	subscriptionstore "github.com/dalemusser/moviehub/internal/app/store/subscriptions"
	"github.com/dalemusser/moviehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/moviehub/internal/app/system/inputval"
	"github.com/dalemusser/moviehub/internal/app/system/normalize"
	"github.com/dalemusser/moviehub/internal/app/system/objectid"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/dalemusser/moviehub/internal/app/system/txn"
	"github.com/dalemusser/moviehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MsgListed         = "Movies retrieved successfully"
	MsgFound          = "Movie retrieved successfully"
	MsgCreated        = "Movie created successfully"
	MsgUpdated        = "Movie updated successfully"
	MsgDeleted        = "Movie deleted successfully"
	MsgNoneFound      = "No movies found"
	MsgInvalidID      = "Invalid movie ID format"
	MsgNotFound       = "Movie not found"
	MsgNameRequired   = "Movie name is required"
	MsgGenreRequired  = "Movie genre is required"
	MsgFieldsRequired = "All fields are required"
	MsgNameExists     = "Movie name already exists"
)

// Input is the body accepted by create and update. Empty fields are
// ignored by Update; ImageURL is optional on create.
type Input struct {
	Name          string   `json:"name" validate:"omitempty,max=200" label:"Name"`
	YearPremiered string   `json:"yearPremiered" validate:"omitempty,year" label:"Year premiered"`
	Genres        []string `json:"genres" validate:"omitempty,max=20,dive,max=50" label:"Genres"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,max=2048,httpurl" label:"Image URL"`
}

func (in Input) clean() Input {
	return Input{
		Name:          normalize.Name(htmlsanitize.PlainText(in.Name)),
		YearPremiered: normalize.QueryParam(in.YearPremiered),
		Genres:        normalize.Genres(htmlsanitize.PlainTextAll(in.Genres)),
		ImageURL:      normalize.QueryParam(in.ImageURL),
	}
}

func (in Input) movie() models.Movie {
	return models.Movie{
		Name:          in.Name,
		YearPremiered: in.YearPremiered,
		Genres:        in.Genres,
		ImageURL:      in.ImageURL,
	}
}

// Deleted is the outcome of Delete.
type Deleted struct {
	Movie                models.Movie
	SubscriptionsRemoved int64
}

type Service struct {
	client *mongo.Client
	movies *moviestore.Store
	subs   *subscriptionstore.Store
}

func New(db *mongo.Database) *Service {
	return &Service{
		client: db.Client(),
		movies: moviestore.New(db),
		subs:   subscriptionstore.New(db),
	}
}

// List returns every movie.
func (s *Service) List(ctx context.Context) (result.Result[[]models.Movie], error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return result.Result[[]models.Movie]{}, fmt.Errorf("list movies: %w", err)
	}
	return result.List(movies, MsgListed), nil
}

// Get returns one movie by id.
func (s *Service) Get(ctx context.Context, id string) (result.Result[models.Movie], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[models.Movie](MsgInvalidID), nil
	}
	m, err := s.movies.GetByID(ctx, oid)
	if errors.Is(err, moviestore.ErrNotFound) {
		return result.NotFound[models.Movie](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[models.Movie]{}, fmt.Errorf("get movie: %w", err)
	}
	return result.OK(m, MsgFound), nil
}

// SearchByName returns movies whose name contains name, ignoring case.
func (s *Service) SearchByName(ctx context.Context, name string) (result.Result[[]models.Movie], error) {
	name = normalize.QueryParam(name)
	if name == "" {
		return result.Invalid[[]models.Movie](MsgNameRequired), nil
	}
	movies, err := s.movies.SearchByName(ctx, name)
	if err != nil {
		return result.Result[[]models.Movie]{}, fmt.Errorf("search movies by name: %w", err)
	}
	return found(movies), nil
}

// SearchByGenre returns movies with a genre containing genre, ignoring case.
func (s *Service) SearchByGenre(ctx context.Context, genre string) (result.Result[[]models.Movie], error) {
	genre = normalize.QueryParam(genre)
	if genre == "" {
		return result.Invalid[[]models.Movie](MsgGenreRequired), nil
	}
	movies, err := s.movies.SearchByGenre(ctx, genre)
	if err != nil {
		return result.Result[[]models.Movie]{}, fmt.Errorf("search movies by genre: %w", err)
	}
	return found(movies), nil
}

func found(movies []models.Movie) result.Result[[]models.Movie] {
	if len(movies) == 0 {
		return result.List(movies, MsgNoneFound)
	}
	return result.List(movies, fmt.Sprintf("%d Movies found successfully", len(movies)))
}

// Create adds a movie. Name, year and at least one genre are required and
// the name must not already exist (exact, case-sensitive match).
func (s *Service) Create(ctx context.Context, in Input) (result.Result[models.Movie], error) {
	in = in.clean()
	if in.Name == "" || in.YearPremiered == "" || len(in.Genres) == 0 {
		return result.Invalid[models.Movie](MsgFieldsRequired), nil
	}
	if v := inputval.Validate(in); v.HasErrors() {
		return result.Invalid[models.Movie](v.First()), nil
	}

	taken, err := s.movies.NameExists(ctx, in.Name)
	if err != nil {
		return result.Result[models.Movie]{}, fmt.Errorf("check movie name: %w", err)
	}
	if taken {
		return result.Conflict[models.Movie](MsgNameExists), nil
	}

	m, err := s.movies.Create(ctx, in.movie())
	if errors.Is(err, moviestore.ErrDuplicateName) {
		return result.Conflict[models.Movie](MsgNameExists), nil
	}
	if err != nil {
		return result.Result[models.Movie]{}, fmt.Errorf("create movie: %w", err)
	}
	return result.Created(m, MsgCreated), nil
}

// Update overwrites the non-empty fields of in.
func (s *Service) Update(ctx context.Context, id string, in Input) (result.Result[models.Movie], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[models.Movie](MsgInvalidID), nil
	}
	in = in.clean()
	if v := inputval.Validate(in); v.HasErrors() {
		return result.Invalid[models.Movie](v.First()), nil
	}

	if in.Name != "" {
		taken, err := s.movies.NameExistsForOther(ctx, in.Name, oid)
		if err != nil {
			return result.Result[models.Movie]{}, fmt.Errorf("check movie name: %w", err)
		}
		if taken {
			return result.Conflict[models.Movie](MsgNameExists), nil
		}
	}

	m, err := s.movies.Update(ctx, oid, in.movie())
	switch {
	case errors.Is(err, moviestore.ErrNotFound):
		return result.NotFound[models.Movie](MsgNotFound), nil
	case errors.Is(err, moviestore.ErrDuplicateName):
		return result.Conflict[models.Movie](MsgNameExists), nil
	case err != nil:
		return result.Result[models.Movie]{}, fmt.Errorf("update movie: %w", err)
	}
	return result.OK(m, MsgUpdated), nil
}

// Delete removes the movie together with its subscriptions.
func (s *Service) Delete(ctx context.Context, id string) (result.Result[Deleted], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[Deleted](MsgInvalidID), nil
	}

	var out Deleted
	err := txn.Run(ctx, s.client, func(ctx context.Context) error {
		m, err := s.movies.Delete(ctx, oid)
		if err != nil {
			return err
		}
		n, err := s.subs.DeleteByMovie(ctx, oid)
		if err != nil {
			return err
		}
		out = Deleted{Movie: m, SubscriptionsRemoved: n}
		return nil
	})
	if errors.Is(err, moviestore.ErrNotFound) {
		return result.NotFound[Deleted](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[Deleted]{}, fmt.Errorf("delete movie: %w", err)
	}
	return result.OK(out, MsgDeleted), nil
}
