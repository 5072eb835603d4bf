package client

import (
	"context"
	"strings"

	"github.com/dalemusser/moviehub/internal/domain/models"
)

// MoviesStore caches the movie list.
type MoviesStore struct {
	collection[models.Movie]
	c    *Client
	subs *SubscriptionsStore
}

func NewMoviesStore(c *Client) *MoviesStore {
	return &MoviesStore{c: c}
}

func (s *MoviesStore) Load(ctx context.Context) error {
	s.begin()
	list, err := s.c.ListMovies(ctx)
	return s.finish(err, func([]models.Movie) []models.Movie { return list })
}

func (s *MoviesStore) Add(ctx context.Context, in MovieInput) (models.Movie, error) {
	s.begin()
	m, err := s.c.CreateMovie(ctx, in)
	return m, s.finish(err, func(items []models.Movie) []models.Movie { return append(items, m) })
}

func (s *MoviesStore) Update(ctx context.Context, id string, in MovieInput) (models.Movie, error) {
	s.begin()
	m, err := s.c.UpdateMovie(ctx, id, in)
	return m, s.finish(err, func(items []models.Movie) []models.Movie {
		return replace(items, func(x models.Movie) bool { return x.ID.Hex() == id }, m)
	})
}

// Delete removes the movie and, like MembersStore.Delete, its cached
// subscriptions.
func (s *MoviesStore) Delete(ctx context.Context, id string) (int64, error) {
	s.begin()
	removed, err := s.c.DeleteMovie(ctx, id)
	err = s.finish(err, func(items []models.Movie) []models.Movie {
		return deleteWhere(items, func(x models.Movie) bool { return x.ID.Hex() == id })
	})
	if err == nil && s.subs != nil {
		s.subs.ForgetMovie(id)
	}
	return removed, err
}

func (s *MoviesStore) ByID(id string) (models.Movie, bool) {
	return s.find(func(m models.Movie) bool { return m.ID.Hex() == id })
}

// Search matches term case-insensitively against the name and each genre.
// An empty term returns everything.
func (s *MoviesStore) Search(term string) []models.Movie {
	term = strings.ToLower(strings.TrimSpace(term))
	return s.filter(func(m models.Movie) bool {
		if term == "" || strings.Contains(strings.ToLower(m.Name), term) {
			return true
		}
		for _, g := range m.Genres {
			if strings.Contains(strings.ToLower(g), term) {
				return true
			}
		}
		return false
	})
}
