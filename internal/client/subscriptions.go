package client

import (
	"context"
	"slices"
	"time"

	"github.com/dalemusser/moviehub/internal/domain/models"
)

// SubscriptionsStore caches the joined subscription list.
type SubscriptionsStore struct {
	collection[models.SubscriptionView]
	c *Client
}

func NewSubscriptionsStore(c *Client) *SubscriptionsStore {
	return &SubscriptionsStore{c: c}
}

func samePair(memberID, movieID string) func(models.SubscriptionView) bool {
	return func(v models.SubscriptionView) bool {
		return v.MemberID.Hex() == memberID && v.MovieID.Hex() == movieID
	}
}

func (s *SubscriptionsStore) Load(ctx context.Context) error {
	s.begin()
	list, err := s.c.ListSubscriptions(ctx)
	return s.finish(err, func([]models.SubscriptionView) []models.SubscriptionView { return list })
}

// newestFirst orders views the way the server lists them.
func newestFirst(a, b models.SubscriptionView) int {
	return b.WatchedDate.Compare(a.WatchedDate)
}

// Add records a watch. A zero watched lets the server use now. The new row
// goes to its place in newest-first order.
func (s *SubscriptionsStore) Add(ctx context.Context, memberID, movieID string, watched time.Time) (models.SubscriptionView, error) {
	s.begin()
	v, err := s.c.AddSubscription(ctx, memberID, movieID, watched)
	return v, s.finish(err, func(items []models.SubscriptionView) []models.SubscriptionView {
		i := slices.IndexFunc(items, func(x models.SubscriptionView) bool { return newestFirst(v, x) < 0 })
		if i < 0 {
			return append(items, v)
		}
		return slices.Insert(items, i, v)
	})
}

func (s *SubscriptionsStore) UpdateWatchedDate(ctx context.Context, memberID, movieID string, watched time.Time) (models.SubscriptionView, error) {
	s.begin()
	v, err := s.c.UpdateWatchedDate(ctx, memberID, movieID, watched)
	return v, s.finish(err, func(items []models.SubscriptionView) []models.SubscriptionView {
		items = replace(items, samePair(memberID, movieID), v)
		slices.SortStableFunc(items, newestFirst)
		return items
	})
}

func (s *SubscriptionsStore) Remove(ctx context.Context, memberID, movieID string) error {
	s.begin()
	err := s.c.RemoveSubscription(ctx, memberID, movieID)
	return s.finish(err, func(items []models.SubscriptionView) []models.SubscriptionView {
		return deleteWhere(items, samePair(memberID, movieID))
	})
}

// ForgetMember drops cached subscriptions of a deleted member, matching the
// server-side cascade. MembersStore.Delete calls it when linked by NewState.
func (s *SubscriptionsStore) ForgetMember(memberID string) {
	s.mutate(func(items []models.SubscriptionView) []models.SubscriptionView {
		return deleteWhere(items, func(v models.SubscriptionView) bool { return v.MemberID.Hex() == memberID })
	})
}

// ForgetMovie is ForgetMember for a deleted movie.
func (s *SubscriptionsStore) ForgetMovie(movieID string) {
	s.mutate(func(items []models.SubscriptionView) []models.SubscriptionView {
		return deleteWhere(items, func(v models.SubscriptionView) bool { return v.MovieID.Hex() == movieID })
	})
}

func (s *SubscriptionsStore) ByMember(memberID string) []models.SubscriptionView {
	return s.filter(func(v models.SubscriptionView) bool { return v.MemberID.Hex() == memberID })
}

func (s *SubscriptionsStore) ByMovie(movieID string) []models.SubscriptionView {
	return s.filter(func(v models.SubscriptionView) bool { return v.MovieID.Hex() == movieID })
}

func (s *SubscriptionsStore) Find(memberID, movieID string) (models.SubscriptionView, bool) {
	return s.find(samePair(memberID, movieID))
}

// The queries below go to the server and leave the cache alone.

func (s *SubscriptionsStore) MoviesByMember(ctx context.Context, memberID string) ([]models.SubscriptionView, error) {
	return s.c.MoviesByMember(ctx, memberID)
}

func (s *SubscriptionsStore) MembersByMovie(ctx context.Context, movieID string) ([]models.SubscriptionView, error) {
	return s.c.MembersByMovie(ctx, movieID)
}

func (s *SubscriptionsStore) MemberStats(ctx context.Context, memberID string) (MemberStats, error) {
	return s.c.MemberStats(ctx, memberID)
}

func (s *SubscriptionsStore) MovieStats(ctx context.Context, movieID string) (MovieStats, error) {
	return s.c.MovieStats(ctx, movieID)
}
