package client

import (
	"context"
	"strings"

	"github.com/dalemusser/moviehub/internal/domain/models"
)

// MembersStore caches the member list.
type MembersStore struct {
	collection[models.Member]
	c *Client
	// subs, when set, drops the deleted member's cached subscriptions.
	subs *SubscriptionsStore
}

func NewMembersStore(c *Client) *MembersStore {
	return &MembersStore{c: c}
}

// Load replaces the cache with the server's list.
func (s *MembersStore) Load(ctx context.Context) error {
	s.begin()
	list, err := s.c.ListMembers(ctx)
	return s.finish(err, func([]models.Member) []models.Member { return list })
}

// Add creates a member and appends it to the cache.
func (s *MembersStore) Add(ctx context.Context, in MemberInput) (models.Member, error) {
	s.begin()
	m, err := s.c.CreateMember(ctx, in)
	return m, s.finish(err, func(items []models.Member) []models.Member { return append(items, m) })
}

// Update applies a partial update and stores the server's copy.
func (s *MembersStore) Update(ctx context.Context, id string, in MemberInput) (models.Member, error) {
	s.begin()
	m, err := s.c.UpdateMember(ctx, id, in)
	return m, s.finish(err, func(items []models.Member) []models.Member {
		return replace(items, func(x models.Member) bool { return x.ID.Hex() == id }, m)
	})
}

// Delete removes the member. The server also removes the member's
// subscriptions; their count is returned and the linked subscriptions
// cache follows.
func (s *MembersStore) Delete(ctx context.Context, id string) (int64, error) {
	s.begin()
	removed, err := s.c.DeleteMember(ctx, id)
	err = s.finish(err, func(items []models.Member) []models.Member {
		return deleteWhere(items, func(x models.Member) bool { return x.ID.Hex() == id })
	})
	if err == nil && s.subs != nil {
		s.subs.ForgetMember(id)
	}
	return removed, err
}

func (s *MembersStore) ByID(id string) (models.Member, bool) {
	return s.find(func(m models.Member) bool { return m.ID.Hex() == id })
}

// Search matches term case-insensitively against name, email and city.
// An empty term returns everything.
func (s *MembersStore) Search(term string) []models.Member {
	term = strings.ToLower(strings.TrimSpace(term))
	return s.filter(func(m models.Member) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(m.FullName), term) ||
			strings.Contains(strings.ToLower(m.Email), term) ||
			strings.Contains(strings.ToLower(m.City), term)
	})
}

// ByCity returns members whose city equals city, ignoring case.
func (s *MembersStore) ByCity(city string) []models.Member {
	city = strings.TrimSpace(city)
	return s.filter(func(m models.Member) bool { return strings.EqualFold(m.City, city) })
}
