// Package subscriptionsvc manages which members watched which movies.
//
// A subscription joins one member to one movie with a watched date. The
// pair is unique: the compound index on (member_id, movie_id) decides
// which of two concurrent adds wins, and the loser gets a Conflict.
// Every operation checks identifier format before touching storage.
package subscriptionsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	memberstore "github.com/dalemusser/moviehub/internal/app/store/members"
	moviestore "github.com/dalemusser/moviehub/internal/app/store/movies"
	subscriptionstore "github.com/dalemusser/moviehub/internal/app/store/subscriptions"
	"github.com/dalemusser/moviehub/internal/app/system/inputval"
	"github.com/dalemusser/moviehub/internal/app/system/objectid"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/dalemusser/moviehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MsgPairRequired      = "Member ID and Movie ID are required"
	MsgFieldsRequired    = "All fields are required"
	MsgInvalidMemberID   = "Invalid member ID format"
	MsgInvalidMovieID    = "Invalid movie ID format"
	MsgInvalidDate       = "Invalid watched date"
	MsgMemberNotFound    = "Member not found"
	MsgMovieNotFound     = "Movie not found"
	MsgAlreadyWatched    = "Member already watched this movie"
	MsgNotFound          = "Subscription not found"
	MsgCreated           = "Subscription created successfully"
	MsgDateUpdated       = "Watched date updated successfully"
	MsgDeleted           = "Subscription deleted successfully"
	MsgFound             = "Subscription found successfully"
	MsgListed            = "Subscriptions retrieved successfully"
	MsgNoMoviesForMember = "No movies found for this member"
	MsgNoMembersForMovie = "No members found for this movie"
	MsgNoSubsForMember   = "No subscriptions found for this member"
	MsgNoSubsForMovie    = "No subscriptions found for this movie"
	MsgMemberStats       = "Member statistics retrieved successfully"
	MsgMovieStats        = "Movie statistics retrieved successfully"
)

// MemberStats is the payload of GetMemberMovieCount.
type MemberStats struct {
	MemberID           string `json:"memberId"`
	TotalMoviesWatched int64  `json:"totalMoviesWatched"`
}

// MovieStats is the payload of GetMovieMemberCount.
type MovieStats struct {
	MovieID             string `json:"movieId"`
	TotalMembersWatched int64  `json:"totalMembersWatched"`
}

// pairRules gives the format check its wire-compatible messages.
type pairRules struct {
	MemberID string `validate:"objectid" label:"member ID"`
	MovieID  string `validate:"objectid" label:"movie ID"`
}

type Service struct {
	subs    *subscriptionstore.Store
	members *memberstore.Store
	movies  *moviestore.Store
	now     func() time.Time
}

func New(db *mongo.Database) *Service {
	return &Service{
		subs:    subscriptionstore.New(db),
		members: memberstore.New(db),
		movies:  moviestore.New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date (midnight
// UTC). The result is in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parsePair validates both identifiers. msg is empty on success.
func parsePair(memberID, movieID, missingMsg string) (mid, vid primitive.ObjectID, msg string) {
	memberID, movieID = strings.TrimSpace(memberID), strings.TrimSpace(movieID)
	if memberID == "" || movieID == "" {
		return mid, vid, missingMsg
	}
	if v := inputval.Validate(pairRules{MemberID: memberID, MovieID: movieID}); v.HasErrors() {
		return mid, vid, v.First()
	}
	mid, _ = objectid.Parse(memberID)
	vid, _ = objectid.Parse(movieID)
	return mid, vid, ""
}

// AddSubscription records that the member watched the movie. A nil
// watchedDate means now.
func (s *Service) AddSubscription(ctx context.Context, memberID, movieID string, watchedDate *time.Time) (result.Result[models.SubscriptionView], error) {
	mid, vid, msg := parsePair(memberID, movieID, MsgPairRequired)
	if msg != "" {
		return result.Invalid[models.SubscriptionView](msg), nil
	}

	ok, err := s.members.Exists(ctx, mid)
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("check member: %w", err)
	}
	if !ok {
		return result.NotFound[models.SubscriptionView](MsgMemberNotFound), nil
	}
	ok, err = s.movies.Exists(ctx, vid)
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("check movie: %w", err)
	}
	if !ok {
		return result.NotFound[models.SubscriptionView](MsgMovieNotFound), nil
	}

	watched := s.now()
	if watchedDate != nil && !watchedDate.IsZero() {
		watched = watchedDate.UTC()
	}

	view, err := s.subs.Create(ctx, mid, vid, watched)
	if errors.Is(err, subscriptionstore.ErrDuplicateSubscription) {
		return result.Conflict[models.SubscriptionView](MsgAlreadyWatched), nil
	}
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("create subscription: %w", err)
	}
	return result.Created(view, MsgCreated), nil
}

// UpdateWatchedDate overwrites the watched date of an existing pair.
func (s *Service) UpdateWatchedDate(ctx context.Context, memberID, movieID, newDate string) (result.Result[models.SubscriptionView], error) {
	if strings.TrimSpace(newDate) == "" {
		return result.Invalid[models.SubscriptionView](MsgFieldsRequired), nil
	}
	mid, vid, msg := parsePair(memberID, movieID, MsgFieldsRequired)
	if msg != "" {
		return result.Invalid[models.SubscriptionView](msg), nil
	}
	watched, ok := ParseDate(newDate)
	if !ok {
		return result.Invalid[models.SubscriptionView](MsgInvalidDate), nil
	}

	view, err := s.subs.UpdateWatchedDate(ctx, mid, vid, watched)
	if errors.Is(err, subscriptionstore.ErrNotFound) {
		return result.NotFound[models.SubscriptionView](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("update watched date: %w", err)
	}
	return result.OK(view, MsgDateUpdated), nil
}

// RemoveSubscription deletes the pair and returns it as it was.
func (s *Service) RemoveSubscription(ctx context.Context, memberID, movieID string) (result.Result[models.SubscriptionView], error) {
	mid, vid, msg := parsePair(memberID, movieID, MsgPairRequired)
	if msg != "" {
		return result.Invalid[models.SubscriptionView](msg), nil
	}
	view, err := s.subs.DeleteByPair(ctx, mid, vid)
	if errors.Is(err, subscriptionstore.ErrNotFound) {
		return result.NotFound[models.SubscriptionView](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("remove subscription: %w", err)
	}
	return result.OK(view, MsgDeleted), nil
}

// GetSubscription returns one pair, joined.
func (s *Service) GetSubscription(ctx context.Context, memberID, movieID string) (result.Result[models.SubscriptionView], error) {
	mid, vid, msg := parsePair(memberID, movieID, MsgPairRequired)
	if msg != "" {
		return result.Invalid[models.SubscriptionView](msg), nil
	}
	view, err := s.subs.GetByPair(ctx, mid, vid)
	if errors.Is(err, subscriptionstore.ErrNotFound) {
		return result.NotFound[models.SubscriptionView](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[models.SubscriptionView]{}, fmt.Errorf("get subscription: %w", err)
	}
	return result.OK(view, MsgFound), nil
}

// ListAll returns every subscription, newest watched first.
func (s *Service) ListAll(ctx context.Context) (result.Result[[]models.SubscriptionView], error) {
	views, err := s.subs.ListAll(ctx)
	if err != nil {
		return result.Result[[]models.SubscriptionView]{}, fmt.Errorf("list subscriptions: %w", err)
	}
	return result.List(views, MsgListed), nil
}

// GetMoviesByMember lists the member's subscriptions whose movie still
// exists.
func (s *Service) GetMoviesByMember(ctx context.Context, memberID string) (result.Result[[]models.SubscriptionView], error) {
	mid, ok := objectid.Parse(memberID)
	if !ok {
		return result.Invalid[[]models.SubscriptionView](MsgInvalidMemberID), nil
	}
	views, err := s.subs.ListByMember(ctx, mid)
	if err != nil {
		return result.Result[[]models.SubscriptionView]{}, fmt.Errorf("list movies by member: %w", err)
	}
	views = keep(views, func(v models.SubscriptionView) bool { return v.Movie != nil })
	if len(views) == 0 {
		return result.List(views, MsgNoMoviesForMember), nil
	}
	return result.List(views, fmt.Sprintf("%d movies found successfully", len(views))), nil
}

// GetMembersByMovie lists the movie's subscriptions whose member still
// exists.
func (s *Service) GetMembersByMovie(ctx context.Context, movieID string) (result.Result[[]models.SubscriptionView], error) {
	vid, ok := objectid.Parse(movieID)
	if !ok {
		return result.Invalid[[]models.SubscriptionView](MsgInvalidMovieID), nil
	}
	views, err := s.subs.ListByMovie(ctx, vid)
	if err != nil {
		return result.Result[[]models.SubscriptionView]{}, fmt.Errorf("list members by movie: %w", err)
	}
	views = keep(views, func(v models.SubscriptionView) bool { return v.Member != nil })
	if len(views) == 0 {
		return result.List(views, MsgNoMembersForMovie), nil
	}
	return result.List(views, fmt.Sprintf("%d members found successfully", len(views))), nil
}

// GetSubscriptionsByMember lists every subscription of the member.
func (s *Service) GetSubscriptionsByMember(ctx context.Context, memberID string) (result.Result[[]models.SubscriptionView], error) {
	mid, ok := objectid.Parse(memberID)
	if !ok {
		return result.Invalid[[]models.SubscriptionView](MsgInvalidMemberID), nil
	}
	views, err := s.subs.ListByMember(ctx, mid)
	if err != nil {
		return result.Result[[]models.SubscriptionView]{}, fmt.Errorf("list subscriptions by member: %w", err)
	}
	return listed(views, MsgNoSubsForMember), nil
}

// GetSubscriptionsByMovie lists every subscription of the movie.
func (s *Service) GetSubscriptionsByMovie(ctx context.Context, movieID string) (result.Result[[]models.SubscriptionView], error) {
	vid, ok := objectid.Parse(movieID)
	if !ok {
		return result.Invalid[[]models.SubscriptionView](MsgInvalidMovieID), nil
	}
	views, err := s.subs.ListByMovie(ctx, vid)
	if err != nil {
		return result.Result[[]models.SubscriptionView]{}, fmt.Errorf("list subscriptions by movie: %w", err)
	}
	return listed(views, MsgNoSubsForMovie), nil
}

// GetMemberMovieCount counts the movies a member has watched.
func (s *Service) GetMemberMovieCount(ctx context.Context, memberID string) (result.Result[MemberStats], error) {
	mid, ok := objectid.Parse(memberID)
	if !ok {
		return result.Invalid[MemberStats](MsgInvalidMemberID), nil
	}
	n, err := s.subs.CountByMember(ctx, mid)
	if err != nil {
		return result.Result[MemberStats]{}, fmt.Errorf("count by member: %w", err)
	}
	return result.OK(MemberStats{MemberID: mid.Hex(), TotalMoviesWatched: n}, MsgMemberStats), nil
}

// GetMovieMemberCount counts the members who watched a movie.
func (s *Service) GetMovieMemberCount(ctx context.Context, movieID string) (result.Result[MovieStats], error) {
	vid, ok := objectid.Parse(movieID)
	if !ok {
		return result.Invalid[MovieStats](MsgInvalidMovieID), nil
	}
	n, err := s.subs.CountByMovie(ctx, vid)
	if err != nil {
		return result.Result[MovieStats]{}, fmt.Errorf("count by movie: %w", err)
	}
	return result.OK(MovieStats{MovieID: vid.Hex(), TotalMembersWatched: n}, MsgMovieStats), nil
}

func listed(views []models.SubscriptionView, emptyMsg string) result.Result[[]models.SubscriptionView] {
	if len(views) == 0 {
		return result.List(views, emptyMsg)
	}
	return result.List(views, fmt.Sprintf("%d subscriptions found successfully", len(views)))
}

func keep(in []models.SubscriptionView, pred func(models.SubscriptionView) bool) []models.SubscriptionView {
	out := in[:0]
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
