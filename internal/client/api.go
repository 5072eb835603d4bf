package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/moviehub/internal/domain/models"
)

// MemberInput is the body of member create and update. Empty fields are
// left unchanged on update.
type MemberInput struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	City     string `json:"city,omitempty"`
}

// MovieInput is the body of movie create and update. Empty fields are left
// unchanged on update.
type MovieInput struct {
	Name          string   `json:"name,omitempty"`
	YearPremiered string   `json:"yearPremiered,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

type MemberStats struct {
	MemberID           string `json:"memberId"`
	TotalMoviesWatched int64  `json:"totalMoviesWatched"`
}

type MovieStats struct {
	MovieID             string `json:"movieId"`
	TotalMembersWatched int64  `json:"totalMembersWatched"`
}

type credentials struct {
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type pair struct {
	MemberID    string `json:"memberId"`
	MovieID     string `json:"movieId"`
	WatchedDate string `json:"watchedDate,omitempty"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| Auth                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// Signup creates an account and signs this client in.
func (c *Client) Signup(ctx context.Context, fullName, username, password string) (models.AppUser, error) {
	var u models.AppUser
	_, err := c.do(ctx, http.MethodPost, "/auth/signup", nil,
		credentials{FullName: fullName, Username: username, Password: password}, "user", &u)
	return u, err
}

func (c *Client) Login(ctx context.Context, username, password string) (models.AppUser, error) {
	var u models.AppUser
	_, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		credentials{Username: username, Password: password}, "user", &u)
	return u, err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, "", nil)
	return err
}

// AuthCheck returns the signed-in user. A 401 means no valid session.
func (c *Client) AuthCheck(ctx context.Context) (models.AppUser, error) {
	var u models.AppUser
	_, err := c.do(ctx, http.MethodGet, "/auth/authCheck", nil, nil, "user", &u)
	return u, err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Members                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) ListMembers(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	_, err := c.do(ctx, http.MethodGet, "/members", nil, nil, "members", &out)
	return out, err
}

func (c *Client) GetMember(ctx context.Context, id string) (models.Member, error) {
	var out models.Member
	_, err := c.do(ctx, http.MethodGet, "/members/"+url.PathEscape(id), nil, nil, "member", &out)
	return out, err
}

func (c *Client) SearchMembersByCity(ctx context.Context, city string) ([]models.Member, error) {
	var out []models.Member
	_, err := c.do(ctx, http.MethodGet, "/members/searchcity", url.Values{"city": {city}}, nil, "members", &out)
	return out, err
}

func (c *Client) CreateMember(ctx context.Context, in MemberInput) (models.Member, error) {
	var out models.Member
	_, err := c.do(ctx, http.MethodPost, "/members/addmember", nil, in, "member", &out)
	return out, err
}

func (c *Client) UpdateMember(ctx context.Context, id string, in MemberInput) (models.Member, error) {
	var out models.Member
	_, err := c.do(ctx, http.MethodPatch, "/members/"+url.PathEscape(id), nil, in, "member", &out)
	return out, err
}

// DeleteMember returns how many subscriptions the server removed with the
// member.
func (c *Client) DeleteMember(ctx context.Context, id string) (int64, error) {
	return c.deleted(ctx, "/members/"+url.PathEscape(id))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Movies                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var out []models.Movie
	_, err := c.do(ctx, http.MethodGet, "/movies", nil, nil, "movies", &out)
	return out, err
}

func (c *Client) GetMovie(ctx context.Context, id string) (models.Movie, error) {
	var out models.Movie
	_, err := c.do(ctx, http.MethodGet, "/movies/"+url.PathEscape(id), nil, nil, "movie", &out)
	return out, err
}

func (c *Client) SearchMoviesByName(ctx context.Context, name string) ([]models.Movie, error) {
	var out []models.Movie
	_, err := c.do(ctx, http.MethodGet, "/movies/search", url.Values{"name": {name}}, nil, "movies", &out)
	return out, err
}

func (c *Client) SearchMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	var out []models.Movie
	_, err := c.do(ctx, http.MethodGet, "/movies/searchgenre", url.Values{"genre": {genre}}, nil, "movies", &out)
	return out, err
}

func (c *Client) CreateMovie(ctx context.Context, in MovieInput) (models.Movie, error) {
	var out models.Movie
	_, err := c.do(ctx, http.MethodPost, "/movies/addmovie", nil, in, "movie", &out)
	return out, err
}

func (c *Client) UpdateMovie(ctx context.Context, id string, in MovieInput) (models.Movie, error) {
	var out models.Movie
	_, err := c.do(ctx, http.MethodPatch, "/movies/"+url.PathEscape(id), nil, in, "movie", &out)
	return out, err
}

// DeleteMovie returns how many subscriptions the server removed with the
// movie.
func (c *Client) DeleteMovie(ctx context.Context, id string) (int64, error) {
	return c.deleted(ctx, "/movies/"+url.PathEscape(id))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Subscriptions                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) ListSubscriptions(ctx context.Context) ([]models.SubscriptionView, error) {
	var out []models.SubscriptionView
	_, err := c.do(ctx, http.MethodGet, "/subs", nil, nil, "subscriptions", &out)
	return out, err
}

func (c *Client) GetSubscription(ctx context.Context, memberID, movieID string) (models.SubscriptionView, error) {
	var out models.SubscriptionView
	q := url.Values{"memberId": {memberID}, "movieId": {movieID}}
	_, err := c.do(ctx, http.MethodGet, "/subs/subscription", q, nil, "subscription", &out)
	return out, err
}

// MoviesByMember lists the member's subscriptions with the movie resolved.
func (c *Client) MoviesByMember(ctx context.Context, memberID string) ([]models.SubscriptionView, error) {
	var out []models.SubscriptionView
	_, err := c.do(ctx, http.MethodGet, "/subs/members/"+url.PathEscape(memberID)+"/movies", nil, nil, "movies", &out)
	return out, err
}

// MembersByMovie lists the movie's subscriptions with the member resolved.
func (c *Client) MembersByMovie(ctx context.Context, movieID string) ([]models.SubscriptionView, error) {
	var out []models.SubscriptionView
	_, err := c.do(ctx, http.MethodGet, "/subs/movies/"+url.PathEscape(movieID), nil, nil, "members", &out)
	return out, err
}

func (c *Client) SubscriptionsByMember(ctx context.Context, memberID string) ([]models.SubscriptionView, error) {
	var out []models.SubscriptionView
	_, err := c.do(ctx, http.MethodGet, "/subs/members/"+url.PathEscape(memberID)+"/subscriptions", nil, nil, "subscriptions", &out)
	return out, err
}

func (c *Client) SubscriptionsByMovie(ctx context.Context, movieID string) ([]models.SubscriptionView, error) {
	var out []models.SubscriptionView
	_, err := c.do(ctx, http.MethodGet, "/subs/movies/"+url.PathEscape(movieID)+"/subscriptions", nil, nil, "subscriptions", &out)
	return out, err
}

func (c *Client) MemberStats(ctx context.Context, memberID string) (MemberStats, error) {
	var out MemberStats
	_, err := c.do(ctx, http.MethodGet, "/subs/members/"+url.PathEscape(memberID)+"/stats", nil, nil, "data", &out)
	return out, err
}

func (c *Client) MovieStats(ctx context.Context, movieID string) (MovieStats, error) {
	var out MovieStats
	_, err := c.do(ctx, http.MethodGet, "/subs/movies/"+url.PathEscape(movieID)+"/stats", nil, nil, "data", &out)
	return out, err
}

// AddSubscription records a watch. A zero watched lets the server use now.
func (c *Client) AddSubscription(ctx context.Context, memberID, movieID string, watched time.Time) (models.SubscriptionView, error) {
	body := pair{MemberID: memberID, MovieID: movieID}
	if !watched.IsZero() {
		body.WatchedDate = watched.UTC().Format(time.RFC3339)
	}
	var out models.SubscriptionView
	_, err := c.do(ctx, http.MethodPost, "/subs/addsubscription", nil, body, "subscription", &out)
	return out, err
}

func (c *Client) UpdateWatchedDate(ctx context.Context, memberID, movieID string, watched time.Time) (models.SubscriptionView, error) {
	body := pair{MemberID: memberID, MovieID: movieID, WatchedDate: watched.UTC().Format(time.RFC3339)}
	var out models.SubscriptionView
	_, err := c.do(ctx, http.MethodPatch, "/subs/updatedate", nil, body, "subscription", &out)
	return out, err
}

func (c *Client) RemoveSubscription(ctx context.Context, memberID, movieID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/subs/removesubscription", nil, pair{MemberID: memberID, MovieID: movieID}, "", nil)
	return err
}
