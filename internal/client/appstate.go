package client

// State is the client's app state: one store per server collection, sharing
// a Client. Member and movie deletes also clear the matching cached
// subscriptions, as the server cascades them.
type State struct {
	Auth          *AuthStore
	Members       *MembersStore
	Movies        *MoviesStore
	Subscriptions *SubscriptionsStore
}

func NewState(c *Client) *State {
	subs := NewSubscriptionsStore(c)
	members := NewMembersStore(c)
	members.subs = subs
	movies := NewMoviesStore(c)
	movies.subs = subs
	return &State{
		Auth:          NewAuthStore(c),
		Members:       members,
		Movies:        movies,
		Subscriptions: subs,
	}
}
