package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dalemusser/moviehub/internal/domain/models"
)

// ErrFieldsRequired is returned before any request when a required
// credential is blank.
var ErrFieldsRequired = errors.New("all fields are required")

// AuthStore tracks the signed-in operator.
type AuthStore struct {
	mu   sync.RWMutex
	user *models.AppUser
	busy bool

	c *Client
}

func NewAuthStore(c *Client) *AuthStore {
	return &AuthStore{c: c}
}

// User returns the signed-in operator, or nil.
func (s *AuthStore) User() *models.AppUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Busy reports whether an auth call is in flight.
func (s *AuthStore) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// set ends a call, recording u (nil clears the user).
func (s *AuthStore) set(u *models.AppUser) {
	s.mu.Lock()
	s.user = u
	s.busy = false
	s.mu.Unlock()
}

func (s *AuthStore) start() {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()
}

func (s *AuthStore) Signup(ctx context.Context, fullName, username, password string) (models.AppUser, error) {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(username) == "" || password == "" {
		return models.AppUser{}, ErrFieldsRequired
	}
	s.start()
	u, err := s.c.Signup(ctx, fullName, username, password)
	if err != nil {
		s.set(nil)
		return models.AppUser{}, err
	}
	s.set(&u)
	return u, nil
}

func (s *AuthStore) Login(ctx context.Context, username, password string) (models.AppUser, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return models.AppUser{}, ErrFieldsRequired
	}
	s.start()
	u, err := s.c.Login(ctx, username, password)
	if err != nil {
		s.set(nil)
		return models.AppUser{}, err
	}
	s.set(&u)
	return u, nil
}

// Logout clears the local user even when the server call fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.start()
	err := s.c.Logout(ctx)
	s.set(nil)
	return err
}

// AuthCheck asks the server who is signed in and records the answer. It
// reports false for any failure, including a 401.
func (s *AuthStore) AuthCheck(ctx context.Context) bool {
	s.start()
	u, err := s.c.AuthCheck(ctx)
	if err != nil {
		s.set(nil)
		return false
	}
	s.set(&u)
	return true
}
