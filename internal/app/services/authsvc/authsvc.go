// Package authsvc signs operators up and in. Passwords are stored as
// bcrypt hashes; the session cookie itself is handled by system/auth.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userstore "github.com/dalemusser/moviehub/internal/app/store/users"
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/dalemusser/moviehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/moviehub/internal/app/system/inputval"
	"github.com/dalemusser/moviehub/internal/app/system/normalize"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/dalemusser/moviehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgFieldsRequired     = "All fields are required"
	MsgUsernameTaken      = "Username already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgSignedUp           = "User created successfully"
	MsgLoggedIn           = "Logged in successfully"
)

// MinPasswordLen is the shortest password Signup accepts.
const MinPasswordLen = 6

// SignupInput is the body of POST /auth/signup.
type SignupInput struct {
	FullName string `json:"fullName" validate:"max=200" label:"Full name"`
	Username string `json:"username" validate:"max=100" label:"Username"`
	Password string `json:"password" validate:"min=6,max=72" label:"Password"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service struct {
	users   *userstore.Store
	fetcher *userstore.Fetcher
	cost    int
}

// New builds the service. cost is the bcrypt cost; values outside bcrypt's
// range fall back to bcrypt.DefaultCost.
func New(db *mongo.Database, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		users:   userstore.New(db),
		fetcher: userstore.NewFetcher(db),
		cost:    cost,
	}
}

// Signup creates an operator account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (result.Result[models.AppUser], error) {
	in.FullName = normalize.Name(htmlsanitize.PlainText(in.FullName))
	in.Username = strings.TrimSpace(in.Username)
	if in.FullName == "" || in.Username == "" || in.Password == "" {
		return result.Invalid[models.AppUser](MsgFieldsRequired), nil
	}
	if v := inputval.Validate(in); v.HasErrors() {
		return result.Invalid[models.AppUser](v.First()), nil
	}

	_, err := s.users.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return result.Conflict[models.AppUser](MsgUsernameTaken), nil
	case !errors.Is(err, userstore.ErrNotFound):
		return result.Result[models.AppUser]{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return result.Result[models.AppUser]{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, models.AppUser{
		FullName: in.FullName,
		Username: in.Username,
		Password: string(hash),
	})
	if errors.Is(err, userstore.ErrDuplicateUsername) {
		return result.Conflict[models.AppUser](MsgUsernameTaken), nil
	}
	if err != nil {
		return result.Result[models.AppUser]{}, fmt.Errorf("create user: %w", err)
	}
	return result.Created(u, MsgSignedUp), nil
}

// Login checks the credentials. Unknown usernames and wrong passwords get
// the same message.
func (s *Service) Login(ctx context.Context, in LoginInput) (result.Result[models.AppUser], error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return result.Invalid[models.AppUser](MsgFieldsRequired), nil
	}

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, userstore.ErrNotFound) {
		return result.Invalid[models.AppUser](MsgInvalidCredentials), nil
	}
	if err != nil {
		return result.Result[models.AppUser]{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return result.Invalid[models.AppUser](MsgInvalidCredentials), nil
	}
	return result.OK(u, MsgLoggedIn), nil
}

// FetchUser implements auth.UserFetcher.
func (s *Service) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	return s.fetcher.FetchUser(ctx, userID)
}

// SessionUser is the session identity for u.
func SessionUser(u models.AppUser) *auth.SessionUser {
	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Name:     u.FullName,
		Username: u.Username,
	}
}
