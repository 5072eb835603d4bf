// Package membersvc implements the member catalog operations used by the
// members API: validation, uniqueness, partial updates and the cascading
// delete of a member's subscriptions.
package membersvc

import (
	"context"
	"errors"
	"fmt"

	memberstore "github.com/dalemusser/moviehub/internal/app/store/members"
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
	MsgListed         = "Members retrieved successfully"
	MsgFound          = "Member retrieved successfully"
	MsgCreated        = "Member created successfully"
	MsgUpdated        = "Member updated successfully"
	MsgDeleted        = "Member deleted successfully"
	MsgNoneFound      = "No members found"
	MsgInvalidID      = "Invalid member ID format"
	MsgNotFound       = "Member not found"
	MsgCityRequired   = "Member city is required"
	MsgFieldsRequired = "All fields are required"
	MsgAlreadyExists  = "Member already exists"
)

// Input is the body accepted by create and update. Empty fields are
// ignored by Update.
type Input struct {
	FullName string `json:"fullName" validate:"omitempty,max=200" label:"Full name"`
	Email    string `json:"email" validate:"omitempty,emailaddr" label:"Email"`
	City     string `json:"city" validate:"omitempty,max=200" label:"City"`
}

func (in Input) clean() Input {
	return Input{
		FullName: normalize.Name(htmlsanitize.PlainText(in.FullName)),
		Email:    normalize.Email(in.Email),
		City:     normalize.Name(htmlsanitize.PlainText(in.City)),
	}
}

// Deleted is the outcome of Delete.
type Deleted struct {
	Member               models.Member
	SubscriptionsRemoved int64
}

type Service struct {
	client  *mongo.Client
	members *memberstore.Store
	subs    *subscriptionstore.Store
}

func New(db *mongo.Database) *Service {
	return &Service{
		client:  db.Client(),
		members: memberstore.New(db),
		subs:    subscriptionstore.New(db),
	}
}

// List returns every member.
func (s *Service) List(ctx context.Context) (result.Result[[]models.Member], error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return result.Result[[]models.Member]{}, fmt.Errorf("list members: %w", err)
	}
	return result.List(members, MsgListed), nil
}

// Get returns one member by id.
func (s *Service) Get(ctx context.Context, id string) (result.Result[models.Member], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[models.Member](MsgInvalidID), nil
	}
	m, err := s.members.GetByID(ctx, oid)
	if errors.Is(err, memberstore.ErrNotFound) {
		return result.NotFound[models.Member](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[models.Member]{}, fmt.Errorf("get member: %w", err)
	}
	return result.OK(m, MsgFound), nil
}

// SearchByCity returns members whose city contains city, ignoring case.
func (s *Service) SearchByCity(ctx context.Context, city string) (result.Result[[]models.Member], error) {
	city = normalize.QueryParam(city)
	if city == "" {
		return result.Invalid[[]models.Member](MsgCityRequired), nil
	}
	members, err := s.members.SearchByCity(ctx, city)
	if err != nil {
		return result.Result[[]models.Member]{}, fmt.Errorf("search members: %w", err)
	}
	msg := MsgNoneFound
	if len(members) > 0 {
		msg = fmt.Sprintf("%d Members found successfully", len(members))
	}
	return result.List(members, msg), nil
}

// Create adds a member. Every field is required and the email must be
// unused.
func (s *Service) Create(ctx context.Context, in Input) (result.Result[models.Member], error) {
	in = in.clean()
	if in.FullName == "" || in.Email == "" || in.City == "" {
		return result.Invalid[models.Member](MsgFieldsRequired), nil
	}
	if v := inputval.Validate(in); v.HasErrors() {
		return result.Invalid[models.Member](v.First()), nil
	}

	// The unique index still rejects a concurrent insert of the same email.
	taken, err := s.members.EmailExists(ctx, in.Email)
	if err != nil {
		return result.Result[models.Member]{}, fmt.Errorf("check member email: %w", err)
	}
	if taken {
		return result.Conflict[models.Member](MsgAlreadyExists), nil
	}

	m, err := s.members.Create(ctx, models.Member{FullName: in.FullName, Email: in.Email, City: in.City})
	if errors.Is(err, memberstore.ErrDuplicateEmail) {
		return result.Conflict[models.Member](MsgAlreadyExists), nil
	}
	if err != nil {
		return result.Result[models.Member]{}, fmt.Errorf("create member: %w", err)
	}
	return result.Created(m, MsgCreated), nil
}

// Update overwrites the non-empty fields of in.
func (s *Service) Update(ctx context.Context, id string, in Input) (result.Result[models.Member], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[models.Member](MsgInvalidID), nil
	}
	in = in.clean()
	if v := inputval.Validate(in); v.HasErrors() {
		return result.Invalid[models.Member](v.First()), nil
	}

	if in.Email != "" {
		taken, err := s.members.EmailExistsForOther(ctx, in.Email, oid)
		if err != nil {
			return result.Result[models.Member]{}, fmt.Errorf("check member email: %w", err)
		}
		if taken {
			return result.Conflict[models.Member](MsgAlreadyExists), nil
		}
	}

	m, err := s.members.Update(ctx, oid, models.Member{FullName: in.FullName, Email: in.Email, City: in.City})
	switch {
	case errors.Is(err, memberstore.ErrNotFound):
		return result.NotFound[models.Member](MsgNotFound), nil
	case errors.Is(err, memberstore.ErrDuplicateEmail):
		return result.Conflict[models.Member](MsgAlreadyExists), nil
	case err != nil:
		return result.Result[models.Member]{}, fmt.Errorf("update member: %w", err)
	}
	return result.OK(m, MsgUpdated), nil
}

// Delete removes the member together with its subscriptions.
func (s *Service) Delete(ctx context.Context, id string) (result.Result[Deleted], error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return result.Invalid[Deleted](MsgInvalidID), nil
	}

	var out Deleted
	err := txn.Run(ctx, s.client, func(ctx context.Context) error {
		m, err := s.members.Delete(ctx, oid)
		if err != nil {
			return err
		}
		n, err := s.subs.DeleteByMember(ctx, oid)
		if err != nil {
			return err
		}
		out = Deleted{Member: m, SubscriptionsRemoved: n}
		return nil
	})
	if errors.Is(err, memberstore.ErrNotFound) {
		return result.NotFound[Deleted](MsgNotFound), nil
	}
	if err != nil {
		return result.Result[Deleted]{}, fmt.Errorf("delete member: %w", err)
	}
	return result.OK(out, MsgDeleted), nil
}
