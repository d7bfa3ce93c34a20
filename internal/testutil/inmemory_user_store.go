package testutil

import (
	"context"
	"strings"

	"github.com/logiport/portal/internal/domain/user"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return ierr.NewError("user already exists").
			WithHintf("A user with email %s already exists", u.Email).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, u *user.User, _ interface{}) bool {
		return strings.EqualFold(u.Email, email)
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHintf("User with email %s was not found", email).
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *types.UserFilter) (int64, error) {
	if filter == nil {
		filter = &types.UserFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, userFilterFn)
}

func userFilterFn(ctx context.Context, u *user.User, filter interface{}) bool {
	f, ok := filter.(*types.UserFilter)
	if !ok {
		return false
	}
	if f.IsStaff != nil && u.IsStaff != *f.IsStaff {
		return false
	}
	return true
}
