package user

import (
	"context"

	"github.com/logiport/portal/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context, filter *types.UserFilter) (int64, error)
}
