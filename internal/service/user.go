package service

import (
	"context"

	"github.com/logiport/portal/internal/api/dto"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

type UserService interface {
	GetUserInfo(ctx context.Context, actor types.Actor) (*dto.UserResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

// GetUserInfo returns the stored account behind the token. A token for an
// account that no longer exists is rejected.
func (s *userService) GetUserInfo(ctx context.Context, actor types.Actor) (*dto.UserResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Your account could not be found").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}
