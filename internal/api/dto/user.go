package dto

import (
	"github.com/logiport/portal/internal/domain/user"
	"github.com/logiport/portal/internal/types"
)

type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Role        types.Role `json:"role"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
}

func NewUserResponse(u *user.User) *UserResponse {
	actor := u.ToActor()
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        actor.Role(),
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}
