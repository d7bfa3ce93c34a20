package types

import (
	ierr "github.com/logiport/portal/internal/errors"
)

// Role selects the dashboard variant and the RBAC permission set of an actor
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleClient:
		return nil
	default:
		return ierr.NewError("invalid role").
			WithHintf("Role must be one of: %s, %s", RoleAdmin, RoleClient).
			WithReportableDetails(map[string]any{
				"role": r,
			}).
			Mark(ierr.ErrValidation)
	}
}

// Actor is the authenticated identity behind a request. It is supplied by
// the authentication collaborator and never changes within a request.
type Actor struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IsAdmin reports whether the actor may see staff-only aggregates
func (a Actor) IsAdmin() bool {
	return a.IsStaff || a.IsSuperuser
}

// Role derives the role from the staff and superuser flags
func (a Actor) Role() Role {
	if a.IsAdmin() {
		return RoleAdmin
	}
	return RoleClient
}

// DisplayName is used in notification greetings
func (a Actor) DisplayName() string {
	if a.Username != "" {
		return a.Username
	}
	return ExtractNameFromEmail(a.Email)
}

func (a Actor) Validate() error {
	if a.ID == "" {
		return ierr.NewError("actor id is required").
			WithHint("An authenticated user is required").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
