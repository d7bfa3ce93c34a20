package user

import (
	"time"

	"github.com/logiport/portal/internal/types"
)

// User is a portal account. Accounts are created by the authentication
// service; the portal only reads them.
type User struct {
	ID          string    `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Email       string    `db:"email" json:"email"`
	IsStaff     bool      `db:"is_staff" json:"is_staff"`
	IsSuperuser bool      `db:"is_superuser" json:"is_superuser"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func NewUser(username, email string, isStaff bool) *User {
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:  username,
		Email:     email,
		IsStaff:   isStaff,
		CreatedAt: time.Now().UTC(),
	}
}

// ToActor converts a stored account into the request identity
func (u *User) ToActor() types.Actor {
	return types.Actor{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}
