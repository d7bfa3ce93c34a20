package auth

import (
	"context"

	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/types"
)

// Claims is the identity carried by a portal token
type Claims struct {
	UserID      string
	Username    string
	Email       string
	IsStaff     bool
	IsSuperuser bool
}

// ToActor converts verified claims into the request identity
func (c *Claims) ToActor() types.Actor {
	return types.Actor{
		ID:          c.UserID,
		Username:    c.Username,
		Email:       c.Email,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
	}
}

// Provider verifies tokens issued by the authentication service. The portal
// never issues credentials for end users itself.
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewJWTAuth(cfg)
}
