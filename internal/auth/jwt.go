package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/logiport/portal/internal/config"
	ierr "github.com/logiport/portal/internal/errors"
)

const (
	claimUserID      = "user_id"
	claimUsername    = "username"
	claimEmail       = "email"
	claimIsStaff     = "is_staff"
	claimIsSuperuser = "is_superuser"
)

type jwtAuth struct {
	AuthConfig config.AuthConfig
}

func NewJWTAuth(cfg *config.Configuration) *jwtAuth {
	return &jwtAuth{
		AuthConfig: cfg.Auth,
	}
}

func (f *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(f.AuthConfig.Secret), nil
	})

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	// Parse only checks exp when the claim is present
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return nil, ierr.NewError("token missing expiry").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user id").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	username, _ := claims[claimUsername].(string)
	email, _ := claims[claimEmail].(string)
	isStaff, _ := claims[claimIsStaff].(bool)
	isSuperuser, _ := claims[claimIsSuperuser].(bool)

	return &Claims{
		UserID:      userID,
		Username:    username,
		Email:       email,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}, nil
}

// GenerateToken signs claims with the shared secret. The portal uses it for
// local tooling and tests only.
func GenerateToken(secret string, c Claims, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimUserID:      c.UserID,
		claimUsername:    c.Username,
		claimEmail:       c.Email,
		claimIsStaff:     c.IsStaff,
		claimIsSuperuser: c.IsSuperuser,
		"exp":            time.Now().Add(ttl).Unix(),
		"iat":            time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}
