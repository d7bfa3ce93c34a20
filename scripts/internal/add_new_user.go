package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/logiport/portal/internal/auth"
	"github.com/logiport/portal/internal/domain/user"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/repository"
	"github.com/logiport/portal/internal/types"
)

const devTokenTTL = 24 * time.Hour

// AddNewUser creates the user named by USER_EMAIL and USERNAME unless one
// with that email exists, then prints a development token for it
func AddNewUser() error {
	email := os.Getenv("USER_EMAIL")
	if email == "" {
		return fmt.Errorf("user email is required")
	}
	username := os.Getenv("USERNAME")
	if username == "" {
		username = types.ExtractNameFromEmail(email)
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(env.db, env.log)

	u, err := userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		env.log.Infow("user already exists", "id", u.ID, "email", u.Email)
	case ierr.IsNotFound(err):
		u = user.NewUser(username, email, os.Getenv("USER_IS_STAFF") == "true")
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		env.log.Infow("created user", "id", u.ID, "email", u.Email, "is_staff", u.IsStaff)
	default:
		return fmt.Errorf("failed to look up user: %w", err)
	}

	return printToken(env.cfg.Auth.Secret, u)
}

// GenerateDevToken prints a token for the existing user named by USER_EMAIL
func GenerateDevToken() error {
	email := os.Getenv("USER_EMAIL")
	if email == "" {
		return fmt.Errorf("user email is required")
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	u, err := repository.NewUserRepository(env.db, env.log).GetByEmail(context.Background(), email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return printToken(env.cfg.Auth.Secret, u)
}

func printToken(secret string, u *user.User) error {
	token, err := auth.GenerateToken(secret, auth.Claims{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}, devTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Printf("user_id: %s\nrole: %s\ntoken: %s\n", u.ID, u.ToActor().Role(), token)
	return nil
}
