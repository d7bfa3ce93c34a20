package postgres

import (
	"context"

	"github.com/logiport/portal/internal/domain/user"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, username, email, is_staff, is_superuser, created_at)
	VALUES (:id, :username, :email, :is_staff, :is_superuser, :created_at)
	`

	r.logger.Debugw("creating user", "user_id", u.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this username or email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id); err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("User %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, email); err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int64, error) {
	span := StartRepositorySpan(ctx, "user", "count", nil)
	defer FinishSpan(span)

	where := &whereBuilder{}
	if filter != nil && filter.IsStaff != nil {
		where.add("is_staff = ?", *filter.IsStaff)
	}

	var count int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM users"+where.String()), where.args...)
	if err != nil {
		SetSpanError(span, err)
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
