package postgres

import (
	"context"

	"github.com/logiport/portal/internal/domain/activitylog"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
)

type activityLogRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewActivityLogRepository(db *postgres.DB, logger *logger.Logger) activitylog.Repository {
	return &activityLogRepository{db: db, logger: logger}
}

func (r *activityLogRepository) Create(ctx context.Context, l *activitylog.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, timestamp)
		VALUES (:id, :user_id, :action, :timestamp)`

	r.logger.Debugw("appending activity log",
		"activity_log_id", l.ID,
		"user_id", l.UserID,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, l); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record activity").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *activityLogRepository) where(filter *types.ActivityLogFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter != nil && filter.UserID != "" {
		where.add("user_id = ?", filter.UserID)
	}
	return where
}

func (r *activityLogRepository) List(ctx context.Context, filter *types.ActivityLogFilter) ([]*activitylog.ActivityLog, error) {
	span := StartRepositorySpan(ctx, "activity_log", "list", nil)
	defer FinishSpan(span)

	if filter == nil {
		filter = &types.ActivityLogFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	where := r.where(filter)
	query, args := paginate("SELECT * FROM activity_logs"+where.String(), where.args, filter.QueryFilter, "timestamp", "id")

	logs := make([]*activitylog.ActivityLog, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &logs, query, args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list activity").
			Mark(ierr.ErrDatabase)
	}
	return logs, nil
}

func (r *activityLogRepository) Count(ctx context.Context, filter *types.ActivityLogFilter) (int64, error) {
	where := r.where(filter)

	var count int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM activity_logs"+where.String()), where.args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count activity").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
