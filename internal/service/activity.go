package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/activitylog"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

const (
	defaultRecentActivityLimit = 10

	actionShipmentCreated = "Created a new shipment with ID: %s"
	actionShipmentUpdated = "Updated shipment with ID: %s"
	actionTradeCreated    = "Created a new trade for product: %s"
)

// ActivityService is the append-only audit trail of user actions
type ActivityService interface {
	// Record appends one entry. Call it only after the write it describes
	// has committed.
	Record(ctx context.Context, actor types.Actor, description string) (*activitylog.ActivityLog, error)

	// RecordAfterCommit is Record for write paths: a failure is logged and
	// reported but never returned, so the committed write stands.
	RecordAfterCommit(ctx context.Context, actor types.Actor, description string)

	// Recent returns at most limit entries, newest first
	Recent(ctx context.Context, limit int) ([]*activitylog.ActivityLog, error)

	ListActivities(ctx context.Context, filter *types.ActivityLogFilter) (*dto.ListActivityLogsResponse, error)
}

type activityService struct {
	ServiceParams
}

func NewActivityService(params ServiceParams) ActivityService {
	return &activityService{
		ServiceParams: params,
	}
}

func (s *activityService) Record(ctx context.Context, actor types.Actor, description string) (*activitylog.ActivityLog, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ierr.NewError("activity description is required").
			WithHint("Activity description cannot be empty").
			Mark(ierr.ErrValidation)
	}

	entry := activitylog.NewActivityLog(actor.ID, description)
	if err := s.ActivityLogRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.Logger.Debugw("recorded activity",
		"activity_log_id", entry.ID,
		"user_id", actor.ID,
	)
	return entry, nil
}

func (s *activityService) RecordAfterCommit(ctx context.Context, actor types.Actor, description string) {
	if _, err := s.Record(ctx, actor, description); err != nil {
		s.Logger.Errorw("failed to record activity after commit",
			"error", err,
			"user_id", actor.ID,
			"action", description,
			"request_id", types.GetRequestID(ctx),
		)
		s.Sentry.CaptureOperationalFailure(ctx, "activity_log.append", err, map[string]string{
			"user_id": actor.ID,
		})
	}
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]*activitylog.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultRecentActivityLimit
	}
	if limit > types.FILTER_MAX_LIMIT {
		limit = types.FILTER_MAX_LIMIT
	}

	return s.ActivityLogRepo.List(ctx, &types.ActivityLogFilter{
		QueryFilter: types.NewLimitQueryFilter(limit),
	})
}

func (s *activityService) ListActivities(ctx context.Context, filter *types.ActivityLogFilter) (*dto.ListActivityLogsResponse, error) {
	if filter == nil {
		filter = &types.ActivityLogFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var (
		logs  []*activitylog.ActivityLog
		count int64
	)
	err := s.DB.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if logs, err = s.ActivityLogRepo.List(ctx, filter); err != nil {
			return err
		}
		count, err = s.ActivityLogRepo.Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(logs, func(l *activitylog.ActivityLog, _ int) *dto.ActivityLogResponse {
		return &dto.ActivityLogResponse{ActivityLog: l}
	})
	resp := types.NewListResponse(items, int(count), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func shipmentCreatedAction(id string) string {
	return fmt.Sprintf(actionShipmentCreated, id)
}

func shipmentUpdatedAction(id string) string {
	return fmt.Sprintf(actionShipmentUpdated, id)
}

func tradeCreatedAction(product string) string {
	return fmt.Sprintf(actionTradeCreated, product)
}
