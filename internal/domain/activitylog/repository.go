package activitylog

import (
	"context"

	"github.com/logiport/portal/internal/types"
)

// Repository only appends and reads; entries are never updated or deleted
type Repository interface {
	Create(ctx context.Context, log *ActivityLog) error
	// List returns entries newest first with id as a tie-break
	List(ctx context.Context, filter *types.ActivityLogFilter) ([]*ActivityLog, error)
	Count(ctx context.Context, filter *types.ActivityLogFilter) (int64, error)
}
