package dto

import (
	"github.com/logiport/portal/internal/domain/activitylog"
	"github.com/logiport/portal/internal/types"
)

type ActivityLogResponse struct {
	*activitylog.ActivityLog
}

// ListActivityLogsResponse represents the response for listing activity
type ListActivityLogsResponse = types.ListResponse[*ActivityLogResponse]
