package activitylog

import (
	"time"

	"github.com/logiport/portal/internal/types"
)

// ActivityLog is one append-only audit entry
type ActivityLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

func NewActivityLog(userID, action string) *ActivityLog {
	return &ActivityLog{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY_LOG),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}
