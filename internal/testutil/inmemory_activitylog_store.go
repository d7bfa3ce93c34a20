package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/logiport/portal/internal/domain/activitylog"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryActivityLogStore implements activitylog.Repository
type InMemoryActivityLogStore struct {
	*InMemoryStore[*activitylog.ActivityLog]

	failMu  sync.Mutex
	failErr error
}

func NewInMemoryActivityLogStore() *InMemoryActivityLogStore {
	return &InMemoryActivityLogStore{
		InMemoryStore: NewInMemoryStore[*activitylog.ActivityLog](),
	}
}

// FailWrites makes every subsequent Create return err; nil restores normal writes
func (s *InMemoryActivityLogStore) FailWrites(err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failErr = err
}

func copyActivityLog(l *activitylog.ActivityLog) *activitylog.ActivityLog {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func (s *InMemoryActivityLogStore) Create(ctx context.Context, l *activitylog.ActivityLog) error {
	s.failMu.Lock()
	failErr := s.failErr
	s.failMu.Unlock()

	if failErr != nil {
		return ierr.WithError(failErr).
			WithHint("Failed to record activity").
			Mark(ierr.ErrDatabase)
	}
	return s.InMemoryStore.Create(ctx, l.ID, copyActivityLog(l))
}

func (s *InMemoryActivityLogStore) List(ctx context.Context, filter *types.ActivityLogFilter) ([]*activitylog.ActivityLog, error) {
	if filter == nil {
		filter = &types.ActivityLogFilter{}
	}
	order := filter.GetOrder()
	items, err := s.InMemoryStore.List(ctx, filter, activityLogFilterFn, func(a, b *activitylog.ActivityLog) bool {
		if cmp := a.Timestamp.Compare(b.Timestamp); cmp != 0 {
			return orderedBefore(order, cmp)
		}
		return orderedBefore(order, strings.Compare(a.ID, b.ID))
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(l *activitylog.ActivityLog, _ int) *activitylog.ActivityLog {
		return copyActivityLog(l)
	}), nil
}

func (s *InMemoryActivityLogStore) Count(ctx context.Context, filter *types.ActivityLogFilter) (int64, error) {
	if filter == nil {
		filter = &types.ActivityLogFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, activityLogFilterFn)
}

func activityLogFilterFn(ctx context.Context, l *activitylog.ActivityLog, filter interface{}) bool {
	f, ok := filter.(*types.ActivityLogFilter)
	if !ok {
		return false
	}
	if f.UserID != "" && l.UserID != f.UserID {
		return false
	}
	return true
}
