package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T, filter interface{}) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// InMemoryStore implements a generic in-memory store. Reads made through a
// context opened by MockPostgresClient.WithSnapshot see the items as they were
// at the first read of that snapshot, across all tracked stores.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// snapshotKey identifies the underlying store even when reached through an
// embedding wrapper
func (s *InMemoryStore[T]) snapshotKey() any {
	return s
}

func (s *InMemoryStore[T]) cloneItems() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Assign(map[string]T{}, s.items)
}

// read calls fn with the items visible to ctx. Snapshot views are private
// copies, so the store lock is only held for live reads.
func (s *InMemoryStore[T]) read(ctx context.Context, fn func(items map[string]T)) {
	if snap, ok := snapshotFromContext(ctx); ok {
		fn(snap.view(s).(map[string]T))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.items)
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewError("item already exists").
			WithHintf("An item with id %s already exists", id).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	var exists bool
	s.read(ctx, func(items map[string]T) {
		item, exists = items[id]
	})
	if exists {
		return item, nil
	}

	var zero T
	return zero, ierr.NewError("item not found").
		WithHintf("Item %s was not found", id).
		Mark(ierr.ErrNotFound)
}

// List retrieves items based on filter
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	result := []T{}
	s.read(ctx, func(items map[string]T) {
		for _, item := range items {
			if filterFn == nil || filterFn(ctx, item, filter) {
				result = append(result, item)
			}
		}
	})

	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	// Apply pagination if filter implements BaseFilter
	if f, ok := filter.(types.BaseFilter); ok && !f.IsUnlimited() {
		start := f.GetOffset()
		if start >= len(result) {
			return []T{}, nil
		}

		end := start + f.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		return result[start:end], nil
	}

	return result, nil
}

// Count returns the total number of items matching the filter
func (s *InMemoryStore[T]) Count(ctx context.Context, filter interface{}, filterFn FilterFunc[T]) (int64, error) {
	var count int64
	s.read(ctx, func(items map[string]T) {
		for _, item := range items {
			if filterFn == nil || filterFn(ctx, item, filter) {
				count++
			}
		}
	})

	return count, nil
}

// Update updates an existing item
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewError("item not found").
			WithHintf("Item %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	s.items[id] = item
	return nil
}

// Delete removes an item from the store
func (s *InMemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewError("item not found").
			WithHintf("Item %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.items, id)
	return nil
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// Len returns the number of stored items, ignoring any snapshot
func (s *InMemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// orderedBefore compares two keys according to the filter order, newest first
// unless the filter asks for ascending order
func orderedBefore(order string, cmp int) bool {
	if order == types.OrderAsc {
		return cmp < 0
	}
	return cmp > 0
}
