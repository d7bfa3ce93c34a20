package testutil

import (
	"context"
	"sync"

	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

type ctxKeyMemSnapshot struct{}

// SnapshotSource is a store whose items can be copied into a snapshot view
type SnapshotSource interface {
	snapshotKey() any
	cloneItems() any
}

// memSnapshot holds the frozen item maps of one WithSnapshot call. The first
// read of any store freezes every tracked store at once, the way a repeatable
// read transaction fixes its view for all tables on the first statement.
// Untracked stores are frozen on their own first read.
type memSnapshot struct {
	mu      sync.Mutex
	sources []SnapshotSource
	frozen  map[any]any
}

func (m *memSnapshot) view(store SnapshotSource) any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen == nil {
		m.frozen = make(map[any]any, len(m.sources))
		for _, src := range m.sources {
			m.frozen[src.snapshotKey()] = src.cloneItems()
		}
	}
	if view, ok := m.frozen[store.snapshotKey()]; ok {
		return view
	}
	view := store.cloneItems()
	m.frozen[store.snapshotKey()] = view
	return view
}

func snapshotFromContext(ctx context.Context) (*memSnapshot, bool) {
	snap, ok := ctx.Value(ctxKeyMemSnapshot{}).(*memSnapshot)
	return snap, ok
}

// MockPostgresClient is a mock implementation of postgres client for testing
type MockPostgresClient struct {
	logger *logger.Logger

	mu        sync.Mutex
	sources   []SnapshotSource
	txCount   int
	snapCount int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// Track registers stores that every snapshot freezes together
func (c *MockPostgresClient) Track(sources ...SnapshotSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, sources...)
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.mu.Lock()
	c.txCount++
	c.mu.Unlock()

	return fn(ctx)
}

// WithSnapshot runs fn with every tracked store frozen at the first read made
// inside it. Nested calls reuse the outer snapshot.
func (c *MockPostgresClient) WithSnapshot(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := snapshotFromContext(ctx); ok {
		return fn(ctx)
	}

	c.mu.Lock()
	c.snapCount++
	snap := &memSnapshot{sources: append([]SnapshotSource(nil), c.sources...)}
	c.mu.Unlock()

	ctx = context.WithValue(ctx, ctxKeyMemSnapshot{}, snap)
	ctx = context.WithValue(ctx, types.CtxDBSnapshot, true)
	return fn(ctx)
}

// TxCount returns the number of WithTx calls made so far
func (c *MockPostgresClient) TxCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txCount
}

// SnapshotCount returns the number of outermost WithSnapshot calls made so far
func (c *MockPostgresClient) SnapshotCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapCount
}
