package postgres

import (
	"context"

	"github.com/logiport/portal/internal/logger"
	sentryService "github.com/logiport/portal/internal/sentry"
	"go.uber.org/fx"
)

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// WithSnapshot runs the given function against one consistent read view
	WithSnapshot(ctx context.Context, fn func(context.Context) error) error
}

// Module provides an fx.Option to integrate the postgres client with the application
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
	)
}

// Client decorates DB with Sentry span tracking for transactions and snapshots
type Client struct {
	db     *DB
	sentry *sentryService.Service
	logger *logger.Logger
}

// NewClient creates a new Sentry-instrumented postgres client
func NewClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &Client{
		db:     db,
		sentry: sentry,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with Sentry span tracking
func (c *Client) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
	})
	if span != nil {
		defer span.Finish()
	}

	return c.db.WithTx(spanCtx, fn)
}

// WithSnapshot wraps the given function in a read snapshot with Sentry span tracking
func (c *Client) WithSnapshot(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.snapshot", map[string]interface{}{
		"operation": "snapshot",
	})
	if span != nil {
		defer span.Finish()
	}

	return c.db.WithSnapshot(spanCtx, fn)
}
