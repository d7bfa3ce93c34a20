package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/types"
)

// queryTrace logs one statement when it completes. Statements slower than
// slowAfter are logged at warn level.
type queryTrace struct {
	logger    *logger.Logger
	query     string
	params    interface{}
	start     time.Time
	txID      string
	slowAfter time.Duration
}

func (qt *queryTrace) done(ctx context.Context, err error) {
	elapsed := time.Since(qt.start)
	fields := []interface{}{
		"duration_ms", elapsed.Milliseconds(),
		"query", qt.query,
		"params", fmt.Sprintf("%+v", qt.params),
	}
	if qt.txID != "" {
		fields = append(fields, "tx_id", qt.txID)
	}
	if types.IsSnapshot(ctx) {
		fields = append(fields, "snapshot", true)
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		qt.logger.Errorw("database query failed", append(fields, "error", err.Error())...)
	case qt.slowAfter > 0 && elapsed > qt.slowAfter:
		qt.logger.Warnw("slow database query", fields...)
	default:
		qt.logger.Debugw("database query completed", fields...)
	}
}

// TracedQuerier logs every statement it runs against the wrapped Querier
type TracedQuerier struct {
	Querier
	logger    *logger.Logger
	txID      string
	slowAfter time.Duration
}

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string, slowAfter time.Duration) *TracedQuerier {
	return &TracedQuerier{
		Querier:   q,
		logger:    logger,
		txID:      txID,
		slowAfter: slowAfter,
	}
}

func (tq *TracedQuerier) trace(query string, params interface{}) *queryTrace {
	return &queryTrace{
		logger:    tq.logger,
		query:     query,
		params:    params,
		start:     time.Now(),
		txID:      tq.txID,
		slowAfter: tq.slowAfter,
	}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	t := tq.trace(query, args)
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	t.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	t := tq.trace(query, arg)
	result, err := tq.Querier.NamedExecContext(ctx, query, arg)
	t.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	t := tq.trace(query, args)
	rows, err := tq.Querier.QueryContext(ctx, query, args...)
	t.done(ctx, err)
	return rows, err
}

func (tq *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	t := tq.trace(query, args)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	t.done(ctx, err)
	return err
}

func (tq *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	t := tq.trace(query, args)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	t.done(ctx, err)
	return err
}
