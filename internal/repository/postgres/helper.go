package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/logiport/portal/internal/types"
)

const pqUniqueViolation = "23505"

// StartRepositorySpan creates a new span for a repository operation
// Returns nil if Sentry is not available in the context
func StartRepositorySpan(ctx context.Context, repository, operation string, params map[string]interface{}) *sentry.Span {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "repository."+repository+"."+operation)
	if span != nil {
		span.Description = "repository." + repository + "." + operation
		span.Op = "db.postgres"

		span.SetData("repository", repository)
		span.SetData("operation", operation)
		span.SetData("snapshot", types.IsSnapshot(ctx))

		for k, v := range params {
			span.SetData(k, v)
		}
	}

	return span
}

// FinishSpan safely finishes a span, handling nil spans
func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

// SetSpanError marks a span as failed and adds error information
func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}

	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// whereBuilder collects AND-ed conditions written with ? placeholders
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// paginate appends ORDER BY, LIMIT and OFFSET. orderBy lists the columns in
// priority order; each one takes the filter direction.
func paginate(query string, args []interface{}, filter *types.QueryFilter, orderBy ...string) (string, []interface{}) {
	direction := "DESC"
	if filter.GetOrder() == types.OrderAsc {
		direction = "ASC"
	}

	if len(orderBy) > 0 {
		cols := make([]string, len(orderBy))
		for i, col := range orderBy {
			cols[i] = fmt.Sprintf("%s %s", col, direction)
		}
		query += " ORDER BY " + strings.Join(cols, ", ")
	}

	if !filter.IsUnlimited() {
		query += " LIMIT ?"
		args = append(args, filter.GetLimit())
	}
	if filter.GetOffset() > 0 {
		query += " OFFSET ?"
		args = append(args, filter.GetOffset())
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
