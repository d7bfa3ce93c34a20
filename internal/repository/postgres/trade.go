package postgres

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/domain/trade"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
	"github.com/shopspring/decimal"
)

type tradeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTradeRepository(db *postgres.DB, logger *logger.Logger) trade.Repository {
	return &tradeRepository{db: db, logger: logger}
}

func (r *tradeRepository) Create(ctx context.Context, t *trade.Trade) error {
	query := `
		INSERT INTO trades (id, product, quantity, price, trade_date, user_id, created_at)
		VALUES (:id, :product, :quantity, :price, :trade_date, :user_id, :created_at)`

	r.logger.Debugw("creating trade",
		"trade_id", t.ID,
		"user_id", t.UserID,
		"product", t.Product,
	)

	span := StartRepositorySpan(ctx, "trade", "create", map[string]interface{}{
		"trade_id": t.ID,
	})
	defer FinishSpan(span)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t); err != nil {
		SetSpanError(span, err)
		return ierr.WithError(err).
			WithHint("Failed to save trade").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *tradeRepository) Get(ctx context.Context, id string) (*trade.Trade, error) {
	var t trade.Trade
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, `SELECT * FROM trades WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("Trade %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get trade").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *tradeRepository) where(filter *types.TradeFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter != nil && filter.UserID != "" {
		where.add("user_id = ?", filter.UserID)
	}
	return where
}

func (r *tradeRepository) List(ctx context.Context, filter *types.TradeFilter) ([]*trade.Trade, error) {
	span := StartRepositorySpan(ctx, "trade", "list", nil)
	defer FinishSpan(span)

	if filter == nil {
		filter = &types.TradeFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	where := r.where(filter)
	query, args := paginate("SELECT * FROM trades"+where.String(), where.args, filter.QueryFilter, "trade_date", "created_at", "id")

	trades := make([]*trade.Trade, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &trades, query, args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list trades").
			Mark(ierr.ErrDatabase)
	}
	return trades, nil
}

func (r *tradeRepository) Count(ctx context.Context, filter *types.TradeFilter) (int64, error) {
	where := r.where(filter)

	var count int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM trades"+where.String()), where.args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count trades").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *tradeRepository) SumPrice(ctx context.Context) (decimal.Decimal, error) {
	span := StartRepositorySpan(ctx, "trade", "sum_price", nil)
	defer FinishSpan(span)

	// SUM over no rows is NULL
	var total decimal.Decimal
	err := r.db.GetQuerier(ctx).GetContext(ctx, &total, `SELECT COALESCE(SUM(price), 0) FROM trades`)
	if err != nil {
		SetSpanError(span, err)
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum trade revenue").
			Mark(ierr.ErrDatabase)
	}
	return total, nil
}

func (r *tradeRepository) SumPriceByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyAmount, error) {
	query := `
		SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, COALESCE(SUM(price), 0) AS amount
		FROM trades
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1`

	span := StartRepositorySpan(ctx, "trade", "sum_price_by_month", map[string]interface{}{
		"since": since,
	})
	defer FinishSpan(span)

	buckets := make([]*types.MonthlyAmount, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &buckets, query, since); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to group revenue by month").
			Mark(ierr.ErrDatabase)
	}
	return buckets, nil
}
