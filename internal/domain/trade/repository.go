package trade

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for trade data access
type Repository interface {
	Create(ctx context.Context, trade *Trade) error
	Get(ctx context.Context, id string) (*Trade, error)
	// List returns trades ordered by trade date, latest first
	List(ctx context.Context, filter *types.TradeFilter) ([]*Trade, error)
	Count(ctx context.Context, filter *types.TradeFilter) (int64, error)
	// SumPrice returns zero when no trades exist
	SumPrice(ctx context.Context) (decimal.Decimal, error)
	// SumPriceByMonth groups trades created at or after since by creation month
	SumPriceByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyAmount, error)
}
