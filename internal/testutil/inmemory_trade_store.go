package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryTradeStore implements trade.Repository
type InMemoryTradeStore struct {
	*InMemoryStore[*trade.Trade]
}

func NewInMemoryTradeStore() *InMemoryTradeStore {
	return &InMemoryTradeStore{
		InMemoryStore: NewInMemoryStore[*trade.Trade](),
	}
}

func copyTrade(t *trade.Trade) *trade.Trade {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (s *InMemoryTradeStore) Create(ctx context.Context, t *trade.Trade) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTrade(t))
}

func (s *InMemoryTradeStore) Get(ctx context.Context, id string) (*trade.Trade, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTrade(t), nil
}

func (s *InMemoryTradeStore) List(ctx context.Context, filter *types.TradeFilter) ([]*trade.Trade, error) {
	if filter == nil {
		filter = &types.TradeFilter{}
	}
	order := filter.GetOrder()
	items, err := s.InMemoryStore.List(ctx, filter, tradeFilterFn, func(a, b *trade.Trade) bool {
		if cmp := a.TradeDate.Compare(b.TradeDate); cmp != 0 {
			return orderedBefore(order, cmp)
		}
		if cmp := a.CreatedAt.Compare(b.CreatedAt); cmp != 0 {
			return orderedBefore(order, cmp)
		}
		return orderedBefore(order, strings.Compare(a.ID, b.ID))
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(t *trade.Trade, _ int) *trade.Trade {
		return copyTrade(t)
	}), nil
}

func (s *InMemoryTradeStore) Count(ctx context.Context, filter *types.TradeFilter) (int64, error) {
	if filter == nil {
		filter = &types.TradeFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, tradeFilterFn)
}

func (s *InMemoryTradeStore) SumPrice(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return lo.Reduce(items, func(sum decimal.Decimal, t *trade.Trade, _ int) decimal.Decimal {
		return sum.Add(t.Price)
	}, decimal.Zero), nil
}

func (s *InMemoryTradeStore) SumPriceByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyAmount, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, t *trade.Trade, _ interface{}) bool {
		return !t.CreatedAt.Before(since)
	}, nil)
	if err != nil {
		return nil, err
	}

	sums := make(map[time.Time]decimal.Decimal)
	for _, t := range items {
		month := types.StartOfMonth(t.CreatedAt)
		sums[month] = sums[month].Add(t.Price)
	}

	result := make([]*types.MonthlyAmount, 0, len(sums))
	for month, amount := range sums {
		result = append(result, &types.MonthlyAmount{Month: month, Amount: amount})
	}
	return result, nil
}

func tradeFilterFn(ctx context.Context, t *trade.Trade, filter interface{}) bool {
	f, ok := filter.(*types.TradeFilter)
	if !ok {
		return false
	}
	if f.UserID != "" && t.UserID != f.UserID {
		return false
	}
	return true
}
