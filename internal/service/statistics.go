package service

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/api/dto"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// placeholder series used when dashboard.series_source is placeholder
var (
	placeholderSeriesLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}
	placeholderShipmentValues = []int64{10, 15, 20, 18, 25, 30, 28}
	placeholderRevenueValues  = []int64{1000, 1200, 1500, 1400, 1600, 1800, 1750}
)

// StatisticsService computes read-only aggregates over the persisted state.
// Reads issued inside Snapshot observe a single point in time.
type StatisticsService interface {
	// Snapshot runs fn inside one consistent read view. Nested calls reuse
	// the outer view.
	Snapshot(ctx context.Context, fn func(ctx context.Context) error) error

	CountByStatus(ctx context.Context, status types.ShipmentStatus) (int64, error)

	// StatusBreakdown returns a count for every shipment status, zeros included
	StatusBreakdown(ctx context.Context) (map[types.ShipmentStatus]int64, error)

	TotalCount(ctx context.Context, kind types.EntityKind) (int64, error)

	// TotalRevenue is the sum of trade prices, zero when there are no trades
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// Series returns monthly shipment and revenue values for the months up
	// to and including the month of now
	Series(ctx context.Context, now time.Time) (*dto.SeriesData, error)

	// Overview gathers every aggregate in one snapshot
	Overview(ctx context.Context, now time.Time) (*dto.Statistics, error)
}

type statisticsService struct {
	ServiceParams
}

func NewStatisticsService(params ServiceParams) StatisticsService {
	return &statisticsService{
		ServiceParams: params,
	}
}

func (s *statisticsService) Snapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.DB.WithSnapshot(ctx, fn)
}

func (s *statisticsService) CountByStatus(ctx context.Context, status types.ShipmentStatus) (int64, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}
	return s.ShipmentRepo.Count(ctx, &types.ShipmentFilter{
		Status: lo.ToPtr(status),
	})
}

func (s *statisticsService) StatusBreakdown(ctx context.Context) (map[types.ShipmentStatus]int64, error) {
	breakdown := make(map[types.ShipmentStatus]int64, len(types.AllShipmentStatuses))
	err := s.Snapshot(ctx, func(ctx context.Context) error {
		for _, status := range types.AllShipmentStatuses {
			count, err := s.CountByStatus(ctx, status)
			if err != nil {
				return err
			}
			breakdown[status] = count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}

func (s *statisticsService) TotalCount(ctx context.Context, kind types.EntityKind) (int64, error) {
	if err := kind.Validate(); err != nil {
		return 0, err
	}

	switch kind {
	case types.EntityKindShipment:
		return s.ShipmentRepo.Count(ctx, nil)
	case types.EntityKindDocument:
		return s.DocumentRepo.Count(ctx, nil)
	case types.EntityKindTrade:
		return s.TradeRepo.Count(ctx, nil)
	case types.EntityKindClient:
		return s.UserRepo.Count(ctx, &types.UserFilter{IsStaff: lo.ToPtr(false)})
	default:
		return 0, ierr.NewErrorf("unsupported entity kind %s", kind).
			Mark(ierr.ErrSystem)
	}
}

func (s *statisticsService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.TradeRepo.SumPrice(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *statisticsService) Series(ctx context.Context, now time.Time) (*dto.SeriesData, error) {
	if s.Config.Dashboard.SeriesSource == types.SeriesSourcePlaceholder {
		return placeholderSeries(), nil
	}

	months := types.MonthWindow(now, s.seriesMonths())
	series := &dto.SeriesData{
		Labels:         make([]string, len(months)),
		ShipmentValues: make([]int64, len(months)),
		RevenueValues:  make([]decimal.Decimal, len(months)),
	}
	if len(months) == 0 {
		return series, nil
	}

	var (
		shipmentBuckets []*types.MonthlyCount
		revenueBuckets  []*types.MonthlyAmount
	)
	err := s.Snapshot(ctx, func(ctx context.Context) error {
		var err error
		if shipmentBuckets, err = s.ShipmentRepo.CountByMonth(ctx, months[0]); err != nil {
			return err
		}
		revenueBuckets, err = s.TradeRepo.SumPriceByMonth(ctx, months[0])
		return err
	})
	if err != nil {
		return nil, err
	}

	shipmentsByMonth := lo.SliceToMap(shipmentBuckets, func(b *types.MonthlyCount) (string, int64) {
		return monthKey(b.Month), b.Count
	})
	revenueByMonth := lo.SliceToMap(revenueBuckets, func(b *types.MonthlyAmount) (string, decimal.Decimal) {
		return monthKey(b.Month), b.Amount
	})

	for i, month := range months {
		key := monthKey(month)
		series.Labels[i] = types.MonthLabel(month)
		series.ShipmentValues[i] = shipmentsByMonth[key]
		if amount, ok := revenueByMonth[key]; ok {
			series.RevenueValues[i] = amount
		} else {
			series.RevenueValues[i] = decimal.Zero
		}
	}

	return series, nil
}

func (s *statisticsService) Overview(ctx context.Context, now time.Time) (*dto.Statistics, error) {
	stats := &dto.Statistics{}
	err := s.Snapshot(ctx, func(ctx context.Context) error {
		var err error
		if stats.TotalClients, err = s.TotalCount(ctx, types.EntityKindClient); err != nil {
			return err
		}
		if stats.TotalShipments, err = s.TotalCount(ctx, types.EntityKindShipment); err != nil {
			return err
		}
		if stats.TotalDocuments, err = s.TotalCount(ctx, types.EntityKindDocument); err != nil {
			return err
		}
		if stats.TotalTrades, err = s.TotalCount(ctx, types.EntityKindTrade); err != nil {
			return err
		}
		if stats.TotalRevenue, err = s.TotalRevenue(ctx); err != nil {
			return err
		}
		if stats.StatusBreakdown, err = s.StatusBreakdown(ctx); err != nil {
			return err
		}
		stats.Series, err = s.Series(ctx, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *statisticsService) seriesMonths() int {
	if s.Config.Dashboard.SeriesMonths > 0 {
		return s.Config.Dashboard.SeriesMonths
	}
	return len(placeholderSeriesLabels)
}

func placeholderSeries() *dto.SeriesData {
	return &dto.SeriesData{
		Labels:         append([]string(nil), placeholderSeriesLabels...),
		ShipmentValues: append([]int64(nil), placeholderShipmentValues...),
		RevenueValues: lo.Map(placeholderRevenueValues, func(v int64, _ int) decimal.Decimal {
			return decimal.NewFromInt(v)
		}),
		Provisional: true,
	}
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
