package service

import (
	"context"
	"testing"
	"time"

	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/domain/user"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatisticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service StatisticsService
}

func TestStatisticsService(t *testing.T) {
	suite.Run(t, new(StatisticsServiceSuite))
}

func (s *StatisticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewStatisticsService(newTestServiceParams(&s.BaseServiceTestSuite, nil))
}

func (s *StatisticsServiceSuite) seedShipment(status types.ShipmentStatus, createdAt time.Time) *shipment.Shipment {
	sh := &shipment.Shipment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SHIPMENT),
		TrackingNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TRACKING_NUMBER),
		ShipmentType:   types.ShipmentTypeImport,
		Status:         status,
		Origin:         "Mombasa",
		Destination:    "Nairobi",
		CreatedBy:      testutil.AdminActor.ID,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	s.Require().NoError(s.GetStores().ShipmentRepo.Create(s.GetContext(), sh))
	return sh
}

func (s *StatisticsServiceSuite) seedTrade(price string, createdAt time.Time) *trade.Trade {
	t := &trade.Trade{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRADE),
		Product:   "Widget",
		Quantity:  1,
		Price:     decimal.RequireFromString(price),
		TradeDate: createdAt,
		UserID:    testutil.ClientActor.ID,
		CreatedAt: createdAt,
	}
	s.Require().NoError(s.GetStores().TradeRepo.Create(s.GetContext(), t))
	return t
}

func (s *StatisticsServiceSuite) TestStatusBreakdownEmpty() {
	breakdown, err := s.service.StatusBreakdown(s.GetContext())
	s.NoError(err)
	s.Len(breakdown, len(types.AllShipmentStatuses))
	for _, status := range types.AllShipmentStatuses {
		s.Equal(int64(0), breakdown[status], status)
	}
}

func (s *StatisticsServiceSuite) TestStatusBreakdownSumsToTotal() {
	now := s.GetNow()
	s.seedShipment(types.ShipmentStatusPending, now)
	s.seedShipment(types.ShipmentStatusPending, now)
	s.seedShipment(types.ShipmentStatusInTransit, now)
	s.seedShipment(types.ShipmentStatusCustoms, now)
	s.seedShipment(types.ShipmentStatusDelivered, now)
	s.seedShipment(types.ShipmentStatusCancelled, now)

	breakdown, err := s.service.StatusBreakdown(s.GetContext())
	s.NoError(err)
	s.Equal(int64(2), breakdown[types.ShipmentStatusPending])
	s.Equal(int64(1), breakdown[types.ShipmentStatusInTransit])

	total, err := s.service.TotalCount(s.GetContext(), types.EntityKindShipment)
	s.NoError(err)

	var sum int64
	for _, count := range breakdown {
		sum += count
	}
	s.Equal(total, sum)
}

func (s *StatisticsServiceSuite) TestSnapshotHidesConcurrentInsert() {
	now := s.GetNow()
	s.seedShipment(types.ShipmentStatusPending, now)
	s.seedShipment(types.ShipmentStatusDelivered, now)

	var (
		breakdown map[types.ShipmentStatus]int64
		total     int64
	)
	err := s.service.Snapshot(s.GetContext(), func(ctx context.Context) error {
		var err error
		if total, err = s.service.TotalCount(ctx, types.EntityKindShipment); err != nil {
			return err
		}

		// a write committed by another request after the snapshot started
		s.seedShipment(types.ShipmentStatusPending, now)

		breakdown, err = s.service.StatusBreakdown(ctx)
		return err
	})
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Equal(int64(1), breakdown[types.ShipmentStatusPending])

	var sum int64
	for _, count := range breakdown {
		sum += count
	}
	s.Equal(total, sum)

	after, err := s.service.TotalCount(s.GetContext(), types.EntityKindShipment)
	s.NoError(err)
	s.Equal(int64(3), after)
}

func (s *StatisticsServiceSuite) TestCountByStatusRejectsUnknownStatus() {
	_, err := s.service.CountByStatus(s.GetContext(), types.ShipmentStatus("lost"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *StatisticsServiceSuite) TestTotalCount() {
	ctx := s.GetContext()
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, user.NewUser("alice", "alice@example.com", false)))
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, user.NewUser("bob", "bob@example.com", false)))
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, user.NewUser("staff", "staff@example.com", true)))
	s.seedTrade("1.00", s.GetNow())

	testCases := []struct {
		name string
		kind types.EntityKind
		want int64
	}{
		{name: "clients_exclude_staff", kind: types.EntityKindClient, want: 2},
		{name: "trades", kind: types.EntityKindTrade, want: 1},
		{name: "documents_empty", kind: types.EntityKindDocument, want: 0},
		{name: "shipments_empty", kind: types.EntityKindShipment, want: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := s.service.TotalCount(ctx, tc.kind)
			s.NoError(err)
			s.Equal(tc.want, got)
		})
	}

	_, err := s.service.TotalCount(ctx, types.EntityKind("invoice"))
	s.True(ierr.IsValidation(err))
}

func (s *StatisticsServiceSuite) TestTotalRevenue() {
	total, err := s.service.TotalRevenue(s.GetContext())
	s.NoError(err)
	s.True(total.IsZero())

	s.seedTrade("10.50", s.GetNow())
	s.seedTrade("5.25", s.GetNow())

	total, err = s.service.TotalRevenue(s.GetContext())
	s.NoError(err)
	s.True(decimal.RequireFromString("15.75").Equal(total), total.String())
}

func (s *StatisticsServiceSuite) TestSeriesLive() {
	now := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	s.seedShipment(types.ShipmentStatusPending, time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC))
	s.seedShipment(types.ShipmentStatusPending, time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC))
	s.seedShipment(types.ShipmentStatusDelivered, time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC))
	// outside the seven month window
	s.seedShipment(types.ShipmentStatusDelivered, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))
	s.seedTrade("100.00", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
	s.seedTrade("20.50", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	series, err := s.service.Series(s.GetContext(), now)
	s.NoError(err)
	s.False(series.Provisional)
	s.Equal([]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}, series.Labels)
	s.Equal([]int64{0, 0, 0, 0, 1, 0, 2}, series.ShipmentValues)
	s.Require().Len(series.RevenueValues, 7)
	s.True(decimal.RequireFromString("20.50").Equal(series.RevenueValues[0]))
	s.True(series.RevenueValues[3].IsZero())
	s.True(decimal.RequireFromString("100").Equal(series.RevenueValues[6]))
}

func (s *StatisticsServiceSuite) TestSeriesPlaceholder() {
	cfg := *s.GetConfig()
	cfg.Dashboard.SeriesSource = types.SeriesSourcePlaceholder
	svc := NewStatisticsService(newTestServiceParams(&s.BaseServiceTestSuite, &cfg))

	s.seedShipment(types.ShipmentStatusPending, s.GetNow())

	series, err := svc.Series(s.GetContext(), s.GetNow())
	s.NoError(err)
	s.True(series.Provisional)
	s.Equal([]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}, series.Labels)
	s.Equal([]int64{10, 15, 20, 18, 25, 30, 28}, series.ShipmentValues)
	s.True(decimal.NewFromInt(1750).Equal(series.RevenueValues[6]))
}

func (s *StatisticsServiceSuite) TestOverviewUsesOneSnapshot() {
	s.seedShipment(types.ShipmentStatusCustoms, s.GetNow())
	s.seedTrade("3.00", s.GetNow())

	stats, err := s.service.Overview(s.GetContext(), s.GetNow())
	s.NoError(err)
	s.Equal(int64(1), stats.TotalShipments)
	s.Equal(int64(1), stats.TotalTrades)
	s.Equal(int64(1), stats.StatusBreakdown[types.ShipmentStatusCustoms])
	s.True(decimal.NewFromInt(3).Equal(stats.TotalRevenue))
	s.Equal(1, s.GetDB().SnapshotCount())
}
