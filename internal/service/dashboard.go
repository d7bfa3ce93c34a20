package service

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/activitylog"
	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/domain/trade"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

// DashboardService assembles role specific dashboards
type DashboardService interface {
	// Compose builds the dashboard variant for role. Asking for the admin
	// variant without staff or superuser rights is a permission error.
	Compose(ctx context.Context, role types.Role, actor types.Actor) (*dto.DashboardView, error)

	// Overview is the landing summary available to every authenticated user
	Overview(ctx context.Context, actor types.Actor) (*dto.OverviewResponse, error)
}

type dashboardService struct {
	ServiceParams
	stats    StatisticsService
	activity ActivityService
	now      func() time.Time
}

func NewDashboardService(params ServiceParams, stats StatisticsService, activity ActivityService) DashboardService {
	return &dashboardService{
		ServiceParams: params,
		stats:         stats,
		activity:      activity,
		now:           time.Now,
	}
}

func (s *dashboardService) Compose(ctx context.Context, role types.Role, actor types.Actor) (*dto.DashboardView, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	switch role {
	case types.RoleAdmin:
		if !actor.IsAdmin() {
			s.Logger.Warnw("non-staff user requested admin dashboard",
				"user_id", actor.ID,
				"request_id", types.GetRequestID(ctx),
			)
			return nil, ierr.NewError("admin dashboard requires staff access").
				WithHint("You do not have permission to view the admin dashboard").
				WithReportableDetails(map[string]any{
					"user_id": actor.ID,
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		admin, err := s.composeAdmin(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.DashboardView{Role: types.RoleAdmin, Admin: admin}, nil
	default:
		client, err := s.composeClient(ctx, actor)
		if err != nil {
			return nil, err
		}
		return &dto.DashboardView{Role: types.RoleClient, Client: client}, nil
	}
}

func (s *dashboardService) composeAdmin(ctx context.Context) (*dto.AdminDashboard, error) {
	var (
		stats  *dto.Statistics
		recent []*activitylog.ActivityLog
	)
	err := s.stats.Snapshot(ctx, func(ctx context.Context) error {
		var err error
		if stats, err = s.stats.Overview(ctx, s.now()); err != nil {
			return err
		}
		recent, err = s.activity.Recent(ctx, s.Config.Dashboard.RecentActivityLimit)
		return err
	})
	if err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*activitylog.ActivityLog{}
	}

	return &dto.AdminDashboard{
		TotalClients:     stats.TotalClients,
		TotalTrades:      stats.TotalTrades,
		TotalShipments:   stats.TotalShipments,
		TotalDocuments:   stats.TotalDocuments,
		TotalRevenue:     stats.TotalRevenue,
		RecentActivities: recent,
		ShipmentLabels:   stats.Series.Labels,
		ShipmentData:     stats.Series.ShipmentValues,
		RevenueLabels:    stats.Series.Labels,
		RevenueData:      stats.Series.RevenueValues,
	}, nil
}

func (s *dashboardService) composeClient(ctx context.Context, actor types.Actor) (*dto.ClientDashboard, error) {
	view := &dto.ClientDashboard{
		RecentShipments: []*shipment.Shipment{},
		UserDocuments:   []*document.Document{},
		Trades:          []*trade.Trade{},
	}

	err := s.stats.Snapshot(ctx, func(ctx context.Context) error {
		shipments, err := s.ShipmentRepo.List(ctx, &types.ShipmentFilter{
			QueryFilter: types.NewLimitQueryFilter(s.Config.Dashboard.RecentShipmentLimit),
		})
		if err != nil {
			return err
		}

		documents, err := s.DocumentRepo.List(ctx, &types.DocumentFilter{
			QueryFilter: types.NewLimitQueryFilter(s.Config.Dashboard.RecentDocumentLimit),
			UploadedBy:  actor.ID,
		})
		if err != nil {
			return err
		}

		trades, err := s.TradeRepo.List(ctx, &types.TradeFilter{
			QueryFilter: types.NewNoLimitQueryFilter(),
			UserID:      actor.ID,
		})
		if err != nil {
			return err
		}

		view.RecentShipments = append(view.RecentShipments, shipments...)
		view.UserDocuments = append(view.UserDocuments, documents...)
		view.Trades = append(view.Trades, trades...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *dashboardService) Overview(ctx context.Context, actor types.Actor) (*dto.OverviewResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{RecentShipments: []*shipment.Shipment{}}
	err := s.stats.Snapshot(ctx, func(ctx context.Context) error {
		shipments, err := s.ShipmentRepo.List(ctx, &types.ShipmentFilter{
			QueryFilter: types.NewLimitQueryFilter(s.Config.Dashboard.RecentShipmentLimit),
		})
		if err != nil {
			return err
		}
		resp.RecentShipments = append(resp.RecentShipments, shipments...)

		breakdown, err := s.stats.StatusBreakdown(ctx)
		if err != nil {
			return err
		}
		resp.PendingCount = breakdown[types.ShipmentStatusPending]
		resp.InTransitCount = breakdown[types.ShipmentStatusInTransit]
		resp.CustomsCount = breakdown[types.ShipmentStatusCustoms]
		resp.DeliveredCount = breakdown[types.ShipmentStatusDelivered]

		if resp.TotalShipments, err = s.stats.TotalCount(ctx, types.EntityKindShipment); err != nil {
			return err
		}
		resp.TotalDocuments, err = s.stats.TotalCount(ctx, types.EntityKindDocument)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
