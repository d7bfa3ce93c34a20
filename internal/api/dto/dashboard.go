package dto

import (
	"github.com/logiport/portal/internal/domain/activitylog"
	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/types"
	"github.com/shopspring/decimal"
)

// SeriesData is a monthly chart series. Labels and values are paired by
// index and always have the same length.
type SeriesData struct {
	Labels         []string          `json:"labels"`
	ShipmentValues []int64           `json:"shipment_values"`
	RevenueValues  []decimal.Decimal `json:"revenue_values" swaggertype:"array,string"`
	// Provisional is set when the values are fixed placeholder data
	Provisional bool `json:"provisional"`
}

// Statistics is a snapshot-consistent set of portal aggregates
type Statistics struct {
	TotalClients    int64                          `json:"total_clients"`
	TotalShipments  int64                          `json:"total_shipments"`
	TotalDocuments  int64                          `json:"total_documents"`
	TotalTrades     int64                          `json:"total_trades"`
	TotalRevenue    decimal.Decimal                `json:"total_revenue" swaggertype:"string"`
	StatusBreakdown map[types.ShipmentStatus]int64 `json:"status_breakdown"`
	Series          *SeriesData                    `json:"series"`
}

// AdminDashboard is the staff variant of the dashboard
type AdminDashboard struct {
	TotalClients     int64                      `json:"total_clients"`
	TotalTrades      int64                      `json:"total_trades"`
	TotalShipments   int64                      `json:"total_shipments"`
	TotalDocuments   int64                      `json:"total_documents"`
	TotalRevenue     decimal.Decimal            `json:"total_revenue" swaggertype:"string"`
	RecentActivities []*activitylog.ActivityLog `json:"recent_activities"`
	ShipmentLabels   []string                   `json:"shipment_labels"`
	ShipmentData     []int64                    `json:"shipment_data"`
	RevenueLabels    []string                   `json:"revenue_labels"`
	RevenueData      []decimal.Decimal          `json:"revenue_data" swaggertype:"array,string"`
}

// ClientDashboard is the client variant. RecentShipments is not scoped to
// the requester while documents and trades are.
type ClientDashboard struct {
	RecentShipments []*shipment.Shipment `json:"recent_shipments"`
	UserDocuments   []*document.Document `json:"user_documents"`
	Trades          []*trade.Trade       `json:"trades"`
}

// DashboardView is the render-ready dashboard. Role selects which payload is
// set; exactly one of Admin and Client is non-nil.
type DashboardView struct {
	Role   types.Role       `json:"role"`
	Admin  *AdminDashboard  `json:"admin,omitempty"`
	Client *ClientDashboard `json:"client,omitempty"`
}

// Fields flattens the view into named fields
func (v *DashboardView) Fields() map[string]any {
	if v == nil {
		return map[string]any{}
	}

	switch v.Role {
	case types.RoleAdmin:
		if v.Admin == nil {
			return map[string]any{}
		}
		return map[string]any{
			"total_clients":     v.Admin.TotalClients,
			"total_trades":      v.Admin.TotalTrades,
			"total_shipments":   v.Admin.TotalShipments,
			"total_documents":   v.Admin.TotalDocuments,
			"total_revenue":     v.Admin.TotalRevenue,
			"recent_activities": v.Admin.RecentActivities,
			"shipment_labels":   v.Admin.ShipmentLabels,
			"shipment_data":     v.Admin.ShipmentData,
			"revenue_labels":    v.Admin.RevenueLabels,
			"revenue_data":      v.Admin.RevenueData,
		}
	case types.RoleClient:
		if v.Client == nil {
			return map[string]any{}
		}
		return map[string]any{
			"recent_shipments": v.Client.RecentShipments,
			"user_documents":   v.Client.UserDocuments,
			"trades":           v.Client.Trades,
		}
	default:
		return map[string]any{}
	}
}

// DashboardResponse is what the dashboard endpoints return
type DashboardResponse struct {
	Role   types.Role     `json:"role"`
	Fields map[string]any `json:"fields"`
}

func NewDashboardResponse(v *DashboardView) *DashboardResponse {
	return &DashboardResponse{
		Role:   v.Role,
		Fields: v.Fields(),
	}
}

// OverviewResponse is the landing page summary available to every user
type OverviewResponse struct {
	RecentShipments []*shipment.Shipment `json:"recent_shipments"`
	TotalShipments  int64                `json:"total_shipments"`
	TotalDocuments  int64                `json:"total_documents"`
	PendingCount    int64                `json:"pending_count"`
	InTransitCount  int64                `json:"in_transit_count"`
	CustomsCount    int64                `json:"customs_count"`
	DeliveredCount  int64                `json:"delivered_count"`
}
