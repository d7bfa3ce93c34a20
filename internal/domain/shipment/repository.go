package shipment

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/types"
)

// Repository defines the interface for shipment data access
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	Get(ctx context.Context, id string) (*Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	// List returns shipments newest first
	List(ctx context.Context, filter *types.ShipmentFilter) ([]*Shipment, error)
	Count(ctx context.Context, filter *types.ShipmentFilter) (int64, error)
	Update(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, id string) error
	// CountByMonth groups shipments created at or after since by creation month
	CountByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyCount, error)
}
