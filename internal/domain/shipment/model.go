package shipment

import (
	"time"

	"github.com/logiport/portal/internal/types"
)

// Shipment is a tracked consignment moving in or out of the office
type Shipment struct {
	// ID is the unique identifier for the shipment
	ID string `db:"id" json:"id"`

	// TrackingNumber is globally unique across all shipments
	TrackingNumber string `db:"tracking_number" json:"tracking_number"`

	// ShipmentType is either import or export
	ShipmentType types.ShipmentType `db:"shipment_type" json:"shipment_type"`

	// Status is the current lifecycle state; any status may follow any other
	Status types.ShipmentStatus `db:"status" json:"status"`

	Origin      string `db:"origin" json:"origin"`
	Destination string `db:"destination" json:"destination"`

	// EstimatedDelivery is optional
	EstimatedDelivery *time.Time `db:"estimated_delivery" json:"estimated_delivery,omitempty"`

	// CreatedBy is the id of the user who registered the shipment
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
