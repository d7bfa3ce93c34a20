package types

import (
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/samber/lo"
)

// ShipmentStatus is the lifecycle state of a shipment. Transitions between
// statuses are unconstrained.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusCustoms   ShipmentStatus = "customs"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// AllShipmentStatuses is the full status set in display order
var AllShipmentStatuses = []ShipmentStatus{
	ShipmentStatusPending,
	ShipmentStatusInTransit,
	ShipmentStatusCustoms,
	ShipmentStatusDelivered,
	ShipmentStatusCancelled,
}

func (s ShipmentStatus) String() string {
	return string(s)
}

func (s ShipmentStatus) Validate() error {
	if !lo.Contains(AllShipmentStatuses, s) {
		return ierr.NewError("invalid shipment status").
			WithHintf("Shipment status must be one of: %v", AllShipmentStatuses).
			WithReportableDetails(map[string]any{
				"status": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ShipmentType tells whether goods are imported or exported
type ShipmentType string

const (
	ShipmentTypeImport ShipmentType = "import"
	ShipmentTypeExport ShipmentType = "export"
)

func (t ShipmentType) Validate() error {
	switch t {
	case ShipmentTypeImport, ShipmentTypeExport:
		return nil
	default:
		return ierr.NewError("invalid shipment type").
			WithHint("Shipment type must be either import or export").
			WithReportableDetails(map[string]any{
				"shipment_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}

// DocumentType classifies an uploaded trade or customs document
type DocumentType string

const (
	DocumentTypeImport DocumentType = "import"
	DocumentTypeExport DocumentType = "export"
)

func (t DocumentType) Validate() error {
	switch t {
	case DocumentTypeImport, DocumentTypeExport:
		return nil
	default:
		return ierr.NewError("invalid document type").
			WithHint("Document type must be either import or export").
			WithReportableDetails(map[string]any{
				"document_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}

// EntityKind names an aggregate that the statistics service can count
type EntityKind string

const (
	EntityKindShipment EntityKind = "shipment"
	EntityKindDocument EntityKind = "document"
	EntityKindTrade    EntityKind = "trade"
	// EntityKindClient counts users without the staff flag
	EntityKindClient EntityKind = "client"
)

func (k EntityKind) Validate() error {
	switch k {
	case EntityKindShipment, EntityKindDocument, EntityKindTrade, EntityKindClient:
		return nil
	default:
		return ierr.NewError("invalid entity kind").
			WithHintf("Entity kind %q cannot be counted", k).
			Mark(ierr.ErrValidation)
	}
}
