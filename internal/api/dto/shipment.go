package dto

import (
	"strings"
	"time"

	"github.com/logiport/portal/internal/domain/shipment"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/logiport/portal/internal/validator"
)

// CreateShipmentRequest registers a shipment. The tracking number is
// generated when left empty.
type CreateShipmentRequest struct {
	TrackingNumber    string               `json:"tracking_number,omitempty" validate:"omitempty,max=100"`
	ShipmentType      types.ShipmentType   `json:"shipment_type" validate:"required"`
	Status            types.ShipmentStatus `json:"status,omitempty"`
	Origin            string               `json:"origin" validate:"required,max=255"`
	Destination       string               `json:"destination" validate:"required,max=255"`
	EstimatedDelivery *time.Time           `json:"estimated_delivery,omitempty"`
}

func (r *CreateShipmentRequest) Validate() error {
	r.TrackingNumber = strings.TrimSpace(r.TrackingNumber)
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)

	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.ShipmentType.Validate(); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = types.ShipmentStatusPending
	}
	return r.Status.Validate()
}

func (r *CreateShipmentRequest) ToShipment(actor types.Actor) *shipment.Shipment {
	now := time.Now().UTC()
	trackingNumber := r.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TRACKING_NUMBER)
	}
	return &shipment.Shipment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SHIPMENT),
		TrackingNumber:    trackingNumber,
		ShipmentType:      r.ShipmentType,
		Status:            r.Status,
		Origin:            r.Origin,
		Destination:       r.Destination,
		EstimatedDelivery: r.EstimatedDelivery,
		CreatedBy:         actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// UpdateShipmentRequest changes any subset of a shipment's fields. Status may
// move from any value to any other.
type UpdateShipmentRequest struct {
	TrackingNumber    *string               `json:"tracking_number,omitempty" validate:"omitempty,min=1,max=100"`
	ShipmentType      *types.ShipmentType   `json:"shipment_type,omitempty"`
	Status            *types.ShipmentStatus `json:"status,omitempty"`
	Origin            *string               `json:"origin,omitempty" validate:"omitempty,min=1,max=255"`
	Destination       *string               `json:"destination,omitempty" validate:"omitempty,min=1,max=255"`
	EstimatedDelivery *time.Time            `json:"estimated_delivery,omitempty"`
}

func (r *UpdateShipmentRequest) Validate() error {
	r.TrackingNumber = trimPtr(r.TrackingNumber)
	r.Origin = trimPtr(r.Origin)
	r.Destination = trimPtr(r.Destination)

	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.ShipmentType != nil {
		if err := r.ShipmentType.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"tracking number", r.TrackingNumber},
		{"origin", r.Origin},
		{"destination", r.Destination},
	} {
		if f.value != nil && *f.value == "" {
			return ierr.NewErrorf("%s cannot be blank", f.name).
				WithHintf("Provide a %s or omit the field", f.name).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}

// Apply copies the set fields onto s and bumps updated_at
func (r *UpdateShipmentRequest) Apply(s *shipment.Shipment) {
	if r.TrackingNumber != nil {
		s.TrackingNumber = *r.TrackingNumber
	}
	if r.ShipmentType != nil {
		s.ShipmentType = *r.ShipmentType
	}
	if r.Status != nil {
		s.Status = *r.Status
	}
	if r.Origin != nil {
		s.Origin = *r.Origin
	}
	if r.Destination != nil {
		s.Destination = *r.Destination
	}
	if r.EstimatedDelivery != nil {
		s.EstimatedDelivery = r.EstimatedDelivery
	}
	s.UpdatedAt = time.Now().UTC()
}

type ShipmentResponse struct {
	*shipment.Shipment
}

// ListShipmentsResponse represents the response for listing shipments
type ListShipmentsResponse = types.ListResponse[*ShipmentResponse]
