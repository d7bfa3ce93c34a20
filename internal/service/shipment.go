package service

import (
	"context"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/shipment"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

type ShipmentService interface {
	CreateShipment(ctx context.Context, actor types.Actor, req dto.CreateShipmentRequest) (*dto.ShipmentResponse, error)
	GetShipment(ctx context.Context, id string) (*dto.ShipmentResponse, error)
	ListShipments(ctx context.Context, filter *types.ShipmentFilter) (*dto.ListShipmentsResponse, error)
	UpdateShipment(ctx context.Context, actor types.Actor, id string, req dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error)
	DeleteShipment(ctx context.Context, actor types.Actor, id string) error
}

type shipmentService struct {
	ServiceParams
	activity ActivityService
}

func NewShipmentService(params ServiceParams, activity ActivityService) ShipmentService {
	return &shipmentService{
		ServiceParams: params,
		activity:      activity,
	}
}

func (s *shipmentService) CreateShipment(ctx context.Context, actor types.Actor, req dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sh := req.ToShipment(actor)

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureTrackingNumberAvailable(txCtx, sh.TrackingNumber, ""); err != nil {
			return err
		}
		return s.ShipmentRepo.Create(txCtx, sh)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created shipment",
		"shipment_id", sh.ID,
		"tracking_number", sh.TrackingNumber,
		"user_id", actor.ID,
	)

	s.activity.RecordAfterCommit(ctx, actor, shipmentCreatedAction(sh.ID))

	return &dto.ShipmentResponse{Shipment: sh}, nil
}

func (s *shipmentService) GetShipment(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("shipment_id is required").
			WithHint("Shipment ID is required").
			Mark(ierr.ErrValidation)
	}

	sh, err := s.ShipmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ShipmentResponse{Shipment: sh}, nil
}

func (s *shipmentService) ListShipments(ctx context.Context, filter *types.ShipmentFilter) (*dto.ListShipmentsResponse, error) {
	if filter == nil {
		filter = &types.ShipmentFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var (
		shipments []*shipment.Shipment
		count     int64
	)
	err := s.DB.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if shipments, err = s.ShipmentRepo.List(ctx, filter); err != nil {
			return err
		}
		count, err = s.ShipmentRepo.Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(shipments, func(sh *shipment.Shipment, _ int) *dto.ShipmentResponse {
		return &dto.ShipmentResponse{Shipment: sh}
	})
	resp := types.NewListResponse(items, int(count), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *shipmentService) UpdateShipment(ctx context.Context, actor types.Actor, id string, req dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var sh *shipment.Shipment
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		sh, err = s.ShipmentRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		previousTracking := sh.TrackingNumber
		req.Apply(sh)

		if sh.TrackingNumber != previousTracking {
			if err := s.ensureTrackingNumberAvailable(txCtx, sh.TrackingNumber, sh.ID); err != nil {
				return err
			}
		}
		return s.ShipmentRepo.Update(txCtx, sh)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("updated shipment",
		"shipment_id", sh.ID,
		"status", sh.Status,
		"user_id", actor.ID,
	)

	s.activity.RecordAfterCommit(ctx, actor, shipmentUpdatedAction(sh.ID))

	return &dto.ShipmentResponse{Shipment: sh}, nil
}

func (s *shipmentService) DeleteShipment(ctx context.Context, actor types.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if err := s.ShipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted shipment",
		"shipment_id", id,
		"user_id", actor.ID,
	)
	return nil
}

// ensureTrackingNumberAvailable rejects a tracking number held by another
// shipment. The unique index still guards concurrent writers.
func (s *shipmentService) ensureTrackingNumberAvailable(ctx context.Context, trackingNumber, shipmentID string) error {
	existing, err := s.ShipmentRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == shipmentID {
		return nil
	}
	return ierr.NewError("duplicate tracking number").
		WithHintf("Tracking number %s is already in use", trackingNumber).
		WithReportableDetails(map[string]any{
			"tracking_number": trackingNumber,
		}).
		Mark(ierr.ErrValidation)
}
