package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/logiport/portal/internal/domain/shipment"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryShipmentStore implements shipment.Repository
type InMemoryShipmentStore struct {
	*InMemoryStore[*shipment.Shipment]
}

func NewInMemoryShipmentStore() *InMemoryShipmentStore {
	return &InMemoryShipmentStore{
		InMemoryStore: NewInMemoryStore[*shipment.Shipment](),
	}
}

func copyShipment(s *shipment.Shipment) *shipment.Shipment {
	if s == nil {
		return nil
	}
	c := *s
	if s.EstimatedDelivery != nil {
		c.EstimatedDelivery = lo.ToPtr(*s.EstimatedDelivery)
	}
	return &c
}

func (s *InMemoryShipmentStore) Create(ctx context.Context, sh *shipment.Shipment) error {
	if _, err := s.GetByTrackingNumber(ctx, sh.TrackingNumber); err == nil {
		return ierr.NewError("tracking number already in use").
			WithHintf("Tracking number %s is already in use", sh.TrackingNumber).
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sh.ID, copyShipment(sh))
}

func (s *InMemoryShipmentStore) Get(ctx context.Context, id string) (*shipment.Shipment, error) {
	sh, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyShipment(sh), nil
}

func (s *InMemoryShipmentStore) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, sh *shipment.Shipment, _ interface{}) bool {
		return sh.TrackingNumber == trackingNumber
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("shipment not found").
			WithHintf("Shipment with tracking number %s was not found", trackingNumber).
			Mark(ierr.ErrNotFound)
	}
	return copyShipment(items[0]), nil
}

func (s *InMemoryShipmentStore) List(ctx context.Context, filter *types.ShipmentFilter) ([]*shipment.Shipment, error) {
	if filter == nil {
		filter = &types.ShipmentFilter{}
	}
	order := filter.GetOrder()
	items, err := s.InMemoryStore.List(ctx, filter, shipmentFilterFn, func(a, b *shipment.Shipment) bool {
		if cmp := a.CreatedAt.Compare(b.CreatedAt); cmp != 0 {
			return orderedBefore(order, cmp)
		}
		return orderedBefore(order, strings.Compare(a.ID, b.ID))
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(sh *shipment.Shipment, _ int) *shipment.Shipment {
		return copyShipment(sh)
	}), nil
}

func (s *InMemoryShipmentStore) Count(ctx context.Context, filter *types.ShipmentFilter) (int64, error) {
	if filter == nil {
		filter = &types.ShipmentFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, shipmentFilterFn)
}

func (s *InMemoryShipmentStore) Update(ctx context.Context, sh *shipment.Shipment) error {
	if existing, err := s.GetByTrackingNumber(ctx, sh.TrackingNumber); err == nil && existing.ID != sh.ID {
		return ierr.NewError("tracking number already in use").
			WithHintf("Tracking number %s is already in use", sh.TrackingNumber).
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, sh.ID, copyShipment(sh))
}

func (s *InMemoryShipmentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryShipmentStore) CountByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyCount, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, sh *shipment.Shipment, _ interface{}) bool {
		return !sh.CreatedAt.Before(since)
	}, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int64)
	for _, sh := range items {
		counts[types.StartOfMonth(sh.CreatedAt)]++
	}

	result := make([]*types.MonthlyCount, 0, len(counts))
	for month, count := range counts {
		result = append(result, &types.MonthlyCount{Month: month, Count: count})
	}
	return result, nil
}

func shipmentFilterFn(ctx context.Context, sh *shipment.Shipment, filter interface{}) bool {
	f, ok := filter.(*types.ShipmentFilter)
	if !ok {
		return false
	}
	if f.Status != nil && sh.Status != *f.Status {
		return false
	}
	if f.CreatedBy != "" && sh.CreatedBy != f.CreatedBy {
		return false
	}
	return true
}
