package postgres

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/domain/shipment"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
)

type shipmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewShipmentRepository(db *postgres.DB, logger *logger.Logger) shipment.Repository {
	return &shipmentRepository{db: db, logger: logger}
}

func (r *shipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	query := `
		INSERT INTO shipments (
			id, tracking_number, shipment_type, status, origin, destination,
			estimated_delivery, created_by, created_at, updated_at
		) VALUES (
			:id, :tracking_number, :shipment_type, :status, :origin, :destination,
			:estimated_delivery, :created_by, :created_at, :updated_at
		)`

	r.logger.Debugw("creating shipment",
		"shipment_id", s.ID,
		"tracking_number", s.TrackingNumber,
	)

	span := StartRepositorySpan(ctx, "shipment", "create", map[string]interface{}{
		"shipment_id": s.ID,
	})
	defer FinishSpan(span)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s); err != nil {
		SetSpanError(span, err)
		return r.writeError(err, s)
	}
	return nil
}

func (r *shipmentRepository) Get(ctx context.Context, id string) (*shipment.Shipment, error) {
	var s shipment.Shipment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, `SELECT * FROM shipments WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("Shipment %s not found", id).
				WithReportableDetails(map[string]any{
					"shipment_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get shipment").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *shipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var s shipment.Shipment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, `SELECT * FROM shipments WHERE tracking_number = $1`, trackingNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("Shipment with tracking number %s not found", trackingNumber).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get shipment").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *shipmentRepository) where(filter *types.ShipmentFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter == nil {
		return where
	}
	if filter.Status != nil {
		where.add("status = ?", *filter.Status)
	}
	if filter.CreatedBy != "" {
		where.add("created_by = ?", filter.CreatedBy)
	}
	return where
}

func (r *shipmentRepository) List(ctx context.Context, filter *types.ShipmentFilter) ([]*shipment.Shipment, error) {
	span := StartRepositorySpan(ctx, "shipment", "list", nil)
	defer FinishSpan(span)

	if filter == nil {
		filter = &types.ShipmentFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	where := r.where(filter)
	query, args := paginate("SELECT * FROM shipments"+where.String(), where.args, filter.QueryFilter, "created_at", "id")

	shipments := make([]*shipment.Shipment, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &shipments, query, args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list shipments").
			Mark(ierr.ErrDatabase)
	}
	return shipments, nil
}

func (r *shipmentRepository) Count(ctx context.Context, filter *types.ShipmentFilter) (int64, error) {
	span := StartRepositorySpan(ctx, "shipment", "count", nil)
	defer FinishSpan(span)

	where := r.where(filter)

	var count int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM shipments"+where.String()), where.args...)
	if err != nil {
		SetSpanError(span, err)
		return 0, ierr.WithError(err).
			WithHint("Failed to count shipments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *shipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	query := `
		UPDATE shipments SET
			tracking_number = :tracking_number,
			shipment_type = :shipment_type,
			status = :status,
			origin = :origin,
			destination = :destination,
			estimated_delivery = :estimated_delivery,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating shipment",
		"shipment_id", s.ID,
		"status", s.Status,
	)

	span := StartRepositorySpan(ctx, "shipment", "update", map[string]interface{}{
		"shipment_id": s.ID,
	})
	defer FinishSpan(span)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		SetSpanError(span, err)
		return r.writeError(err, s)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("shipment not found").
			WithHintf("Shipment %s not found", s.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *shipmentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting shipment", "shipment_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete shipment").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("shipment not found").
			WithHintf("Shipment %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *shipmentRepository) CountByMonth(ctx context.Context, since time.Time) ([]*types.MonthlyCount, error) {
	query := `
		SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, COUNT(*) AS count
		FROM shipments
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1`

	span := StartRepositorySpan(ctx, "shipment", "count_by_month", map[string]interface{}{
		"since": since,
	})
	defer FinishSpan(span)

	buckets := make([]*types.MonthlyCount, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &buckets, query, since); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to group shipments by month").
			Mark(ierr.ErrDatabase)
	}
	return buckets, nil
}

func (r *shipmentRepository) writeError(err error, s *shipment.Shipment) error {
	if isUniqueViolation(err) {
		return ierr.WithError(err).
			WithHintf("Tracking number %s is already in use", s.TrackingNumber).
			WithReportableDetails(map[string]any{
				"tracking_number": s.TrackingNumber,
			}).
			Mark(ierr.ErrValidation)
	}
	return ierr.WithError(err).
		WithHint("Failed to save shipment").
		Mark(ierr.ErrDatabase)
}
