package service

import (
	"errors"
	"testing"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/activitylog"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ShipmentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ShipmentService
}

func TestShipmentService(t *testing.T) {
	suite.Run(t, new(ShipmentServiceSuite))
}

func (s *ShipmentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite, nil)
	s.service = NewShipmentService(params, NewActivityService(params))
}

func (s *ShipmentServiceSuite) activities() []*activitylog.ActivityLog {
	logs, err := s.GetStores().ActivityLogRepo.List(s.GetContext(), nil)
	s.Require().NoError(err)
	return logs
}

func (s *ShipmentServiceSuite) createRequest(tracking string) dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		TrackingNumber: tracking,
		ShipmentType:   types.ShipmentTypeImport,
		Origin:         "Shanghai",
		Destination:    "Mombasa",
	}
}

func (s *ShipmentServiceSuite) TestCreateShipment() {
	resp, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-1001"))
	s.Require().NoError(err)
	s.Equal("TRK-1001", resp.TrackingNumber)
	s.Equal(types.ShipmentStatusPending, resp.Status)
	s.Equal(testutil.AdminActor.ID, resp.CreatedBy)

	logs := s.activities()
	s.Require().Len(logs, 1)
	s.Equal(testutil.AdminActor.ID, logs[0].UserID)
	s.Equal("Created a new shipment with ID: "+resp.ID, logs[0].Action)
	s.False(logs[0].Timestamp.Before(resp.UpdatedAt), "log %s before shipment %s", logs[0].Timestamp, resp.UpdatedAt)
}

func (s *ShipmentServiceSuite) TestCreateShipmentGeneratesTrackingNumber() {
	resp, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest(""))
	s.Require().NoError(err)
	s.NotEmpty(resp.TrackingNumber)
	s.Contains(resp.TrackingNumber, types.SHORT_ID_PREFIX_TRACKING_NUMBER)
}

func (s *ShipmentServiceSuite) TestCreateShipmentValidation() {
	testCases := []struct {
		name string
		req  dto.CreateShipmentRequest
	}{
		{
			name: "missing_origin",
			req: dto.CreateShipmentRequest{
				ShipmentType: types.ShipmentTypeImport,
				Destination:  "Mombasa",
			},
		},
		{
			name: "unknown_type",
			req: dto.CreateShipmentRequest{
				ShipmentType: types.ShipmentType("transit"),
				Origin:       "Shanghai",
				Destination:  "Mombasa",
			},
		},
		{
			name: "unknown_status",
			req: dto.CreateShipmentRequest{
				ShipmentType: types.ShipmentTypeExport,
				Status:       types.ShipmentStatus("lost"),
				Origin:       "Shanghai",
				Destination:  "Mombasa",
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
	s.Empty(s.activities())
}

func (s *ShipmentServiceSuite) TestCreateShipmentDuplicateTrackingNumber() {
	_, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-DUP"))
	s.Require().NoError(err)

	_, err = s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-DUP"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Len(s.activities(), 1)
}

func (s *ShipmentServiceSuite) TestActivityFailureKeepsShipment() {
	s.GetStores().ActivityLogRepo.FailWrites(errors.New("activity table locked"))

	resp, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-2002"))
	s.Require().NoError(err)

	stored, err := s.service.GetShipment(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal("TRK-2002", stored.TrackingNumber)
	s.Empty(s.activities())
}

func (s *ShipmentServiceSuite) TestUpdateShipment() {
	created, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-3003"))
	s.Require().NoError(err)

	// any status may follow any other
	for _, status := range []types.ShipmentStatus{
		types.ShipmentStatusDelivered,
		types.ShipmentStatusPending,
		types.ShipmentStatusCancelled,
	} {
		updated, err := s.service.UpdateShipment(s.GetContext(), testutil.AdminActor, created.ID, dto.UpdateShipmentRequest{
			Status: lo.ToPtr(status),
		})
		s.Require().NoError(err)
		s.Equal(status, updated.Status)
		s.Equal("TRK-3003", updated.TrackingNumber)

		newest := lo.MaxBy(s.activities(), func(a, b *activitylog.ActivityLog) bool {
			return a.Timestamp.After(b.Timestamp)
		})
		s.Require().NotNil(newest)
		s.Equal("Updated shipment with ID: "+created.ID, newest.Action)
		s.False(newest.Timestamp.Before(updated.UpdatedAt), "log %s before shipment %s", newest.Timestamp, updated.UpdatedAt)
	}

	logs := s.activities()
	s.Len(logs, 4)
	updates := lo.Filter(logs, func(l *activitylog.ActivityLog, _ int) bool {
		return l.Action == "Updated shipment with ID: "+created.ID
	})
	s.Len(updates, 3)
}

func (s *ShipmentServiceSuite) TestUpdateShipmentTrackingConflict() {
	first, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-A"))
	s.Require().NoError(err)
	_, err = s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-B"))
	s.Require().NoError(err)

	_, err = s.service.UpdateShipment(s.GetContext(), testutil.AdminActor, first.ID, dto.UpdateShipmentRequest{
		TrackingNumber: lo.ToPtr("TRK-B"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	unchanged, err := s.service.GetShipment(s.GetContext(), first.ID)
	s.NoError(err)
	s.Equal("TRK-A", unchanged.TrackingNumber)
}

func (s *ShipmentServiceSuite) TestUpdateShipmentRejectsBlankFields() {
	created, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-5005"))
	s.Require().NoError(err)

	testCases := []struct {
		name string
		req  dto.UpdateShipmentRequest
	}{
		{name: "blank_origin", req: dto.UpdateShipmentRequest{Origin: lo.ToPtr("   ")}},
		{name: "blank_destination", req: dto.UpdateShipmentRequest{Destination: lo.ToPtr("\t")}},
		{name: "blank_tracking_number", req: dto.UpdateShipmentRequest{TrackingNumber: lo.ToPtr(" ")}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.UpdateShipment(s.GetContext(), testutil.AdminActor, created.ID, tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}

	stored, err := s.service.GetShipment(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal("Shanghai", stored.Origin)
	s.Equal("Mombasa", stored.Destination)
	s.Len(s.activities(), 1)
}

func (s *ShipmentServiceSuite) TestUpdateShipmentTrimsFields() {
	created, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-6006"))
	s.Require().NoError(err)

	updated, err := s.service.UpdateShipment(s.GetContext(), testutil.AdminActor, created.ID, dto.UpdateShipmentRequest{
		Origin: lo.ToPtr("  Durban "),
	})
	s.Require().NoError(err)
	s.Equal("Durban", updated.Origin)
}

func (s *ShipmentServiceSuite) TestUpdateShipmentNotFound() {
	_, err := s.service.UpdateShipment(s.GetContext(), testutil.AdminActor, "ship_missing", dto.UpdateShipmentRequest{
		Status: lo.ToPtr(types.ShipmentStatusDelivered),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
	s.Empty(s.activities())
}

func (s *ShipmentServiceSuite) TestDeleteShipment() {
	created, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest("TRK-4004"))
	s.Require().NoError(err)

	s.NoError(s.service.DeleteShipment(s.GetContext(), testutil.AdminActor, created.ID))

	_, err = s.service.GetShipment(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
	s.Len(s.activities(), 1)
}

func (s *ShipmentServiceSuite) TestListShipments() {
	for _, tracking := range []string{"TRK-L1", "TRK-L2", "TRK-L3"} {
		_, err := s.service.CreateShipment(s.GetContext(), testutil.AdminActor, s.createRequest(tracking))
		s.Require().NoError(err)
	}

	resp, err := s.service.ListShipments(s.GetContext(), &types.ShipmentFilter{
		QueryFilter: types.NewLimitQueryFilter(2),
		Status:      lo.ToPtr(types.ShipmentStatusPending),
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(3, resp.Pagination.Total)
}
