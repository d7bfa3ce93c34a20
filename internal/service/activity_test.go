package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/logiport/portal/internal/domain/activitylog"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ActivityServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ActivityService
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceSuite))
}

func (s *ActivityServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewActivityService(newTestServiceParams(&s.BaseServiceTestSuite, nil))
}

func (s *ActivityServiceSuite) seedLog(userID, action string, at time.Time) *activitylog.ActivityLog {
	entry := activitylog.NewActivityLog(userID, action)
	entry.Timestamp = at
	s.Require().NoError(s.GetStores().ActivityLogRepo.Create(s.GetContext(), entry))
	return entry
}

func (s *ActivityServiceSuite) TestRecord() {
	testCases := []struct {
		name        string
		actor       types.Actor
		description string
		wantErr     func(error) bool
	}{
		{
			name:        "stores_entry_for_actor",
			actor:       testutil.ClientActor,
			description: "Created a new shipment with ID: ship_1",
		},
		{
			name:        "rejects_blank_description",
			actor:       testutil.ClientActor,
			description: "   ",
			wantErr:     ierr.IsValidation,
		},
		{
			name:        "rejects_missing_actor",
			actor:       types.Actor{},
			description: "Created a new trade for product: Widget",
			wantErr:     ierr.IsPermissionDenied,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			entry, err := s.service.Record(s.GetContext(), tc.actor, tc.description)
			if tc.wantErr != nil {
				s.Error(err)
				s.True(tc.wantErr(err))
				s.Nil(entry)
				return
			}

			s.NoError(err)
			s.Equal(tc.actor.ID, entry.UserID)
			s.Equal(tc.description, entry.Action)
			s.False(entry.Timestamp.IsZero())
		})
	}
}

func (s *ActivityServiceSuite) TestRecordAfterCommitSwallowsFailure() {
	s.GetStores().ActivityLogRepo.FailWrites(errors.New("connection reset"))

	s.NotPanics(func() {
		s.service.RecordAfterCommit(s.GetContext(), testutil.ClientActor, "Updated shipment with ID: ship_1")
	})
	s.Equal(0, s.GetStores().ActivityLogRepo.Len())

	s.GetStores().ActivityLogRepo.FailWrites(nil)
	s.service.RecordAfterCommit(s.GetContext(), testutil.ClientActor, "Updated shipment with ID: ship_1")
	s.Equal(1, s.GetStores().ActivityLogRepo.Len())
}

func (s *ActivityServiceSuite) TestRecentNewestFirst() {
	base := s.GetNow().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		s.seedLog(testutil.ClientActor.ID, fmt.Sprintf("action %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := s.service.Recent(s.GetContext(), 5)
	s.NoError(err)
	s.Len(entries, 5)
	s.Equal([]string{"action 11", "action 10", "action 9", "action 8", "action 7"},
		lo.Map(entries, func(e *activitylog.ActivityLog, _ int) string { return e.Action }))

	entries, err = s.service.Recent(s.GetContext(), 0)
	s.NoError(err)
	s.Len(entries, defaultRecentActivityLimit)
}

func (s *ActivityServiceSuite) TestRecentTieBreaksOnID() {
	at := s.GetNow()
	first := s.seedLog(testutil.ClientActor.ID, "first", at)
	second := s.seedLog(testutil.ClientActor.ID, "second", at)

	entries, err := s.service.Recent(s.GetContext(), 2)
	s.NoError(err)
	s.Require().Len(entries, 2)

	wantFirst, wantSecond := first.ID, second.ID
	if second.ID > first.ID {
		wantFirst, wantSecond = second.ID, first.ID
	}
	s.Equal(wantFirst, entries[0].ID)
	s.Equal(wantSecond, entries[1].ID)
}

func (s *ActivityServiceSuite) TestRecentFewerThanLimit() {
	base := s.GetNow().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		s.seedLog(testutil.ClientActor.ID, fmt.Sprintf("action %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := s.service.Recent(s.GetContext(), 10)
	s.NoError(err)
	s.Equal([]string{"action 2", "action 1", "action 0"},
		lo.Map(entries, func(e *activitylog.ActivityLog, _ int) string { return e.Action }))
}

func (s *ActivityServiceSuite) TestRecentEmpty() {
	entries, err := s.service.Recent(s.GetContext(), 10)
	s.NoError(err)
	s.NotNil(entries)
	s.Empty(entries)
}

func (s *ActivityServiceSuite) TestListActivities() {
	base := s.GetNow().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		s.seedLog(testutil.ClientActor.ID, fmt.Sprintf("client %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	s.seedLog(testutil.AdminActor.ID, "admin", base)

	resp, err := s.service.ListActivities(s.GetContext(), &types.ActivityLogFilter{
		QueryFilter: types.NewLimitQueryFilter(2),
		UserID:      testutil.ClientActor.ID,
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(3, resp.Pagination.Total)
	s.Equal("client 2", resp.Items[0].Action)

	resp, err = s.service.ListActivities(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 4)
	s.Equal(2, s.GetDB().SnapshotCount())
}
