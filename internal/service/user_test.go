package service

import (
	"testing"

	"github.com/logiport/portal/internal/domain/user"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(newTestServiceParams(&s.BaseServiceTestSuite, nil))
}

func (s *UserServiceSuite) TestGetUserInfo() {
	u := user.NewUser("alice", "alice@example.com", false)
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	testCases := []struct {
		name    string
		actor   types.Actor
		wantErr func(error) bool
	}{
		{name: "existing_account", actor: u.ToActor()},
		{name: "unknown_account", actor: types.Actor{ID: "user_missing"}, wantErr: ierr.IsPermissionDenied},
		{name: "no_actor", actor: types.Actor{}, wantErr: ierr.IsPermissionDenied},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.GetUserInfo(s.GetContext(), tc.actor)
			if tc.wantErr != nil {
				s.Error(err)
				s.True(tc.wantErr(err))
				return
			}
			s.NoError(err)
			s.Equal(u.ID, resp.ID)
			s.Equal("alice@example.com", resp.Email)
		})
	}
}
