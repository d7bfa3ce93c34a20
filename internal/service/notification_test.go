package service

import (
	"errors"
	"testing"
	"time"

	"github.com/logiport/portal/internal/domain/trade"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceSuite struct {
	testutil.BaseServiceTestSuite
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) newService(policy types.NotificationFailurePolicy) NotificationService {
	cfg := *s.GetConfig()
	cfg.Notification.OnFailure = policy
	return NewNotificationService(newTestServiceParams(&s.BaseServiceTestSuite, &cfg))
}

func (s *NotificationServiceSuite) TestNotify() {
	svc := s.newService(types.NotificationFailureRaise)

	testCases := []struct {
		name     string
		to       string
		mailErr  error
		wantErr  bool
		wantSent int
	}{
		{name: "delivered", to: "alice@example.com", wantSent: 1},
		{name: "empty_recipient", to: "", wantErr: true},
		{name: "malformed_recipient", to: "alice.example.com", wantErr: true},
		{name: "delivery_failure", to: "alice@example.com", mailErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.GetMailer().Reset()
			s.GetMailer().FailWith(tc.mailErr)

			err := svc.Notify(s.GetContext(), tc.to, "Subject", "Body")
			if tc.wantErr {
				s.Error(err)
				s.True(ierr.IsNotification(err))
			} else {
				s.NoError(err)
			}
			s.Len(s.GetMailer().Sent(), tc.wantSent)
		})
	}
}

func (s *NotificationServiceSuite) TestNotifyTradeRecordedPolicies() {
	t := &trade.Trade{
		ID:        "trade_1",
		Product:   "Widget",
		Quantity:  3,
		Price:     decimal.RequireFromString("10.5"),
		TradeDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		UserID:    testutil.ClientActor.ID,
	}
	s.GetMailer().FailWith(errors.New("mailbox unavailable"))

	err := s.newService(types.NotificationFailureRaise).NotifyTradeRecorded(s.GetContext(), testutil.ClientActor, t)
	s.True(ierr.IsNotification(err))

	err = s.newService(types.NotificationFailureLogOnly).NotifyTradeRecorded(s.GetContext(), testutil.ClientActor, t)
	s.NoError(err)

	s.GetMailer().FailWith(nil)
	err = s.newService(types.NotificationFailureRaise).NotifyTradeRecorded(s.GetContext(), testutil.ClientActor, t)
	s.NoError(err)

	sent := s.GetMailer().Sent()
	s.Require().Len(sent, 1)
	s.Contains(sent[0].Text, "Price: 10.50")
	s.Contains(sent[0].Text, "Date: 2024-07-01")
}
