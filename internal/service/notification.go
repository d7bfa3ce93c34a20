package service

import (
	"context"
	"strings"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/email"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

// NotificationService sends transactional mail. Every send is one
// synchronous attempt without retry.
type NotificationService interface {
	// Notify returns an error marked ErrNotification when delivery fails
	Notify(ctx context.Context, to, subject, body string) error

	// NotifyTradeRecorded confirms a new trade to its owner and applies the
	// configured failure policy
	NotifyTradeRecorded(ctx context.Context, actor types.Actor, t *trade.Trade) error
}

type notificationService struct {
	ServiceParams
}

func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{
		ServiceParams: params,
	}
}

func (s *notificationService) Notify(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" || !types.IsValidEmail(to) {
		return ierr.NewError("recipient has no valid email address").
			WithHint("The recipient has no valid email address on file").
			WithReportableDetails(map[string]any{
				"to": to,
			}).
			Mark(ierr.ErrNotification)
	}

	resp, err := s.Email.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: to,
		Subject:   subject,
		Text:      body,
	})
	if err != nil {
		if ierr.IsNotification(err) {
			return err
		}
		return ierr.WithError(err).
			WithHint("The notification could not be delivered").
			Mark(ierr.ErrNotification)
	}

	if resp != nil && resp.Skipped {
		s.Logger.Infow("notification skipped, email delivery disabled",
			"to", to,
			"subject", subject,
		)
	}
	return nil
}

func (s *notificationService) NotifyTradeRecorded(ctx context.Context, actor types.Actor, t *trade.Trade) error {
	subject, body := dto.TradeConfirmation(actor.DisplayName(), t)

	err := s.Notify(ctx, actor.Email, subject, body)
	if err == nil {
		return nil
	}

	s.Logger.Errorw("failed to send trade confirmation",
		"error", err,
		"trade_id", t.ID,
		"user_id", actor.ID,
		"policy", s.Config.Notification.OnFailure,
		"request_id", types.GetRequestID(ctx),
	)
	s.Sentry.CaptureOperationalFailure(ctx, "notification.trade_recorded", err, map[string]string{
		"trade_id": t.ID,
		"user_id":  actor.ID,
	})

	if s.Config.Notification.OnFailure == types.NotificationFailureLogOnly {
		return nil
	}
	return err
}
