package email

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/config"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/validator"
)

// Sender delivers a single message. Implementations make one attempt and
// never retry.
type Sender interface {
	SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error)
}

// Email sends plain text mail through the resend client
type Email struct {
	client  *EmailClient
	timeout time.Duration
	logger  *logger.Logger
}

// NewEmail creates a new email sender
func NewEmail(client *EmailClient, cfg *config.Configuration, logger *logger.Logger) Sender {
	return &Email{
		client:  client,
		timeout: cfg.Email.Timeout,
		logger:  logger,
	}
}

// SendEmail sends a plain text email. A disabled client is not an error; the
// response reports Skipped instead.
func (s *Email) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{Skipped: true}, nil
	}

	fromAddress := req.FromAddress
	if fromAddress == "" {
		fromAddress = s.client.GetFromAddress()
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messageID, err := s.client.SendEmail(ctx, fromAddress, req.ToAddress, req.Subject, req.Text)
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return nil, ierr.WithError(err).
			WithHint("The confirmation email could not be delivered").
			WithReportableDetails(map[string]any{
				"to": req.ToAddress,
			}).
			Mark(ierr.ErrNotification)
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"subject", req.Subject,
	)

	return &SendEmailResponse{MessageID: messageID}, nil
}
