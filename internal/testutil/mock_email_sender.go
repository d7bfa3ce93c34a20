package testutil

import (
	"context"
	"sync"

	"github.com/logiport/portal/internal/email"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

var _ email.Sender = (*RecordingEmailSender)(nil)

// RecordingEmailSender captures outgoing mail instead of delivering it
type RecordingEmailSender struct {
	mu      sync.Mutex
	sent    []email.SendEmailRequest
	failErr error
}

func NewRecordingEmailSender() *RecordingEmailSender {
	return &RecordingEmailSender{}
}

// FailWith makes every subsequent send fail with err; nil restores delivery
func (m *RecordingEmailSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *RecordingEmailSender) SendEmail(ctx context.Context, req email.SendEmailRequest) (*email.SendEmailResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return nil, ierr.WithError(m.failErr).
			WithHint("The confirmation email could not be delivered").
			Mark(ierr.ErrNotification)
	}

	m.sent = append(m.sent, req)
	return &email.SendEmailResponse{MessageID: types.GenerateUUID()}, nil
}

// Sent returns a copy of every delivered message in send order
func (m *RecordingEmailSender) Sent() []email.SendEmailRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.SendEmailRequest{}, m.sent...)
}

// Reset clears delivered messages and failure mode
func (m *RecordingEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
}
