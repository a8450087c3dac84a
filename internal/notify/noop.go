package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It
// is used when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendRegistration logs and discards a registration event.
func (n *NoOpNotifier) SendRegistration(_ context.Context, p *RegistrationPayload) error {
	n.log.Debug("registration notification discarded (no backend configured)",
		"submission_id", p.SubmissionID,
		"imei", p.IMEI,
		"status", p.Status,
	)
	return nil
}

// SendSessionAlert logs and discards a session alert.
func (n *NoOpNotifier) SendSessionAlert(_ context.Context, p *SessionAlertPayload) error {
	n.log.Debug("session alert discarded (no backend configured)",
		"failures", p.Failures,
		"error", p.Error,
	)
	return nil
}
