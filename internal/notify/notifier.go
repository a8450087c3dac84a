// Package notify defines the notification interface and implementations
// for registration and session events.
package notify

import (
	"context"
	"time"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// RegistrationPayload contains the data needed to announce a stored
// registration submission.
type RegistrationPayload struct {
	SubmissionID string
	Name         string
	Email        string
	AssetName    string
	IMEI         string
	UnitID       *int64
	Status       domain.SubmissionStatus
	ErrorFields  []string
}

// SessionAlertPayload describes a failed Wialon session refresh.
type SessionAlertPayload struct {
	Host     string
	Error    string
	Failures int
	At       time.Time
}

// Notifier defines the interface for sending operator notifications.
type Notifier interface {
	SendRegistration(ctx context.Context, p *RegistrationPayload) error
	SendSessionAlert(ctx context.Context, p *SessionAlertPayload) error
}
