// Package registrar accepts registration submissions: it validates them,
// records the result, and tells operators about it.
package registrar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/terminusgps/wialon-registration/internal/metrics"
	"github.com/terminusgps/wialon-registration/internal/notify"
	"github.com/terminusgps/wialon-registration/internal/store"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// ErrNotFound is returned by Get for unknown submission ids.
var ErrNotFound = store.ErrNotFound

// Validator produces a report for a registration.
type Validator interface {
	ValidateAll(ctx context.Context, r *domain.Registration) (*domain.Report, error)
}

// Service handles registration submissions.
type Service struct {
	store     store.Store
	validator Validator
	units     wialon.UnitSearcher
	notifier  notify.Notifier
	log       *slog.Logger
	newID     func() string
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithIDFunc overrides submission id generation.
func WithIDFunc(f func() string) Option {
	return func(s *Service) {
		s.newID = f
	}
}

// New creates a registration Service.
func New(
	st store.Store,
	v Validator,
	units wialon.UnitSearcher,
	n notify.Notifier,
	opts ...Option,
) *Service {
	s := &Service{
		store:     st,
		validator: v,
		units:     units,
		notifier:  n,
		log:       slog.Default(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates r and stores the outcome. Invalid registrations are
// stored as rejected and are not an error. An error is returned only when
// the remote directory or the store fails, in which case nothing is stored.
func (s *Service) Submit(
	ctx context.Context,
	r *domain.Registration,
) (*domain.Submission, *domain.Report, error) {
	report, err := s.validator.ValidateAll(ctx, r)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("validating registration: %w", err)
	}

	sub := &domain.Submission{
		ID:           s.newID(),
		Registration: *r,
		Status:       domain.SubmissionRejected,
		ErrorFields:  report.ErrorFields,
	}

	if report.IsValid {
		unitID, found, err := s.units.FindByIMEI(ctx, r.IMEI)
		if err != nil {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return nil, nil, fmt.Errorf("resolving unit: %w", err)
		}
		if found {
			sub.UnitID = &unitID
			sub.Status = domain.SubmissionAccepted
		} else {
			// The unit disappeared between validation and resolution.
			sub.ErrorFields = append(sub.ErrorFields, domain.FieldIMEI)
			report.IsValid = false
			report.ErrorFields = sub.ErrorFields
			if report.Fields == nil {
				report.Fields = make(map[string]domain.Outcome, 1)
			}
			report.Fields[domain.FieldIMEI] = domain.OutcomeInvalid
		}
	}

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("storing submission: %w", err)
	}
	metrics.RegistrationsTotal.WithLabelValues(string(sub.Status)).Inc()

	if sub.Status == domain.SubmissionAccepted {
		s.units.InvalidateAvailability(r.IMEI)
	}

	s.log.Info("registration submitted",
		"submission_id", sub.ID,
		"status", sub.Status,
		"imei", r.IMEI,
		"error_fields", sub.ErrorFields,
	)

	if err := s.notifier.SendRegistration(ctx, payloadFor(sub)); err != nil {
		s.log.Warn("registration notification failed",
			"submission_id", sub.ID,
			"error", err,
		)
	}

	return sub, report, nil
}

// Get returns a stored submission.
func (s *Service) Get(ctx context.Context, id string) (*domain.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting submission: %w", err)
	}
	return sub, nil
}

// List returns a page of stored submissions and the total match count.
func (s *Service) List(
	ctx context.Context,
	q *store.SubmissionQuery,
) ([]domain.Submission, int, error) {
	subs, total, err := s.store.ListSubmissions(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("listing submissions: %w", err)
	}
	return subs, total, nil
}

// Counts returns the number of stored submissions per status.
func (s *Service) Counts(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	return s.store.CountSubmissionsByStatus(ctx)
}

func payloadFor(sub *domain.Submission) *notify.RegistrationPayload {
	r := sub.Registration
	return &notify.RegistrationPayload{
		SubmissionID: sub.ID,
		Name:         strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:        r.Email,
		AssetName:    r.AssetName,
		IMEI:         r.IMEI,
		UnitID:       sub.UnitID,
		Status:       sub.Status,
		ErrorFields:  sub.ErrorFields,
	}
}
