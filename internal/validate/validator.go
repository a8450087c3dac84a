package validate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terminusgps/wialon-registration/internal/metrics"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// Validator validates whole registrations. The IMEI field is checked
// against the remote unit directory, so unlike the other fields it may
// fail with an error when the directory cannot be reached.
type Validator struct {
	units       wialon.UnitFinder
	log         *slog.Logger
	formatCheck bool
}

// Option configures the Validator.
type Option func(*Validator)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		v.log = l
	}
}

// WithIMEIFormatCheck rejects IMEIs that fail CheckIMEIFormat before any
// remote lookup is made.
func WithIMEIFormatCheck() Option {
	return func(v *Validator) {
		v.formatCheck = true
	}
}

// New creates a Validator that resolves IMEIs through units.
func New(units wialon.UnitFinder, opts ...Option) *Validator {
	v := &Validator{
		units: units,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateIMEI reports whether value names a unit known to the remote
// directory. An empty value is invalid and makes no remote call.
func (v *Validator) ValidateIMEI(ctx context.Context, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	if v.formatCheck && !CheckIMEIFormat(value) {
		return false, nil
	}

	_, found, err := v.units.FindByIMEI(ctx, value)
	if err != nil {
		return false, fmt.Errorf("looking up imei: %w", err)
	}
	return found, nil
}

// ValidateAll validates every field of r. The report's IsValid is true only
// when every field passed. An error is returned only when the IMEI lookup
// itself failed.
func (v *Validator) ValidateAll(ctx context.Context, r *domain.Registration) (*domain.Report, error) {
	imeiOK, err := v.ValidateIMEI(ctx, r.IMEI)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	results := map[string]domain.Outcome{
		domain.FieldFirstName:   outcome(ValidateName(r.FirstName)),
		domain.FieldLastName:    outcome(ValidateName(r.LastName)),
		domain.FieldEmail:       outcome(ValidateEmail(r.Email)),
		domain.FieldAssetName:   outcome(ValidateAssetName(r.AssetName)),
		domain.FieldPhoneNumber: ValidatePhone(r.PhoneNumber),
		domain.FieldIMEI:        outcome(imeiOK),
		domain.FieldVIN:         ValidateVIN(r.VIN),
	}

	report := &domain.Report{
		ErrorFields:     []string{},
		UncheckedFields: []string{},
		Fields:          results,
	}
	for _, field := range domain.Fields {
		switch o := results[field]; {
		case !o.Passed():
			report.ErrorFields = append(report.ErrorFields, field)
			metrics.ValidationFieldFailuresTotal.WithLabelValues(field).Inc()
		case o == domain.OutcomeUnchecked:
			report.UncheckedFields = append(report.UncheckedFields, field)
		}
	}
	report.IsValid = len(report.ErrorFields) == 0

	if report.IsValid {
		metrics.ValidationsTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.ValidationsTotal.WithLabelValues("invalid").Inc()
	}

	v.log.Debug("registration validated",
		"is_valid", report.IsValid,
		"error_fields", report.ErrorFields,
	)
	return report, nil
}
