// Package domain defines the core business types for wialon-registration.
package domain

import (
	"time"
)

// Registration field names, as submitted by the registration form.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldAssetName   = "assetName"
	FieldPhoneNumber = "phoneNumber"
	FieldIMEI        = "imei"
	FieldVIN         = "vin"
)

// Fields lists every registration field in validation order.
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldAssetName,
	FieldPhoneNumber,
	FieldIMEI,
	FieldVIN,
}

// Registration is a user-submitted request to register an asset.
type Registration struct {
	FirstName   string `json:"firstName"   db:"first_name"`
	LastName    string `json:"lastName"    db:"last_name"`
	Email       string `json:"email"       db:"email"`
	AssetName   string `json:"assetName"   db:"asset_name"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	IMEI        string `json:"imei"        db:"imei"`
	VIN         string `json:"vin"         db:"vin"`
}

// Value returns the submitted value of a named field.
func (r *Registration) Value(field string) string {
	switch field {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldAssetName:
		return r.AssetName
	case FieldPhoneNumber:
		return r.PhoneNumber
	case FieldIMEI:
		return r.IMEI
	case FieldVIN:
		return r.VIN
	default:
		return ""
	}
}

// Outcome is the result of validating one field.
type Outcome string

// Outcome constants. OutcomeUnchecked marks validators that are not
// implemented yet; they always pass.
const (
	OutcomeValid     Outcome = "valid"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeUnchecked Outcome = "unchecked"
)

// Passed reports whether the outcome counts toward an overall pass.
func (o Outcome) Passed() bool {
	return o == OutcomeValid || o == OutcomeUnchecked
}

// Report is the aggregated result of validating a Registration.
type Report struct {
	IsValid         bool               `json:"is_valid"`
	ErrorFields     []string           `json:"error_fields"`
	UncheckedFields []string           `json:"unchecked_fields"`
	Fields          map[string]Outcome `json:"fields"`
}

// SubmissionStatus is the state of a stored registration submission.
type SubmissionStatus string

// Submission status constants.
const (
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a stored registration attempt and its validation result.
type Submission struct {
	ID           string           `json:"id"                db:"id"`
	Registration Registration     `json:"registration"`
	UnitID       *int64           `json:"unit_id,omitempty" db:"unit_id"`
	Status       SubmissionStatus `json:"status"            db:"status"`
	ErrorFields  []string         `json:"error_fields"      db:"error_fields"`
	CreatedAt    time.Time        `json:"created_at"        db:"created_at"`
}
