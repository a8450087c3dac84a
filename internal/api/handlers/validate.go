package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terminusgps/wialon-registration/internal/registrar"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// RegistrationBody is a registration as submitted by the form. Every field
// is optional at the HTTP layer so that missing values come back as
// validation failures instead of request errors.
type RegistrationBody struct {
	FirstName   string `json:"firstName"   required:"false" example:"Jane"             doc:"First name"`
	LastName    string `json:"lastName"    required:"false" example:"Doe"              doc:"Last name"`
	Email       string `json:"email"       required:"false" example:"jane@example.com" doc:"Contact email"`
	AssetName   string `json:"assetName"   required:"false" example:"Truck 12"         doc:"Display name for the asset"`
	PhoneNumber string `json:"phoneNumber" required:"false" example:"+15555550100"     doc:"Contact phone number"`
	IMEI        string `json:"imei"        required:"false" example:"356938035643809"  doc:"Tracking device IMEI"`
	VIN         string `json:"vin"         required:"false" example:"1HGCM82633A004352" doc:"Vehicle identification number"`
}

func (b *RegistrationBody) registration() *domain.Registration {
	return &domain.Registration{
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		Email:       b.Email,
		AssetName:   b.AssetName,
		PhoneNumber: b.PhoneNumber,
		IMEI:        b.IMEI,
		VIN:         b.VIN,
	}
}

// ValidateHandler validates registrations without storing them.
type ValidateHandler struct {
	validator registrar.Validator
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(v registrar.Validator) *ValidateHandler {
	return &ValidateHandler{validator: v}
}

// ValidateInput is the request for validating a registration.
type ValidateInput struct {
	Body RegistrationBody
}

// ValidateOutput is the validation report.
type ValidateOutput struct {
	Body domain.Report
}

// Validate runs every field validator against the submitted registration.
func (h *ValidateHandler) Validate(
	ctx context.Context,
	input *ValidateInput,
) (*ValidateOutput, error) {
	report, err := h.validator.ValidateAll(ctx, input.Body.registration())
	if err != nil {
		return nil, wialonError("validation failed", err)
	}
	return &ValidateOutput{Body: *report}, nil
}

// RegisterValidateRoutes registers the validation endpoint with the Huma API.
func RegisterValidateRoutes(api huma.API, h *ValidateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-registration",
		Method:      http.MethodPost,
		Path:        "/api/v1/validate",
		Summary:     "Validate a registration",
		Description: "Validates every field of a registration, including IMEI availability in Wialon. Nothing is stored.",
		Tags:        []string{"registrations"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusTooManyRequests},
	}, h.Validate)
}
