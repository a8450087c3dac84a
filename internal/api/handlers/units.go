package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// UnitsHandler handles unit lookup and availability endpoints.
type UnitsHandler struct {
	units wialon.UnitSearcher
}

// NewUnitsHandler creates a new UnitsHandler.
func NewUnitsHandler(u wialon.UnitSearcher) *UnitsHandler {
	return &UnitsHandler{units: u}
}

// UnitInput identifies a unit by IMEI.
type UnitInput struct {
	IMEI string `path:"imei" doc:"Tracking device IMEI" minLength:"1" maxLength:"32" example:"356938035643809"`
}

// UnitOutput is the remote unit matched by an IMEI.
type UnitOutput struct {
	Body struct {
		IMEI   string `json:"imei"    doc:"Requested IMEI"`
		UnitID int64  `json:"unit_id" doc:"Wialon unit id"`
	}
}

// AvailabilityOutput reports whether an IMEI can be registered.
type AvailabilityOutput struct {
	Body struct {
		IMEI      string `json:"imei"      doc:"Requested IMEI"`
		Available bool   `json:"available" doc:"Exactly one unit matches the IMEI"`
	}
}

// GetUnit resolves an IMEI to its Wialon unit id.
func (h *UnitsHandler) GetUnit(ctx context.Context, input *UnitInput) (*UnitOutput, error) {
	id, found, err := h.units.FindByIMEI(ctx, input.IMEI)
	if err != nil {
		return nil, wialonError("unit lookup failed", err)
	}
	if !found {
		return nil, huma.Error404NotFound("no unit matches imei " + input.IMEI)
	}

	resp := &UnitOutput{}
	resp.Body.IMEI = input.IMEI
	resp.Body.UnitID = id
	return resp, nil
}

// GetAvailability reports whether exactly one unit matches the IMEI.
func (h *UnitsHandler) GetAvailability(
	ctx context.Context,
	input *UnitInput,
) (*AvailabilityOutput, error) {
	ok, err := h.units.UnitIsAvailable(ctx, input.IMEI)
	if err != nil {
		return nil, wialonError("availability check failed", err)
	}

	resp := &AvailabilityOutput{}
	resp.Body.IMEI = input.IMEI
	resp.Body.Available = ok
	return resp, nil
}

// InvalidateAvailability drops any cached availability result for the IMEI.
func (h *UnitsHandler) InvalidateAvailability(
	_ context.Context,
	input *UnitInput,
) (*struct{}, error) {
	h.units.InvalidateAvailability(input.IMEI)
	return nil, nil
}

// RegisterUnitRoutes registers unit endpoints with the Huma API.
func RegisterUnitRoutes(api huma.API, h *UnitsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-unit",
		Method:      http.MethodGet,
		Path:        "/api/v1/units/{imei}",
		Summary:     "Find a unit by IMEI",
		Description: "Searches Wialon for a unit whose unique id matches the IMEI.",
		Tags:        []string{"units"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.GetUnit)

	huma.Register(api, huma.Operation{
		OperationID: "get-unit-availability",
		Method:      http.MethodGet,
		Path:        "/api/v1/units/{imei}/availability",
		Summary:     "Check unit availability",
		Description: "Reports whether exactly one Wialon unit matches the IMEI. Results may be cached.",
		Tags:        []string{"units"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.GetAvailability)

	huma.Register(api, huma.Operation{
		OperationID:   "invalidate-unit-availability",
		Method:        http.MethodDelete,
		Path:          "/api/v1/units/{imei}/availability",
		Summary:       "Invalidate cached availability",
		Description:   "Drops the cached availability result for the IMEI so the next check asks Wialon.",
		Tags:          []string{"units"},
		DefaultStatus: http.StatusNoContent,
	}, h.InvalidateAvailability)
}
