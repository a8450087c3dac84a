package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// SubmitResponse is the stored submission and its validation report.
type SubmitResponse struct {
	Submission domain.Submission `json:"submission"`
	Report     domain.Report     `json:"report"`
}

// RegistrationsResponse wraps a paginated submissions response.
type RegistrationsResponse struct {
	Submissions []domain.Submission `json:"submissions"`
	Total       int                 `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}

// ListRegistrationsParams defines query parameters for listing submissions.
type ListRegistrationsParams struct {
	Status string
	IMEI   string
	Email  string
	Limit  int
	Offset int
}

// RegistrationStats is the per-status submission count.
type RegistrationStats struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Validate validates a registration without storing it.
func (c *Client) Validate(ctx context.Context, r *domain.Registration) (*domain.Report, error) {
	var report domain.Report
	if err := c.post(ctx, "/api/v1/validate", r, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SubmitRegistration validates and stores a registration.
func (c *Client) SubmitRegistration(ctx context.Context, r *domain.Registration) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.post(ctx, "/api/v1/registrations", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRegistrations returns submissions matching the given parameters.
func (c *Client) ListRegistrations(
	ctx context.Context,
	params *ListRegistrationsParams,
) (*RegistrationsResponse, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.IMEI != "" {
		q.Set("imei", params.IMEI)
	}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/registrations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp RegistrationsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRegistration returns a single submission by ID.
func (c *Client) GetRegistration(ctx context.Context, id string) (*domain.Submission, error) {
	var sub domain.Submission
	if err := c.get(ctx, "/api/v1/registrations/"+url.PathEscape(id), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// RegistrationStats returns submission counts per status.
func (c *Client) RegistrationStats(ctx context.Context) (*RegistrationStats, error) {
	var stats RegistrationStats
	if err := c.get(ctx, "/api/v1/registrations/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
