package client

import (
	"context"
	"net/url"
)

// Unit is a Wialon unit matched by IMEI.
type Unit struct {
	IMEI   string `json:"imei"`
	UnitID int64  `json:"unit_id"`
}

// Availability reports whether an IMEI can be registered.
type Availability struct {
	IMEI      string `json:"imei"`
	Available bool   `json:"available"`
}

// GetUnit resolves an IMEI to its Wialon unit. A missing unit is an
// *APIError for which IsNotFound is true.
func (c *Client) GetUnit(ctx context.Context, imei string) (*Unit, error) {
	var u Unit
	if err := c.get(ctx, "/api/v1/units/"+url.PathEscape(imei), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAvailability reports whether exactly one unit matches the IMEI.
func (c *Client) GetAvailability(ctx context.Context, imei string) (*Availability, error) {
	var a Availability
	if err := c.get(ctx, "/api/v1/units/"+url.PathEscape(imei)+"/availability", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// InvalidateAvailability drops the server's cached availability for the IMEI.
func (c *Client) InvalidateAvailability(ctx context.Context, imei string) error {
	return c.del(ctx, "/api/v1/units/"+url.PathEscape(imei)+"/availability", nil)
}
