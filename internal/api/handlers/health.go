package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/terminusgps/wialon-registration/internal/store"
	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// SessionReporter reports the state of the shared remote session.
type SessionReporter interface {
	Info() wialon.SessionInfo
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store   store.Store
	session SessionReporter
}

// NewHealthHandler creates a new HealthHandler. session may be nil when
// every request opens its own session.
func NewHealthHandler(s store.Store, session SessionReporter) *HealthHandler {
	return &HealthHandler{store: s, session: session}
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the store is reachable and the shared session is
// logged in, 503 otherwise.
//
// @Summary Readiness check
// @Description Returns 200 if the store is reachable and the session is ready, 503 otherwise.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	if h.session != nil && !h.session.Info().Ready {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "session not ready"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
