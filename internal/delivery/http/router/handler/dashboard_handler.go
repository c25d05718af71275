package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"unibite/internal/delivery/http/response"
	"unibite/internal/usecase"
)

// DashboardHandler serves the derived overview, the earnings view, the audit
// log, platform settings and the maintenance actions.
type DashboardHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.StoreUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger}
}

// Stats returns the dashboard overview counters.
func (h *DashboardHandler) Stats(c echo.Context) error {
	return response.Success(c, http.StatusOK, toStatsResponse(h.uc.Stats()), "")
}

// Earnings returns the aggregated revenue view.
func (h *DashboardHandler) Earnings(c echo.Context) error {
	return response.Success(c, http.StatusOK, toEarningsResponse(h.uc.Earnings()), "")
}

// SystemLogs returns the audit log, newest first.
func (h *DashboardHandler) SystemLogs(c echo.Context) error {
	return response.Success(c, http.StatusOK, toAuditEntryResponses(h.uc.SystemLogs()), "")
}

// Settings returns the platform settings blob.
func (h *DashboardHandler) Settings(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Settings(), "")
}

type updateSettingRequest struct {
	Section string `json:"section"`
	Key     string `json:"key" validate:"required"`
	Value   any    `json:"value"`
}

// UpdateSetting merges one option into the settings blob.
func (h *DashboardHandler) UpdateSetting(c echo.Context) error {
	var input updateSettingRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	err := h.uc.UpdateSettings(c.Request().Context(), usecase.UpdateSettingsInput{
		Section: input.Section,
		Key:     input.Key,
		Value:   input.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.uc.Settings(), "Setting updated")
}

// Refresh re-fetches every collection from the gateway.
func (h *DashboardHandler) Refresh(c echo.Context) error {
	if err := h.uc.RefreshAll(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "State refreshed")
}

// ClearCache runs the audited cache-clear maintenance action.
func (h *DashboardHandler) ClearCache(c echo.Context) error {
	if err := h.uc.ClearCache(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "System cache cleared")
}

// ResetSystem rebuilds the cached state from the gateway wholesale.
func (h *DashboardHandler) ResetSystem(c echo.Context) error {
	if err := h.uc.ResetSystem(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "System reset")
}
