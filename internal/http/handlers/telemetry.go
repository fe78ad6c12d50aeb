package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/opsdeck/opsdeck/internal/history"
	"github.com/opsdeck/opsdeck/internal/refresh"
	"github.com/opsdeck/opsdeck/internal/telemetry"
)

const maxHistoryLimit = 500

type telemetryResponse struct {
	Overall json.RawMessage `json:"overall,omitempty"`
	*telemetry.AggregatedView
	RecentJobs []json.RawMessage `json:"recentJobs,omitempty"`
}

// HandleTelemetry serves the reconciled view. Display components must
// consume this endpoint rather than re-deriving links or dedupe state.
func (h *Handlers) HandleTelemetry(c *echo.Context) error {
	resp := telemetryResponse{AggregatedView: h.Controller.View()}
	if snapshot := h.Controller.Snapshot(); snapshot != nil {
		resp.Overall = snapshot.Overall
		resp.RecentJobs = snapshot.RecentJobs
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleStatus serves the refresh state for the status indicator.
func (h *Handlers) HandleStatus(c *echo.Context) error {
	return c.JSON(http.StatusOK, h.statusPayload(time.Now()))
}

// HandleRefresh triggers a manual refresh. The fetch runs regardless of
// any refresh already in flight; debouncing the trigger control is the
// display layer's job. On failure the previous view stays published and
// the error is surfaced in the response.
func (h *Handlers) HandleRefresh(c *echo.Context) error {
	if err := h.Controller.Refresh(c.Request().Context(), refresh.TriggerManual); err != nil {
		return c.JSON(http.StatusBadGateway, struct {
			statusResponse
			Error string `json:"error"`
		}{h.statusPayload(time.Now()), err.Error()})
	}
	return c.JSON(http.StatusOK, h.statusPayload(time.Now()))
}

// HandleRefreshHistory lists recent refresh runs, newest first.
func (h *Handlers) HandleRefreshHistory(c *echo.Context) error {
	if h.History == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "refresh history is not configured"})
	}

	limit := 0
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be between 1 and 500"})
		}
		limit = n
	}

	runs, err := h.History.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return h.RenderError(c, err)
	}
	if runs == nil {
		runs = []history.RunRecord{}
	}
	return c.JSON(http.StatusOK, runs)
}
