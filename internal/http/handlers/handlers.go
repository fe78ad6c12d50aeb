// Package handlers contains the dashboard API handler logic.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/history"
	"github.com/opsdeck/opsdeck/internal/refresh"
)

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg        config.Config
	Controller *refresh.Controller
	History    *history.Recorder
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(200, "ok")
}

// RenderError logs the error and returns a generic JSON error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	slog.Error("http error", "path", path, "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

type statusResponse struct {
	State               refresh.State `json:"state"`
	LastError           string        `json:"lastError,omitempty"`
	LastRefreshedAt     *time.Time    `json:"lastRefreshedAt,omitempty"`
	SecondsSinceRefresh *int64        `json:"secondsSinceRefresh,omitempty"`
}

func (h *Handlers) statusPayload(now time.Time) statusResponse {
	status := h.Controller.Status()
	resp := statusResponse{State: status.State, LastError: status.LastError}
	if !status.LastRefreshedAt.IsZero() {
		at := status.LastRefreshedAt
		resp.LastRefreshedAt = &at
		seconds := int64(now.Sub(at).Seconds())
		if seconds < 0 {
			seconds = 0
		}
		resp.SecondsSinceRefresh = &seconds
	}
	return resp
}
