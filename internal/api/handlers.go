// internal/api/handlers.go
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/insights"
	"github.com/tamzrod/parkwatch/internal/poller"
)

// Poller is the loop surface the API drives.
type Poller interface {
	Latest() (poller.Report, bool)
	State() poller.State
	Trigger() bool
	SetInterval(d time.Duration) error
	Interval() time.Duration
}

// ActuatorState exposes the last command that reached the device.
type ActuatorState interface {
	Last() (actuator.Command, bool)
}

// Insights is the read-only history/prediction client.
type Insights interface {
	History(ctx context.Context) (insights.History, error)
	Predict(ctx context.Context, q insights.Query) (insights.Prediction, error)
}

// Handler serves the control and observability endpoints.
type Handler struct {
	version  string
	poller   Poller
	actuator ActuatorState
	insights Insights
}

func NewHandler(version string, p Poller, act ActuatorState, ins Insights) *Handler {
	return &Handler{version: version, poller: p, actuator: act, insights: ins}
}

// statusView is the latest report plus the debounce memory.
type statusView struct {
	poller.Report
	State        string  `json:"state"`
	IntervalMs   int64   `json:"interval_ms"`
	ActuatorLast *string `json:"actuator_last"`
}

func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"version":     h.version,
		"state":       h.poller.State().String(),
		"interval_ms": h.poller.Interval().Milliseconds(),
	})
}

func (h *Handler) status() (statusView, error) {
	rep, ok := h.poller.Latest()
	if !ok {
		return statusView{}, NewNotFoundError("no cycle has completed yet")
	}

	v := statusView{
		Report:     rep,
		State:      h.poller.State().String(),
		IntervalMs: h.poller.Interval().Milliseconds(),
	}
	if h.actuator != nil {
		if cmd, ok := h.actuator.Last(); ok {
			s := cmd.String()
			v.ActuatorLast = &s
		}
	}
	return v, nil
}

// HandleStatus returns the latest cycle report.
func (h *Handler) HandleStatus(c echo.Context) error {
	v, err := h.status()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// HandleStatusMsgpack returns the latest cycle report, msgpack-encoded
// with the same field names as the JSON form.
func (h *Handler) HandleStatusMsgpack(c echo.Context) error {
	v, err := h.status()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/msgpack", buf.Bytes())
}

// HandleTriggerPoll queues a manual cycle.
func (h *Handler) HandleTriggerPoll(c echo.Context) error {
	queued := h.poller.Trigger()
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"queued":    queued,
		"coalesced": !queued,
	})
}

type intervalRequest struct {
	IntervalMs int64 `json:"interval_ms"`
}

// HandleSetInterval changes the poll interval for subsequent ticks.
func (h *Handler) HandleSetInterval(c echo.Context) error {
	var req intervalRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	// Checked before conversion: a large value would overflow time.Duration.
	if req.IntervalMs <= 0 || req.IntervalMs > poller.MaxInterval.Milliseconds() {
		return NewValidationError("interval_ms",
			fmt.Sprintf("must be in 1..%d", poller.MaxInterval.Milliseconds()))
	}

	if err := h.poller.SetInterval(time.Duration(req.IntervalMs) * time.Millisecond); err != nil {
		return NewBadRequestError("interval rejected", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"interval_ms": h.poller.Interval().Milliseconds(),
	})
}

func (h *Handler) HandleHistory(c echo.Context) error {
	if h.insights == nil {
		return NewServiceUnavailableError("insights not configured")
	}
	hist, err := h.insights.History(c.Request().Context())
	if err != nil {
		return insightsError("history unavailable", err)
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *Handler) HandlePredict(c echo.Context) error {
	if h.insights == nil {
		return NewServiceUnavailableError("insights not configured")
	}

	var q insights.Query
	if err := c.Bind(&q); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	p, err := h.insights.Predict(c.Request().Context(), q)
	if err != nil {
		return insightsError("prediction unavailable", err)
	}
	return c.JSON(http.StatusOK, p)
}

func insightsError(message string, err error) error {
	var iq *insights.InvalidQueryError
	switch {
	case errors.Is(err, insights.ErrNotConfigured):
		return NewServiceUnavailableError("insights not configured")
	case errors.As(err, &iq):
		return NewBadRequestError("invalid query", iq.Err)
	default:
		return NewUpstreamError(message, err)
	}
}
