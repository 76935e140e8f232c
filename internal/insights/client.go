// internal/insights/client.go
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tamzrod/parkwatch/internal/parse"
)

// HoursPerDay is the length of every history series.
const HoursPerDay = 24

const maxBody = 256 << 10

// ErrNotConfigured is returned when the matching endpoint URL is empty.
var ErrNotConfigured = errors.New("insights: endpoint not configured")

// History maps bay id to 24 hourly occupancy percentages.
type History map[string][]float64

// Query asks for the expected occupancy of one bay.
type Query struct {
	Slot    string `json:"slot"`
	Hour    int    `json:"hour"`
	Weekday int    `json:"weekday"`
}

func (q Query) validate() error {
	if q.Slot == "" {
		return errors.New("slot is required")
	}
	if q.Hour < 0 || q.Hour > 23 {
		return fmt.Errorf("hour %d out of range 0..23", q.Hour)
	}
	if q.Weekday < 0 || q.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range 0..6", q.Weekday)
	}
	return nil
}

// InvalidQueryError reports a query rejected before any request is sent.
type InvalidQueryError struct {
	Err error
}

func (e *InvalidQueryError) Error() string { return "insights: invalid query: " + e.Err.Error() }
func (e *InvalidQueryError) Unwrap() error { return e.Err }

// Prediction is the expected occupancy percentage for a query.
type Prediction struct {
	Query   Query   `json:"query"`
	Percent float64 `json:"percent"`
}

type Config struct {
	HistoryURL string
	PredictURL string
	Timeout    time.Duration
}

// Client is a read-only consumer of the history and prediction endpoints.
type Client struct {
	cfg Config
	hc  *http.Client
	log *slog.Logger
}

func New(cfg Config, hc *http.Client, log *slog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{cfg: cfg, hc: hc, log: log.With(slog.String("component", "insights"))}
}

// Configured reports which endpoints are available.
func (c *Client) Configured() (history, predict bool) {
	return c.cfg.HistoryURL != "", c.cfg.PredictURL != ""
}

// History fetches the hourly occupancy heatmap.
func (c *Client) History(ctx context.Context) (History, error) {
	if c.cfg.HistoryURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.do(ctx, http.MethodGet, c.cfg.HistoryURL, nil)
	if err != nil {
		return nil, err
	}

	var h History
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("insights: decode history: %w", err)
	}
	for bay, series := range h {
		if len(series) != HoursPerDay {
			return nil, fmt.Errorf("insights: history for %q has %d values, want %d", bay, len(series), HoursPerDay)
		}
		for i, v := range series {
			if v < 0 || v > 100 {
				return nil, fmt.Errorf("insights: history for %q hour %d: %v out of range 0..100", bay, i, v)
			}
		}
	}
	return h, nil
}

// Predict asks the model for one bay/hour/weekday.
// The response body is read with the tolerant sensor parser.
func (c *Client) Predict(ctx context.Context, q Query) (Prediction, error) {
	if c.cfg.PredictURL == "" {
		return Prediction{}, ErrNotConfigured
	}
	if err := q.validate(); err != nil {
		return Prediction{}, &InvalidQueryError{Err: err}
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return Prediction{}, fmt.Errorf("insights: encode query: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.cfg.PredictURL, payload)
	if err != nil {
		return Prediction{}, err
	}

	pct, err := parse.Parse(string(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("insights: prediction: %w", err)
	}
	if pct < 0 || pct > 100 {
		return Prediction{}, fmt.Errorf("insights: prediction %v out of range 0..100", pct)
	}

	c.log.Debug("prediction", "slot", q.Slot, "hour", q.Hour, "weekday", q.Weekday, "percent", pct)
	return Prediction{Query: q, Percent: pct}, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, fmt.Errorf("insights: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insights: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("insights: %s %s: status %d", method, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("insights: read body: %w", err)
	}
	return body, nil
}
