// internal/sensor/client.go
package sensor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tamzrod/parkwatch/internal/parse"
)

var errNoReading = errors.New("no reading")

// maxBody bounds how much of a response body is read.
const maxBody = 64 << 10

// URLFunc maps a remote parameter to its read URL.
type URLFunc func(param string) string

// Config is the minimal transport config.
type Config struct {
	URL     URLFunc
	Timeout time.Duration
}

// Client reads sensor channels over HTTP GET.
// One request per channel, no retries, no caching.
type Client struct {
	url     URLFunc
	timeout time.Duration
	hc      *http.Client
	log     *slog.Logger
}

func New(cfg Config, hc *http.Client, log *slog.Logger) (*Client, error) {
	if cfg.URL == nil {
		return nil, errors.New("sensor client: url builder required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if hc == nil {
		hc = &http.Client{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		url:     cfg.URL,
		timeout: cfg.Timeout,
		hc:      hc,
		log:     log.With(slog.String("component", "sensor")),
	}, nil
}

// ReadChannel performs exactly one read. It never returns an error;
// failures are carried inside the result.
func (c *Client) ReadChannel(ctx context.Context, ch Channel) ReadResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(ch.Param), nil)
	if err != nil {
		return Failure(ch.Name, &TransportError{Channel: ch.Name, Err: err}, "")
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Failure(ch.Name, &TransportError{Channel: ch.Name, Err: err}, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return Failure(ch.Name, &TransportError{
			Channel: ch.Name,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}, "")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Failure(ch.Name, &TransportError{Channel: ch.Name, Err: err}, "")
	}

	raw := string(body)
	v, err := parse.Parse(raw)
	if err != nil {
		return Failure(ch.Name, err, raw)
	}
	return Success(ch.Name, v, raw)
}

// ReadAll reads every channel concurrently and waits for all of them.
// The result holds one entry per channel name.
func (c *Client) ReadAll(ctx context.Context, chans []Channel) map[string]ReadResult {
	results := make([]ReadResult, len(chans))

	var wg sync.WaitGroup
	wg.Add(len(chans))
	for i, ch := range chans {
		go func(i int, ch Channel) {
			defer wg.Done()
			results[i] = c.ReadChannel(ctx, ch)
		}(i, ch)
	}
	wg.Wait()

	out := make(map[string]ReadResult, len(chans))
	for _, r := range results {
		if !r.OK() {
			c.log.Debug("channel read failed", "channel", r.Channel, "error", r.Reason())
		}
		out[r.Channel] = r
	}
	return out
}
