// internal/actuator/remote.go
package actuator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteConfig describes the HTTP write endpoint.
type RemoteConfig struct {
	// URL returns the write URL for a level ("1" or "0").
	URL     func(level string) string
	Timeout time.Duration
}

// RemoteDriver switches the output with one GET per command.
// Only the status code is checked; the body is ignored.
type RemoteDriver struct {
	url     func(level string) string
	timeout time.Duration
	hc      *http.Client
}

func NewRemoteDriver(cfg RemoteConfig, hc *http.Client) (*RemoteDriver, error) {
	if cfg.URL == nil {
		return nil, errors.New("remote driver: url builder required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &RemoteDriver{url: cfg.URL, timeout: cfg.Timeout, hc: hc}, nil
}

func (d *RemoteDriver) Write(ctx context.Context, cmd Command) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url(level(cmd)), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")

	resp, err := d.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("non-2xx from write endpoint: %d", resp.StatusCode)
	}
	return nil
}

func level(cmd Command) string {
	if cmd == On {
		return "1"
	}
	return "0"
}
