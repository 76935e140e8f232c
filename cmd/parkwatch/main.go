// cmd/parkwatch/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/api"
	"github.com/tamzrod/parkwatch/internal/config"
	"github.com/tamzrod/parkwatch/internal/insights"
	"github.com/tamzrod/parkwatch/internal/logging"
	"github.com/tamzrod/parkwatch/internal/metrics"
	"github.com/tamzrod/parkwatch/internal/poller"
	"github.com/tamzrod/parkwatch/internal/sensor"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: parkwatch <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	logger.Info("starting parkwatch",
		"version", Version,
		"device", cfg.Device.ID,
		"bays", len(cfg.Bays),
		"interval_ms", cfg.Poll.IntervalMs,
		"actuator", cfg.Actuator.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hc := &http.Client{}

	// --------------------
	// Sensor reads
	// --------------------

	reader, err := sensor.New(sensor.Config{
		URL:     cfg.Device.ReadURL,
		Timeout: ms(cfg.Device.TimeoutMs),
	}, hc, logger)
	if err != nil {
		log.Fatalf("sensor client failed: %v", err)
	}

	// --------------------
	// Actuator
	// --------------------

	driver, closeDriver, err := buildDriver(*cfg, hc)
	if err != nil {
		log.Fatalf("actuator driver failed (driver=%s): %v", cfg.Actuator.Driver, err)
	}
	defer closeDriver()

	controller := actuator.NewController(driver, logger)

	// --------------------
	// Sinks
	// --------------------

	m := metrics.New()

	sinks, closeSinks, err := buildSinks(*cfg, logger)
	if err != nil {
		log.Fatalf("sink setup failed: %v", err)
	}
	defer closeSinks()
	sinks = append(sinks, m)

	// --------------------
	// Poll loop
	// --------------------

	p, err := poller.Build(*cfg, reader, controller, sinks, logger)
	if err != nil {
		log.Fatalf("poller build failed: %v", err)
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		p.Run(ctx)
	}()

	// --------------------
	// HTTP API
	// --------------------

	ins := insights.New(insights.Config{
		HistoryURL: cfg.Insights.HistoryURL,
		PredictURL: cfg.Insights.PredictURL,
		Timeout:    ms(cfg.Insights.TimeoutMs),
	}, hc, logger)

	e := api.NewServer(api.NewHandler(Version, p, controller, ins), m.Handler(), logger)

	go func() {
		logger.Info("http listening", "addr", cfg.HTTP.Listen)
		if err := e.Start(cfg.HTTP.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	// --------------------
	// Shutdown
	// --------------------

	<-ctx.Done()
	logger.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}

	<-loopDone
	logger.Info("stopped", slog.String("device", cfg.Device.ID))
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
