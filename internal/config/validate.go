// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tamzrod/parkwatch/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// REMOTE DEVICE (fail fast: nothing works without these)
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.Device.BaseURL) == "" {
		return errors.New("device.base_url is required")
	}
	u, err := url.Parse(strings.TrimSpace(cfg.Device.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("device.base_url %q is not an absolute url", cfg.Device.BaseURL)
	}
	if strings.TrimSpace(cfg.Device.ID) == "" {
		return errors.New("device.id is required")
	}
	if cfg.Device.TimeoutMs < 0 {
		return fmt.Errorf("device.timeout_ms must be >= 0, got %d", cfg.Device.TimeoutMs)
	}
	if !strings.Contains(cfg.Device.ReadTemplate, "{param}") {
		return errors.New("device.read_template must contain {param}")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs <= 0 || cfg.Poll.IntervalMs > MaxIntervalMs {
		return fmt.Errorf("poll.interval_ms must be in 1..%d, got %d", MaxIntervalMs, cfg.Poll.IntervalMs)
	}
	if cfg.Poll.Threshold <= 0 {
		return fmt.Errorf("poll.threshold must be > 0, got %v", cfg.Poll.Threshold)
	}

	// ------------------------------------------------------------
	// LAYOUT
	// ------------------------------------------------------------

	if len(cfg.Bays) == 0 {
		return errors.New("at least one bay is required")
	}

	ids := make(map[string]struct{})
	for i, b := range cfg.Bays {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			return fmt.Errorf("bays[%d]: id is required", i)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("bays[%d]: duplicate id %q", i, id)
		}
		ids[id] = struct{}{}

		if strings.TrimSpace(b.Distance) == "" || strings.TrimSpace(b.Infrared) == "" {
			return fmt.Errorf("bay %q: distance and infrared params are required", id)
		}
	}

	zid := strings.TrimSpace(cfg.Zone.ID)
	if zid == "" {
		return errors.New("zone.id is required")
	}
	if _, dup := ids[zid]; dup {
		return fmt.Errorf("zone.id %q collides with a bay id", zid)
	}
	if strings.TrimSpace(cfg.Zone.Distance) == "" || strings.TrimSpace(cfg.Zone.Infrared) == "" {
		return errors.New("zone: distance and infrared params are required")
	}

	// ------------------------------------------------------------
	// ACTUATOR
	// ------------------------------------------------------------

	switch strings.ToLower(strings.TrimSpace(cfg.Actuator.Driver)) {
	case DriverHTTP:
		if strings.TrimSpace(cfg.Actuator.Param) == "" {
			return errors.New("actuator.param is required for the http driver")
		}
		if !strings.Contains(cfg.Device.WriteTemplate, "{param}") ||
			!strings.Contains(cfg.Device.WriteTemplate, "{level}") {
			return errors.New("device.write_template must contain {param} and {level}")
		}
	case DriverModbus:
		if cfg.Actuator.Modbus == nil || strings.TrimSpace(cfg.Actuator.Modbus.Endpoint) == "" {
			return errors.New("actuator.modbus.endpoint is required for the modbus driver")
		}
	case DriverGPIO:
		if cfg.Actuator.GPIO == nil || strings.TrimSpace(cfg.Actuator.GPIO.Pin) == "" {
			return errors.New("actuator.gpio.pin is required for the gpio driver")
		}
	default:
		return fmt.Errorf("actuator.driver %q is not one of http, modbus, gpio", cfg.Actuator.Driver)
	}

	// ------------------------------------------------------------
	// OPTIONAL SINKS
	// ------------------------------------------------------------

	if cfg.Mirror.Enabled() && len(cfg.Bays) > status.MaxBays {
		return fmt.Errorf(
			"mirror: %d bays configured, status block holds at most %d",
			len(cfg.Bays),
			status.MaxBays,
		)
	}

	if cfg.Publish.Kafka.Enabled() && strings.TrimSpace(cfg.Publish.Kafka.Topic) == "" {
		return errors.New("publish.kafka.topic is required when brokers are set")
	}

	if cfg.Publish.MQTT.Enabled() {
		if cfg.Publish.MQTT.QoS < 0 || cfg.Publish.MQTT.QoS > 2 {
			return fmt.Errorf("publish.mqtt.qos must be 0, 1 or 2, got %d", cfg.Publish.MQTT.QoS)
		}
		if strings.TrimSpace(cfg.Publish.MQTT.Topic) == "" {
			return errors.New("publish.mqtt.topic is required when broker is set")
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", cfg.Log.Format)
	}

	return nil
}
