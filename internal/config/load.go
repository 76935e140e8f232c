// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvBaseURL    = "IOT_BASE_URL"
	EnvDeviceUID  = "DEVICE_UID"
	EnvIntervalMs = "POLL_INTERVAL_MS"
)

// Default returns the configuration of the stock three-lot installation.
func Default() Config {
	return Config{
		Device: DeviceConfig{
			BaseURL:       "https://iot.roboninja.in/index.php?action",
			ID:            "PR10",
			TimeoutMs:     3000,
			ReadTemplate:  "{base}=read&UID={uid}&{param}",
			WriteTemplate: "{base}=write&UID={uid}&{param}={level}",
		},
		Poll: PollConfig{
			IntervalMs: 5000,
			Threshold:  30,
		},
		Bays: []BayConfig{
			{ID: "bay1", Name: "Lot 1", Distance: "Distance1", Infrared: "D7"},
			{ID: "bay2", Name: "Lot 2", Distance: "Distance2", Infrared: "D2"},
			{ID: "bay3", Name: "Lot 3", Distance: "Distance3", Infrared: "D3"},
		},
		Zone: ZoneConfig{
			ID:       "nopark",
			Name:     "No Parking",
			Distance: "DistanceX1",
			Infrared: "D4",
		},
		Actuator: ActuatorConfig{
			Driver: DriverHTTP,
			Param:  "D1",
		},
		Mirror: MirrorConfig{
			UnitID:    1,
			TimeoutMs: 1000,
		},
		Publish: PublishConfig{
			Kafka: KafkaConfig{Topic: "parkwatch.reports"},
			MQTT: MQTTConfig{
				ClientID:  "parkwatch",
				Topic:     "parkwatch/reports",
				TimeoutMs: 3000,
			},
		},
		Insights: InsightsConfig{TimeoutMs: 3000},
		HTTP:     HTTPConfig{Listen: ":8080"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok {
		cfg.Device.BaseURL = v
	}
	if v, ok := lookup(EnvDeviceUID); ok {
		cfg.Device.ID = v
	}
	if v, ok := lookup(EnvIntervalMs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvIntervalMs, v, err)
		}
		cfg.Poll.IntervalMs = n
	}
	return nil
}
