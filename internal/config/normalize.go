// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Device.BaseURL = strings.TrimSpace(cfg.Device.BaseURL)
	cfg.Device.ID = strings.TrimSpace(cfg.Device.ID)

	for i := range cfg.Bays {
		b := &cfg.Bays[i]
		b.ID = strings.TrimSpace(b.ID)
		b.Distance = strings.TrimSpace(b.Distance)
		b.Infrared = strings.TrimSpace(b.Infrared)

		// Display name falls back to the id.
		if strings.TrimSpace(b.Name) == "" {
			b.Name = b.ID
		}
	}

	cfg.Zone.ID = strings.TrimSpace(cfg.Zone.ID)
	cfg.Zone.Distance = strings.TrimSpace(cfg.Zone.Distance)
	cfg.Zone.Infrared = strings.TrimSpace(cfg.Zone.Infrared)
	if strings.TrimSpace(cfg.Zone.Name) == "" {
		cfg.Zone.Name = cfg.Zone.ID
	}

	cfg.Actuator.Driver = strings.ToLower(strings.TrimSpace(cfg.Actuator.Driver))
	cfg.Actuator.Param = strings.TrimSpace(cfg.Actuator.Param)

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
