// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "parkwatch.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_FileOverDefaults(t *testing.T) {
	p := writeFile(t, `
device:
  id: PR42
poll:
  interval_ms: 2000
bays:
  - id: a
    distance: DistanceA
    infrared: D9
actuator:
  driver: modbus
  modbus:
    endpoint: 10.0.0.5:502
    unit_id: 2
    coil: 7
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "PR42", cfg.Device.ID)
	assert.Equal(t, "https://iot.roboninja.in/index.php?action", cfg.Device.BaseURL, "default kept")
	assert.Equal(t, 2000, cfg.Poll.IntervalMs)
	assert.Equal(t, 30.0, cfg.Poll.Threshold, "default kept")
	require.Len(t, cfg.Bays, 1)
	assert.Equal(t, "DistanceA", cfg.Bays[0].Distance)
	require.NotNil(t, cfg.Actuator.Modbus)
	assert.Equal(t, uint16(7), cfg.Actuator.Modbus.Coil)
	assert.Equal(t, "DistanceX1", cfg.Zone.Distance)
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeFile(t, "device: [unterminated")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBaseURL:    "http://sensors.local/api?action",
		EnvDeviceUID:  "PR77",
		EnvIntervalMs: "1500",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Equal(t, "http://sensors.local/api?action", cfg.Device.BaseURL)
	assert.Equal(t, "PR77", cfg.Device.ID)
	assert.Equal(t, 1500, cfg.Poll.IntervalMs)

	env[EnvIntervalMs] = "18446744073710"
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Error(t, Validate(&cfg), "env interval goes through the same bound")

	env[EnvIntervalMs] = "soon"
	assert.Error(t, applyEnv(&cfg, lookup))
}

func TestDeviceURLs(t *testing.T) {
	d := Default().Device

	assert.Equal(t,
		"https://iot.roboninja.in/index.php?action=read&UID=PR10&Distance1",
		d.ReadURL("Distance1"))
	assert.Equal(t,
		"https://iot.roboninja.in/index.php?action=write&UID=PR10&D1=1",
		d.WriteURL("D1", "1"))
}
