// internal/config/config.go
package config

import "strings"

type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Poll     PollConfig     `yaml:"poll"`
	Bays     []BayConfig    `yaml:"bays"`
	Zone     ZoneConfig     `yaml:"zone"`
	Actuator ActuatorConfig `yaml:"actuator"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	Publish  PublishConfig  `yaml:"publish"`
	Insights InsightsConfig `yaml:"insights"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
}

// ---- REMOTE DEVICE ----

type DeviceConfig struct {
	BaseURL   string `yaml:"base_url"`
	ID        string `yaml:"id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Templates accept {base}, {uid}, {param} and, for writes, {level}.
	ReadTemplate  string `yaml:"read_template"`
	WriteTemplate string `yaml:"write_template"`
}

// ReadURL expands the read template for one remote parameter.
func (d DeviceConfig) ReadURL(param string) string {
	return strings.NewReplacer(
		"{base}", d.BaseURL,
		"{uid}", d.ID,
		"{param}", param,
	).Replace(d.ReadTemplate)
}

// WriteURL expands the write template for one parameter and level.
func (d DeviceConfig) WriteURL(param, level string) string {
	return strings.NewReplacer(
		"{base}", d.BaseURL,
		"{uid}", d.ID,
		"{param}", param,
		"{level}", level,
	).Replace(d.WriteTemplate)
}

// ---- POLL ----

// MaxIntervalMs caps poll.interval_ms at one day.
const MaxIntervalMs = 24 * 60 * 60 * 1000

type PollConfig struct {
	IntervalMs int     `yaml:"interval_ms"`
	Threshold  float64 `yaml:"threshold"`
}

// ---- LAYOUT ----

// BayConfig holds the remote parameters of one bay's sensor pair.
type BayConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Distance string `yaml:"distance"`
	Infrared string `yaml:"infrared"`
}

type ZoneConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Distance string `yaml:"distance"`
	Infrared string `yaml:"infrared"`
}

// ---- ACTUATOR ----

const (
	DriverHTTP   = "http"
	DriverModbus = "modbus"
	DriverGPIO   = "gpio"
)

type ActuatorConfig struct {
	Driver string `yaml:"driver"`
	Param  string `yaml:"param"` // remote output for the http driver

	Modbus *ModbusActuatorConfig `yaml:"modbus"`
	GPIO   *GPIOConfig           `yaml:"gpio"`
}

type ModbusActuatorConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Coil      uint16 `yaml:"coil"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type GPIOConfig struct {
	Pin string `yaml:"pin"`
}

// ---- STATUS MIRROR (optional) ----

type MirrorConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (m MirrorConfig) Enabled() bool { return m.Endpoint != "" }

// ---- PUBLISHING (optional) ----

type PublishConfig struct {
	Kafka KafkaConfig `yaml:"kafka"`
	MQTT  MQTTConfig  `yaml:"mqtt"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type MQTTConfig struct {
	Broker    string `yaml:"broker"`
	ClientID  string `yaml:"client_id"`
	Topic     string `yaml:"topic"`
	QoS       int    `yaml:"qos"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (m MQTTConfig) Enabled() bool { return m.Broker != "" }

// ---- INSIGHTS (optional, read-only) ----

type InsightsConfig struct {
	HistoryURL string `yaml:"history_url"`
	PredictURL string `yaml:"predict_url"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- SERVICE ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
