// internal/publish/mqtt.go
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/parkwatch/internal/poller"
)

// mqttClient is the subset of mqtt.Client used here.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTConfig selects the broker and topic prefix.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Timeout  time.Duration
}

// MQTT publishes the full report to "<topic>/report" and the zone state,
// retained, to "<topic>/zone/<id>".
type MQTT struct {
	cfg    MQTTConfig
	client mqttClient
	log    *slog.Logger
}

// NewMQTT connects to the broker and returns a publisher.
func NewMQTT(cfg MQTTConfig, log *slog.Logger) (*MQTT, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, errors.New("mqtt: broker must not be empty")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("mqtt: topic must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(cfg.Timeout)

	c := mqtt.NewClient(opts)
	tok := c.Connect()
	if !tok.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}

	return newMQTTWithClient(cfg, c, log), nil
}

func newMQTTWithClient(cfg MQTTConfig, c mqttClient, log *slog.Logger) *MQTT {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &MQTT{
		cfg:    cfg,
		client: c,
		log:    log.With(slog.String("component", "mqtt_publisher")),
	}
}

func (m *MQTT) Name() string { return "mqtt" }

// Publish implements poller.Sink.
func (m *MQTT) Publish(ctx context.Context, r poller.Report) error {
	payload, err := encode(r)
	if err != nil {
		return err
	}
	if err := m.send(ctx, m.cfg.Topic+"/report", false, payload); err != nil {
		return err
	}

	zone, err := json.Marshal(r.Zone)
	if err != nil {
		return fmt.Errorf("mqtt: encode zone: %w", err)
	}
	return m.send(ctx, m.cfg.Topic+"/zone/"+r.Zone.ID, true, zone)
}

func (m *MQTT) send(ctx context.Context, topic string, retained bool, payload []byte) error {
	tok := m.client.Publish(topic, m.cfg.QoS, retained, payload)

	timeout := m.cfg.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < timeout {
			timeout = d
		}
	}
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish to %s timed out", topic)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt: publish to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
