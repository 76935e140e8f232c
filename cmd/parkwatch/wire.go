// cmd/parkwatch/wire.go
package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/actuator/gpio"
	"github.com/tamzrod/parkwatch/internal/config"
	"github.com/tamzrod/parkwatch/internal/mirror"
	"github.com/tamzrod/parkwatch/internal/modbus"
	"github.com/tamzrod/parkwatch/internal/poller"
	"github.com/tamzrod/parkwatch/internal/publish"
)

// buildDriver selects the actuator driver named in config.
// The returned close func is always non-nil.
func buildDriver(cfg config.Config, hc *http.Client) (actuator.Driver, func(), error) {
	noop := func() {}

	switch cfg.Actuator.Driver {
	case config.DriverHTTP:
		d, err := actuator.NewRemoteDriver(actuator.RemoteConfig{
			URL: func(level string) string {
				return cfg.Device.WriteURL(cfg.Actuator.Param, level)
			},
			Timeout: ms(cfg.Device.TimeoutMs),
		}, hc)
		return d, noop, err

	case config.DriverModbus:
		mc := cfg.Actuator.Modbus
		cli, err := modbus.NewEndpointClient(modbus.Config{
			Endpoint: mc.Endpoint,
			Timeout:  ms(mc.TimeoutMs),
		})
		if err != nil {
			return nil, noop, err
		}
		d, err := actuator.NewCoilDriver(cli, mc.UnitID, mc.Coil)
		if err != nil {
			_ = cli.Close()
			return nil, noop, err
		}
		return d, func() { _ = cli.Close() }, nil

	case config.DriverGPIO:
		d, err := gpio.New(cfg.Actuator.GPIO.Pin)
		return d, noop, err

	default:
		return nil, noop, fmt.Errorf("unknown driver %q", cfg.Actuator.Driver)
	}
}

// buildSinks creates the optional report sinks in a fixed order:
// mirror, kafka, mqtt.
func buildSinks(cfg config.Config, log *slog.Logger) ([]poller.Sink, func(), error) {
	var (
		sinks   []poller.Sink
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Mirror.Enabled() {
		cli, err := modbus.NewEndpointClient(modbus.Config{
			Endpoint: cfg.Mirror.Endpoint,
			Timeout:  ms(cfg.Mirror.TimeoutMs),
		})
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("mirror: %w", err)
		}
		closers = append(closers, func() { _ = cli.Close() })

		m, err := mirror.New(mirror.Config{UnitID: cfg.Mirror.UnitID, BaseSlot: cfg.Mirror.BaseSlot}, cli)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		sinks = append(sinks, m)
	}

	if cfg.Publish.Kafka.Enabled() {
		k, err := publish.NewKafka(publish.KafkaConfig{
			Brokers: cfg.Publish.Kafka.Brokers,
			Topic:   cfg.Publish.Kafka.Topic,
		}, log)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = k.Close() })
		sinks = append(sinks, k)
	}

	if cfg.Publish.MQTT.Enabled() {
		mc := cfg.Publish.MQTT
		q, err := publish.NewMQTT(publish.MQTTConfig{
			Broker:   mc.Broker,
			ClientID: mc.ClientID,
			Topic:    mc.Topic,
			QoS:      byte(mc.QoS),
			Timeout:  ms(mc.TimeoutMs),
		}, log)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = q.Close() })
		sinks = append(sinks, q)
	}

	for _, s := range sinks {
		log.Info("sink enabled", "sink", s.Name())
	}
	return sinks, closeAll, nil
}
