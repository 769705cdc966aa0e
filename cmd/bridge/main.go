// cmd/bridge/main.go
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/invt-mqtt-bridge/internal/config"
	"github.com/tamzrod/invt-mqtt-bridge/internal/metrics"
	"github.com/tamzrod/invt-mqtt-bridge/internal/poller"
	"github.com/tamzrod/invt-mqtt-bridge/internal/publisher"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
	"github.com/tamzrod/invt-mqtt-bridge/internal/status"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// --------------------
	// Environment (.env is optional)
	// --------------------

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf(".env load failed: %v", err)
	}

	// --------------------
	// Load + validate config
	// --------------------

	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		log.Fatalf("config env failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	level, _ := log.ParseLevel(cfg.Log.Level)
	log.SetLevel(level)

	// --------------------
	// Sensor table
	// --------------------

	registry := sensor.Default()
	if cfg.SensorsFile != "" {
		registry, err = sensor.LoadFile(cfg.SensorsFile)
		if err != nil {
			log.Fatalf("sensor table load failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Pipeline
	// --------------------

	// ---- poller ----
	p, closePoller, err := poller.Build(cfg, registry)
	if err != nil {
		log.Fatalf("poller build failed (endpoint=%s): %v", cfg.Source.Endpoint, err)
	}
	defer closePoller()

	// ---- publisher ----
	transport, closeTransport, err := publisher.BuildTransport(cfg)
	if err != nil {
		log.Fatalf("mqtt connect failed (broker=%s): %v", cfg.MQTT.Broker, err)
	}
	defer closeTransport()

	pub := publisher.New(publisher.BuildPlan(cfg), transport)
	if err := pub.Announce(registry); err != nil {
		log.Errorf("discovery publish failed: %v", err)
	}

	// ---- metrics (optional) ----
	var m *metrics.Metrics
	if cfg.Metrics.ListenAddress != "" {
		reg := prometheus.NewRegistry()
		m, err = metrics.New(reg, registry)
		if err != nil {
			log.Fatalf("metrics setup failed: %v", err)
		}
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.ListenAddress, reg); err != nil {
				log.Errorf("metrics server failed: %v", err)
			}
		}()
	}

	log.WithFields(log.Fields{
		"endpoint": cfg.Source.Endpoint,
		"unit":     cfg.Source.UnitID,
		"sensors":  registry.Len(),
		"interval": cfg.Poll.IntervalSeconds,
		"topic":    cfg.MQTT.StateTopic,
	}).Info("bridge started")

	p.Run(ctx, func(snap poller.Snapshot) {
		if m != nil {
			m.Observe(snap)
		}
		if err := pub.Publish(snap); err != nil {
			log.Errorf("publish failed: %v", err)
		}

		fields := log.Fields{
			"ok":       len(snap.Readings) - snap.Failed(),
			"failed":   snap.Failed(),
			"duration": snap.Duration.Round(time.Millisecond),
		}
		if snap.Failed() == len(snap.Readings) {
			log.WithFields(fields).Warn("poll cycle: no sensor answered")
			return
		}
		log.WithFields(fields).Info("poll cycle")
	})

	// --------------------
	// Shutdown
	// --------------------

	if err := pub.PublishAvailability(status.PayloadOffline); err != nil {
		log.Warnf("offline publish failed: %v", err)
	}
	log.Info("bridge stopped")
}
