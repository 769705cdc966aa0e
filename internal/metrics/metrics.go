// internal/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/invt-mqtt-bridge/internal/poller"
	pmodbus "github.com/tamzrod/invt-mqtt-bridge/internal/poller/modbus"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
)

// Metrics mirrors every poll cycle into prometheus collectors.
type Metrics struct {
	cycles   prometheus.Counter
	duration prometheus.Histogram
	failures *prometheus.CounterVec
	value    *prometheus.GaugeVec
	up       prometheus.Gauge

	units map[string]string
}

// New registers the bridge collectors on reg.
// registry supplies the unit label for each sensor.
func New(reg prometheus.Registerer, registry *sensor.Registry) (*Metrics, error) {
	m := &Metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invt",
			Name:      "poll_cycles_total",
			Help:      "Completed poll cycles.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "invt",
			Name:      "poll_cycle_duration_seconds",
			Help:      "Wall time of one poll cycle.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invt",
			Name:      "sensor_failures_total",
			Help:      "Sensor reads that produced no value.",
		}, []string{"sensor", "reason"}),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "invt",
			Name:      "sensor_value",
			Help:      "Last decoded sensor value.",
		}, []string{"sensor", "unit"}),
		up: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "invt",
			Name:      "up",
			Help:      "1 when the last cycle produced at least one value.",
		}),
		units: make(map[string]string),
	}

	if registry != nil {
		for _, d := range registry.Descriptors() {
			m.units[d.ID] = d.Unit
		}
	}

	for _, c := range []prometheus.Collector{m.cycles, m.duration, m.failures, m.value, m.up} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Observe records one cycle.
// A failed sensor keeps its last gauge value; the failure counter moves.
func (m *Metrics) Observe(snap poller.Snapshot) {
	m.cycles.Inc()
	m.duration.Observe(snap.Duration.Seconds())

	ok := 0
	for _, r := range snap.Readings {
		if !r.OK() {
			m.failures.WithLabelValues(r.ID, reason(r.Err)).Inc()
			continue
		}
		ok++
		m.value.WithLabelValues(r.ID, m.units[r.ID]).Set(r.Value)
	}

	if ok > 0 {
		m.up.Set(1)
	} else {
		m.up.Set(0)
	}
}

// reason narrows a sensor failure to a low-cardinality label.
func reason(err error) string {
	var re *pmodbus.ReadError
	if errors.As(err, &re) {
		return re.Reason()
	}
	var se *poller.SensorError
	if errors.As(err, &se) {
		return se.Kind.String()
	}
	return "unknown"
}

// Serve exposes g on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("metrics server shutdown")
		}
	}()

	log.WithField("addr", addr).Info("metrics listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
