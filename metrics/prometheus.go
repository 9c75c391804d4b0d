// Package metrics exposes game telemetry as Prometheus metrics.
//
// A nil *Manager is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout   = 2 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Hit quality label values
const (
	QualityOnBeat  = "on_beat"
	QualityOffBeat = "off_beat"
)

// Load outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Manager owns the game metrics and their registry.
type Manager struct {
	namespace   string
	subsystem   string
	constLabels map[string]string
	registry    *prometheus.Registry

	beatsDetected prometheus.Counter
	hits          *prometheus.CounterVec
	score         prometheus.Counter
	loads         *prometheus.CounterVec
	resets        prometheus.Counter

	bpm           prometheus.Gauge
	energy        prometheus.Gauge
	particlesLive prometheus.Gauge
	ringsLive     prometheus.Gauge
	accuracy      prometheus.Gauge

	frameDuration prometheus.Histogram
}

// NewManager creates a metrics manager on its own registry by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "runebeat",
		subsystem: "game",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}

	m.beatsDetected = counter("beats_detected_total", "Total number of beats detected in the playing track")
	m.score = counter("score_points_total", "Total points awarded for key presses")
	m.resets = counter("resets_total", "Total number of session resets")
	m.hits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: "hits_total",
		Help: "Total number of judged key presses by quality", ConstLabels: m.constLabels,
	}, []string{"quality"})
	m.loads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: "loads_total",
		Help: "Total number of track loads by outcome", ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.bpm = gauge("bpm", "Current tempo estimate in beats per minute, 0 when undefined")
	m.energy = gauge("energy", "Latest per-frame audio feature value")
	m.particlesLive = gauge("particles_live", "Number of live particles")
	m.ringsLive = gauge("rings_live", "Number of visible beat rings")
	m.accuracy = gauge("accuracy_percent", "Hit accuracy rounded to one decimal")

	m.frameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: "frame_duration_seconds",
		Help:        "Time spent updating and drawing one frame",
		Buckets:     []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.032, 0.064},
		ConstLabels: m.constLabels,
	})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordBeat counts a detected beat.
func (m *Manager) RecordBeat() {
	if m == nil {
		return
	}
	m.beatsDetected.Inc()
}

// RecordHit counts a judged press and its points.
func (m *Manager) RecordHit(onBeat bool, points int, accuracy float64) {
	if m == nil {
		return
	}
	quality := QualityOffBeat
	if onBeat {
		quality = QualityOnBeat
	}
	m.hits.WithLabelValues(quality).Inc()
	m.score.Add(float64(points))
	m.accuracy.Set(accuracy)
}

// RecordLoad counts a finished load by outcome.
func (m *Manager) RecordLoad(outcome string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
}

// RecordReset counts a session reset and zeroes the live gauges.
func (m *Manager) RecordReset() {
	if m == nil {
		return
	}
	m.resets.Inc()
	m.bpm.Set(0)
	m.energy.Set(0)
	m.particlesLive.Set(0)
	m.ringsLive.Set(0)
	m.accuracy.Set(0)
}

// ObserveFrame updates the per-frame gauges.
func (m *Manager) ObserveFrame(energy float64, bpm, particles, rings int, took time.Duration) {
	if m == nil {
		return
	}
	m.energy.Set(energy)
	m.bpm.Set(float64(bpm))
	m.particlesLive.Set(float64(particles))
	m.ringsLive.Set(float64(rings))
	m.frameDuration.Observe(took.Seconds())
}

// Handler returns an HTTP handler exposing the registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	return nil
}
