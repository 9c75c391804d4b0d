package beat

import (
	"time"
)

// Metric identifies the energy measure a detector threshold is calibrated against
type Metric int

const (
	MetricEnergy   Metric = iota // Spectral energy of the analysis window
	MetricWaveform               // Mean absolute waveform amplitude
)

// String returns the config name of the metric
func (m Metric) String() string {
	switch m {
	case MetricEnergy:
		return "energy"
	case MetricWaveform:
		return "waveform"
	default:
		return "unknown"
	}
}

// ParseMetric resolves a config name to a Metric
func ParseMetric(s string) (Metric, bool) {
	switch s {
	case "energy", "":
		return MetricEnergy, true
	case "waveform", "amplitude":
		return MetricWaveform, true
	default:
		return MetricEnergy, false
	}
}

// Calibration presets
const (
	EnergyThreshold   = 0.7
	WaveformThreshold = 0.3
	DefaultRefractory = 300 * time.Millisecond
)

// DetectorConfig pairs a metric with the threshold tuned for it
type DetectorConfig struct {
	Metric     Metric
	Threshold  float64
	Refractory time.Duration
}

// DefaultDetectorConfig returns the calibrated preset for the metric
func DefaultDetectorConfig(m Metric) DetectorConfig {
	cfg := DetectorConfig{Metric: m, Refractory: DefaultRefractory}
	switch m {
	case MetricWaveform:
		cfg.Threshold = WaveformThreshold
	default:
		cfg.Threshold = EnergyThreshold
	}
	return cfg
}

// Event is a detected beat
type Event struct {
	Time time.Time
}

// Detector turns a stream of energy samples into beat events using a threshold and a refractory period
type Detector struct {
	cfg      DetectorConfig
	lastBeat time.Time
}

// NewDetector creates a detector with the given calibration
func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{cfg: cfg}
}

// OnSample feeds one energy sample, returning a beat if one fires at now
// Zero lastBeat means no beat yet, so the first sample above threshold fires immediately
func (d *Detector) OnSample(energy float64, now time.Time) (Event, bool) {
	if energy <= d.cfg.Threshold {
		return Event{}, false
	}
	if !d.lastBeat.IsZero() && now.Sub(d.lastBeat) <= d.cfg.Refractory {
		return Event{}, false
	}
	d.lastBeat = now
	return Event{Time: now}, true
}

// LastBeat returns the time of the most recent beat, zero if none
func (d *Detector) LastBeat() time.Time {
	return d.lastBeat
}

// Config returns the active calibration
func (d *Detector) Config() DetectorConfig {
	return d.cfg
}

// Reset forgets the last beat
func (d *Detector) Reset() {
	d.lastBeat = time.Time{}
}
