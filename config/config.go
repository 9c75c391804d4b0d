// Package config defines game configuration structures and loading hooks.
//
// Layering (low -> high precedence): defaults from New, optional YAML file,
// RUNEBEAT_ environment variables. Nested keys use a double underscore in
// env names, e.g. RUNEBEAT_DETECTOR__THRESHOLD.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/runebeat/beat"
	"github.com/lixenwraith/runebeat/judge"
)

// Feedback patterns for key press particles
const (
	FeedbackBurst  = "burst"
	FeedbackGeyser = "geyser"
)

// Config contains process configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Detector  DetectorConfig  `koanf:"detector"`
	Tempo     TempoConfig     `koanf:"tempo"`
	Judge     JudgeConfig     `koanf:"judge"`
	Particles ParticlesConfig `koanf:"particles"`
	Audio     AudioConfig     `koanf:"audio"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LogConfig controls the log file and verbosity.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
	// File receives log output; the terminal is owned by the game screen.
	File string `koanf:"file"`
}

// DetectorConfig selects the energy metric and its calibration.
type DetectorConfig struct {
	// Metric is "energy" (spectral) or "waveform" (mean absolute amplitude).
	Metric string `koanf:"metric"`
	// Threshold of zero selects the preset for Metric.
	Threshold    float64 `koanf:"threshold"`
	RefractoryMS int     `koanf:"refractory_ms"`
}

// TempoConfig sizes the BPM window.
type TempoConfig struct {
	Window int `koanf:"window"`
}

// JudgeConfig sets the on-beat tolerance.
type JudgeConfig struct {
	WindowMS int `koanf:"window_ms"`
}

// ParticlesConfig holds the optional particle behaviors.
type ParticlesConfig struct {
	Bounce     bool    `koanf:"bounce"`
	Trail      bool    `koanf:"trail"`
	TrailAlpha float64 `koanf:"trail_alpha"`
	TrailFade  float64 `koanf:"trail_fade"`
	// Feedback is the key press spawn pattern: burst or geyser.
	Feedback string `koanf:"feedback"`
}

// AudioConfig controls playback and analysis.
type AudioConfig struct {
	// Enabled false keeps analysis running on a silent output.
	Enabled      bool    `koanf:"enabled"`
	SampleRate   int     `koanf:"sample_rate"`
	MasterVolume float64 `koanf:"master_volume"`
	// Effects plays short tones on key presses.
	Effects bool `koanf:"effects"`
	// AnalysisWindow is the number of samples per energy reading.
	AnalysisWindow int `koanf:"analysis_window"`
}

// MetricsConfig configures the optional Prometheus listener.
type MetricsConfig struct {
	// Addr such as ":9090"; empty disables the listener.
	Addr string `koanf:"addr"`
}

// New creates a Config with defaults. Context is accepted first to keep the
// signature aligned with Load.
func New(_ context.Context) *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			File:  "runebeat.log",
		},
		Detector: DetectorConfig{
			Metric:       beat.MetricEnergy.String(),
			Threshold:    0,
			RefractoryMS: int(beat.DefaultRefractory / time.Millisecond),
		},
		Tempo: TempoConfig{
			Window: beat.DefaultTempoWindow,
		},
		Judge: JudgeConfig{
			WindowMS: int(judge.DefaultWindow / time.Millisecond),
		},
		Particles: ParticlesConfig{
			Bounce:     false,
			Trail:      true,
			TrailAlpha: 0.08,
			TrailFade:  0,
			Feedback:   FeedbackBurst,
		},
		Audio: AudioConfig{
			Enabled:        true,
			SampleRate:     44100,
			MasterVolume:   1.0,
			Effects:        false,
			AnalysisWindow: 512,
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, ok := beat.ParseMetric(c.Detector.Metric); !ok {
		return fmt.Errorf("%w: unknown detector metric %q", ErrInvalidConfig, c.Detector.Metric)
	}
	if c.Detector.Threshold < 0 {
		return fmt.Errorf("%w: detector threshold must not be negative", ErrInvalidConfig)
	}
	if c.Detector.RefractoryMS < 0 {
		return fmt.Errorf("%w: detector refractory_ms must not be negative", ErrInvalidConfig)
	}
	if c.Tempo.Window < 2 {
		return fmt.Errorf("%w: tempo window must be at least 2", ErrInvalidConfig)
	}
	if c.Judge.WindowMS <= 0 {
		return fmt.Errorf("%w: judge window_ms must be positive", ErrInvalidConfig)
	}
	if c.Particles.Feedback != FeedbackBurst && c.Particles.Feedback != FeedbackGeyser {
		return fmt.Errorf("%w: particles feedback must be %q or %q", ErrInvalidConfig, FeedbackBurst, FeedbackGeyser)
	}
	if c.Particles.TrailAlpha < 0 || c.Particles.TrailAlpha > 1 {
		return fmt.Errorf("%w: particles trail_alpha must be in [0,1]", ErrInvalidConfig)
	}
	if c.Particles.TrailFade < 0 || c.Particles.TrailFade > 1 {
		return fmt.Errorf("%w: particles trail_fade must be in [0,1]", ErrInvalidConfig)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio sample_rate must be positive", ErrInvalidConfig)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: audio master_volume must be in [0,1]", ErrInvalidConfig)
	}
	if c.Audio.AnalysisWindow < 16 {
		return fmt.Errorf("%w: audio analysis_window must be at least 16", ErrInvalidConfig)
	}
	return nil
}

// BeatDetector resolves the detector calibration, applying the metric preset when no threshold is set.
func (c *Config) BeatDetector() beat.DetectorConfig {
	metric, _ := beat.ParseMetric(c.Detector.Metric)
	dc := beat.DefaultDetectorConfig(metric)
	if c.Detector.Threshold > 0 {
		dc.Threshold = c.Detector.Threshold
	}
	dc.Refractory = time.Duration(c.Detector.RefractoryMS) * time.Millisecond
	return dc
}

// JudgeWindow returns the on-beat tolerance as a duration.
func (c *Config) JudgeWindow() time.Duration {
	return time.Duration(c.Judge.WindowMS) * time.Millisecond
}
