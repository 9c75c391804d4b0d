package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/lixenwraith/runebeat/beat"
)

// Analyzer reduces the most recent tap window to one scalar feature per read
type Analyzer struct {
	tap    *Tap
	metric beat.Metric
	window int
}

// NewAnalyzer reads window samples from tap and reports metric
func NewAnalyzer(tap *Tap, metric beat.Metric, window int) *Analyzer {
	if window < 1 {
		window = 1
	}
	if window > tap.Size() {
		window = tap.Size()
	}
	return &Analyzer{tap: tap, metric: metric, window: window}
}

// Metric returns the feature this analyzer computes
func (a *Analyzer) Metric() beat.Metric { return a.metric }

// Sample returns the feature over the latest window; false until the
// tap has captured any audio
func (a *Analyzer) Sample() (float64, bool) {
	if a.tap.Written() == 0 {
		return 0, false
	}
	samples := a.tap.Samples(a.window)
	switch a.metric {
	case beat.MetricWaveform:
		return MeanAmplitude(samples), true
	default:
		return SpectralEnergy(samples), true
	}
}

// SpectralEnergy is sum |X[k]|^2 / N over the FFT of samples, which
// equals the sum of squared samples
func SpectralEnergy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	spectrum := fft.FFTReal(samples)
	var sum float64
	for _, c := range spectrum {
		m := cmplx.Abs(c)
		sum += m * m
	}
	return sum / float64(len(samples))
}

// MeanAmplitude is the mean absolute sample value
func MeanAmplitude(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += math.Abs(s)
	}
	return sum / float64(len(samples))
}
