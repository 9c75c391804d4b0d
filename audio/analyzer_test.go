package audio

import (
	"math"
	"testing"

	"github.com/lixenwraith/runebeat/beat"
)

func TestTapCapturesMonoMix(t *testing.T) {
	tap := NewTap(8)
	tap.SetSource(&constStreamer{v: 0.5, n: 100})

	samples := make([][2]float64, 5)
	n, ok := tap.Stream(samples)
	if n != 5 || !ok {
		t.Fatalf("Stream() = %d, %v; want 5, true", n, ok)
	}

	got := tap.Samples(8)
	want := []float64{0, 0, 0, 0.5, 0.5, 0.5, 0.5, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if tap.Written() != 5 {
		t.Errorf("Written() = %d, want 5", tap.Written())
	}

	tap.Reset()
	if tap.Written() != 0 || tap.Samples(1)[0] != 0 {
		t.Error("Reset did not clear the ring")
	}
}

func TestTapWithoutSource(t *testing.T) {
	tap := NewTap(4)
	if n, ok := tap.Stream(make([][2]float64, 4)); n != 0 || ok {
		t.Errorf("Stream() = %d, %v; want 0, false", n, ok)
	}
	if tap.Err() != nil {
		t.Errorf("Err() = %v, want nil", tap.Err())
	}
}

func TestAnalyzerMetrics(t *testing.T) {
	tests := []struct {
		name   string
		metric beat.Metric
		value  float64
		want   float64
	}{
		{"energy of constant", beat.MetricEnergy, 0.5, 512 * 0.25},
		{"energy of silence", beat.MetricEnergy, 0, 0},
		{"waveform of constant", beat.MetricWaveform, -0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tap := NewTap(1024)
			a := NewAnalyzer(tap, tt.metric, 512)

			if _, ok := a.Sample(); ok {
				t.Fatal("Sample() available before any audio")
			}

			tap.SetSource(&constStreamer{v: tt.value, n: 2048})
			tap.Stream(make([][2]float64, 1024))

			got, ok := a.Sample()
			if !ok {
				t.Fatal("Sample() unavailable after streaming")
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Sample() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpectralEnergyMatchesTimeDomain(t *testing.T) {
	samples := make([]float64, 256)
	var direct float64
	for i := range samples {
		samples[i] = math.Sin(float64(i)*0.3) * 0.4
		direct += samples[i] * samples[i]
	}
	if got := SpectralEnergy(samples); math.Abs(got-direct) > 1e-9 {
		t.Errorf("SpectralEnergy() = %v, want %v", got, direct)
	}
	if SpectralEnergy(nil) != 0 || MeanAmplitude(nil) != 0 {
		t.Error("empty input should give 0")
	}
}

func TestAnalyzerWindowClamped(t *testing.T) {
	a := NewAnalyzer(NewTap(64), beat.MetricEnergy, 512)
	if a.window != 64 {
		t.Errorf("window = %d, want 64", a.window)
	}
	if a.Metric() != beat.MetricEnergy {
		t.Errorf("Metric() = %v, want energy", a.Metric())
	}
}
