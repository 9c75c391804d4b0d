package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// constStreamer emits n frames of v on both channels
type constStreamer struct {
	v float64
	n int
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.n <= 0 {
		return 0, false
	}
	k := min(len(samples), c.n)
	for i := range k {
		samples[i] = [2]float64{c.v, c.v}
	}
	c.n -= k
	return k, true
}

func (c *constStreamer) Err() error { return nil }

func constTrack(v float64, n int) *Track {
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	return NewTrack("const", format, &constStreamer{v: v, n: n})
}

// writeSineWAV writes a 440Hz tone of n frames at rate to a temp file
func writeSineWAV(t *testing.T, rate beep.SampleRate, n int) string {
	t.Helper()
	sine, err := generators.SineTone(rate, 440)
	if err != nil {
		t.Fatalf("SineTone: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(n, sine), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
	return path
}
