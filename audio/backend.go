package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/gopxl/beep"
)

// BackendType identifies an external PCM sink
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// Backend describes a command (or device file for OSS) that accepts raw
// s16le stereo PCM on stdin
type Backend struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Replaced in tests
var (
	lookPath = exec.LookPath
	statFile = os.Stat
	goos     = runtime.GOOS
)

// DetectBackend picks the first available PCM sink for rate
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectBackend(rate beep.SampleRate) (*Backend, error) {
	r := strconv.Itoa(int(rate))

	candidates := []Backend{
		{BackendPulse, "pacat", "pacat", []string{
			"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback",
		}},
		{BackendPipeWire, "pw-cat", "pw-cat", []string{
			"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-",
		}},
		{BackendALSA, "aplay", "aplay", []string{
			"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q",
		}},
		{BackendSoX, "sox", "play", []string{
			"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q",
		}},
		{BackendFFplay, "ffplay", "ffplay", []string{
			"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
		}},
	}

	for _, c := range candidates {
		if path, err := lookPath(c.Path); err == nil {
			b := c
			b.Path = path
			return &b, nil
		}
	}

	// FreeBSD OSS takes PCM written straight to the device
	if goos == "freebsd" {
		if _, err := statFile("/dev/dsp"); err == nil {
			return &Backend{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
