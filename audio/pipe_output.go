package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sync"

	"github.com/gopxl/beep"
)

// PipeOutput mixes like the speaker but writes s16le stereo PCM to an
// external backend's stdin. After a write failure it keeps consuming
// samples silently so playback and analysis stay on time.
type PipeOutput struct {
	mixOutput

	backend *Backend
	w       io.WriteCloser
	cmd     *exec.Cmd
	pcm     []byte

	failed    bool
	errCh     chan error
	closeOnce sync.Once
}

// NewPipeOutput writes PCM to w
func NewPipeOutput(rate beep.SampleRate, w io.WriteCloser) *PipeOutput {
	return &PipeOutput{
		mixOutput: mixOutput{rate: rate},
		w:         w,
		errCh:     make(chan error, 1),
	}
}

// OpenPipeOutput starts the first detected backend and pipes PCM into it
func OpenPipeOutput(rate beep.SampleRate) (*PipeOutput, error) {
	backend, err := DetectBackend(rate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrOutput, backend.Name, err)
		}
		o := NewPipeOutput(rate, f)
		o.backend = backend
		return o, nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOutput, backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOutput, backend.Name, err)
	}

	o := NewPipeOutput(rate, stdin)
	o.backend = backend
	o.cmd = cmd
	return o, nil
}

// Backend returns the running backend, nil for a plain writer
func (o *PipeOutput) Backend() *Backend { return o.backend }

// Errors delivers the first pipe failure
func (o *PipeOutput) Errors() <-chan error { return o.errCh }

// Pull mixes n samples and writes them to the pipe
func (o *PipeOutput) Pull(n int) error {
	samples := o.render(n)
	if o.failed {
		return nil
	}

	size := n * 4
	if cap(o.pcm) < size {
		o.pcm = make([]byte, size)
	}
	pcm := o.pcm[:size]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(toInt16(s[0])))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(toInt16(s[1])))
	}

	if _, err := o.w.Write(pcm); err != nil {
		o.failed = true
		err = fmt.Errorf("%w: %w", ErrPipeClosed, err)
		select {
		case o.errCh <- err:
		default:
		}
		return err
	}
	return nil
}

// Run writes PCM at the output rate until ctx is done
func (o *PipeOutput) Run(ctx context.Context) {
	o.pace(ctx, func(n int) { _ = o.Pull(n) })
}

// Close closes the pipe and stops the backend process
func (o *PipeOutput) Close() {
	o.closeOnce.Do(func() {
		_ = o.w.Close()
		if o.cmd != nil && o.cmd.Process != nil {
			_ = o.cmd.Process.Kill()
			_ = o.cmd.Wait()
		}
	})
}

// toInt16 hard-clips to [-1, 1] and scales to 16-bit
func toInt16(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
