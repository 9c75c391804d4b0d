package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/runebeat/constants"
)

// Track is a fully decoded audio file held in memory at the output rate
type Track struct {
	Path   string
	Name   string
	Format beep.Format
	buffer *beep.Buffer
}

// Len returns the track length in samples
func (t *Track) Len() int { return t.buffer.Len() }

// Duration returns the playing time of the track
func (t *Track) Duration() time.Duration {
	return t.Format.SampleRate.D(t.buffer.Len())
}

// Streamer returns a fresh seekable streamer over the whole track
func (t *Track) Streamer() beep.StreamSeeker {
	return t.buffer.Streamer(0, t.buffer.Len())
}

// NewTrack buffers s at format; used for generated audio and tests
func NewTrack(name string, format beep.Format, s beep.Streamer) *Track {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return &Track{Name: name, Path: name, Format: format, buffer: buf}
}

// SupportedExtensions lists the file extensions Decode accepts
var SupportedExtensions = []string{".wav", ".mp3", ".flac", ".ogg"}

// CheckTrack checks that path exists and has a supported extension without decoding it
func CheckTrack(path string) error {
	if path == "" {
		return ErrNoFile
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoFile, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SupportedExtensions, ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Decode reads a whole audio file into memory, resampled to rate
func Decode(path string, rate beep.SampleRate) (*Track, error) {
	return DecodeContext(context.Background(), path, rate)
}

// DecodeContext is Decode with cancellation between decoded chunks
func DecodeContext(ctx context.Context, path string, rate beep.SampleRate) (*Track, error) {
	if path == "" {
		return nil, ErrNoFile
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoFile, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer func() {
		_ = stream.Close()
		_ = f.Close()
	}()

	var src beep.Streamer = &ctxStreamer{ctx: ctx, s: stream}
	if format.SampleRate != rate {
		src = beep.Resample(constants.ResampleQuality, format.SampleRate, rate, src)
	}

	out := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	buf.Append(src)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadCanceled, path)
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return &Track{
		Path:   path,
		Name:   filepath.Base(path),
		Format: out,
		buffer: buf,
	}, nil
}

// ctxStreamer ends the wrapped stream once ctx is done
type ctxStreamer struct {
	ctx context.Context
	s   beep.Streamer
}

func (c *ctxStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.ctx.Err() != nil {
		return 0, false
	}
	return c.s.Stream(samples)
}

func (c *ctxStreamer) Err() error { return c.s.Err() }
