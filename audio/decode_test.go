package audio

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeWAV(t *testing.T) {
	path := writeSineWAV(t, 44100, 4410)

	track, err := Decode(path, 44100)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if track.Len() != 4410 {
		t.Errorf("Len() = %d, want 4410", track.Len())
	}
	if track.Name != "tone.wav" {
		t.Errorf("Name = %q, want tone.wav", track.Name)
	}
	if track.Format.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", track.Format.SampleRate)
	}
}

func TestDecodeResamples(t *testing.T) {
	path := writeSineWAV(t, 22050, 2205)

	track, err := Decode(path, 44100)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if diff := math.Abs(float64(track.Len() - 4410)); diff > 16 {
		t.Errorf("Len() = %d, want about 4410", track.Len())
	}
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	badWAV := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(badWAV, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrNoFile},
		{"missing file", filepath.Join(dir, "missing.mp3"), ErrNoFile},
		{"unsupported extension", textFile, ErrUnsupportedFormat},
		{"corrupt wav", badWAV, ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.path, 44100)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}

func TestDecodeContextCanceled(t *testing.T) {
	path := writeSineWAV(t, 44100, 4410)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DecodeContext(ctx, path, 44100); !errors.Is(err, ErrLoadCanceled) {
		t.Errorf("DecodeContext error = %v, want %v", err, ErrLoadCanceled)
	}
}

func TestLoader(t *testing.T) {
	path := writeSineWAV(t, 44100, 1000)
	l := NewLoader(44100)

	res := <-l.Load(context.Background(), path)
	if res.Err != nil {
		t.Fatalf("Load error: %v", res.Err)
	}
	if res.Track == nil || res.Track.Len() != 1000 {
		t.Fatalf("Load track = %+v, want 1000 samples", res.Track)
	}
	if res.Seq != 1 || l.Current() != 1 {
		t.Errorf("Seq = %d, Current() = %d, want 1", res.Seq, l.Current())
	}

	missing := <-l.Load(context.Background(), filepath.Join(t.TempDir(), "gone.wav"))
	if !errors.Is(missing.Err, ErrNoFile) {
		t.Errorf("Load(missing) error = %v, want %v", missing.Err, ErrNoFile)
	}
	if missing.Seq != 2 {
		t.Errorf("Seq = %d, want 2", missing.Seq)
	}
}

func TestLoaderParentCanceled(t *testing.T) {
	path := writeSineWAV(t, 44100, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-NewLoader(44100).Load(ctx, path)
	if !errors.Is(res.Err, ErrLoadCanceled) {
		t.Errorf("Load error = %v, want %v", res.Err, ErrLoadCanceled)
	}
}

func TestCheckTrack(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "Song.MP3")
	if err := os.WriteFile(song, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cover := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(cover, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want error
	}{
		{song, nil},
		{cover, ErrUnsupportedFormat},
		{filepath.Join(dir, "none.ogg"), ErrNoFile},
		{dir, ErrNoFile},
		{"", ErrNoFile},
	}
	for _, tt := range tests {
		if err := CheckTrack(tt.path); !errors.Is(err, tt.want) {
			t.Errorf("CheckTrack(%q) = %v, want %v", tt.path, err, tt.want)
		}
	}
}
