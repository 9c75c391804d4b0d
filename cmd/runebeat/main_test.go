package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		config   string
		silent   bool
		playlist []string
	}{
		{"no args", nil, "", false, nil},
		{"tracks only", []string{"a.mp3", "b.wav"}, "", false, []string{"a.mp3", "b.wav"}},
		{"flags and tracks", []string{"-config", "rb.yaml", "-silent", "song.ogg"}, "rb.yaml", true, []string{"song.ogg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseFlags error: %v", err)
			}
			if opts.configPath != tt.config || opts.silent != tt.silent {
				t.Errorf("opts = %+v, want config %q silent %v", opts, tt.config, tt.silent)
			}
			if strings.Join(opts.playlist, ",") != strings.Join(tt.playlist, ",") {
				t.Errorf("playlist = %v, want %v", opts.playlist, tt.playlist)
			}
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseFlags(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "Usage: runebeat") {
		t.Errorf("usage output = %q", out.String())
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"-volume", "3"}, &bytes.Buffer{}); err == nil {
		t.Error("parseFlags accepted an unknown flag")
	}
}
