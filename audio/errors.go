package audio

import "errors"

// Sentinel errors for track loading and playback
var (
	ErrNoFile            = errors.New("no such audio file")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecode            = errors.New("audio decode failed")
	ErrLoadCanceled      = errors.New("audio load canceled")
	ErrOutput            = errors.New("audio output unavailable")
	ErrNoAudioBackend    = errors.New("no compatible audio backend found")
	ErrPipeClosed        = errors.New("audio pipe closed")
)
