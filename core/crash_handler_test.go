package core

import (
	"testing"
)

type finiRecorder struct{ calls int }

func (f *finiRecorder) Fini() { f.calls++ }

func TestGoRecoversPanic(t *testing.T) {
	exited := make(chan int, 1)
	orig := exitFunc
	exitFunc = func(code int) { exited <- code }
	t.Cleanup(func() { exitFunc = orig })

	screen := &finiRecorder{}
	SetCrashScreen(screen)

	Go(func() { panic("boom") })

	if code := <-exited; code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if screen.calls != 1 {
		t.Errorf("Fini called %d times, want 1", screen.calls)
	}
}

func TestHandleCrashNil(t *testing.T) {
	screen := &finiRecorder{}
	SetCrashScreen(screen)
	t.Cleanup(func() { SetCrashScreen(nil) })

	HandleCrash(nil)

	if screen.calls != 0 {
		t.Errorf("Fini called %d times for a nil panic, want 0", screen.calls)
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })
	<-done
}
