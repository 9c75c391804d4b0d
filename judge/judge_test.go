package judge

import (
	"math/rand"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestPressWindowBoundary verifies the on-beat window is exclusive at 200ms
func TestPressWindowBoundary(t *testing.T) {
	tests := []struct {
		name   string
		delay  time.Duration
		onBeat bool
		points int
	}{
		{"immediate", 0, true, OnBeatPoints},
		{"199ms", 199 * time.Millisecond, true, OnBeatPoints},
		{"200ms", 200 * time.Millisecond, false, OffBeatPoints},
		{"late", 2 * time.Second, false, OffBeatPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJudge(DefaultWindow)
			res := j.Press(KeyD, epoch.Add(tt.delay), epoch)
			if res.OnBeat != tt.onBeat {
				t.Errorf("OnBeat = %v, want %v", res.OnBeat, tt.onBeat)
			}
			if res.Points != tt.points {
				t.Errorf("Points = %d, want %d", res.Points, tt.points)
			}
		})
	}
}

// TestPressBeforeFirstBeat verifies presses with no beat yet score as off-beat
func TestPressBeforeFirstBeat(t *testing.T) {
	j := NewJudge(DefaultWindow)
	res := j.Press(KeyK, epoch, time.Time{})

	if res.OnBeat {
		t.Error("press with no beat scored on-beat")
	}
	if res.Points != OffBeatPoints {
		t.Errorf("Points = %d, want %d", res.Points, OffBeatPoints)
	}
	if st := j.Stats(); st.TotalHits != 1 || st.SuccessfulHits != 0 || st.Score != OffBeatPoints {
		t.Errorf("Stats = %+v", st)
	}
}

func TestPressAccuracyAndRank(t *testing.T) {
	j := NewJudge(DefaultWindow)

	// 3 on-beat, 1 off-beat
	j.Press(KeyD, epoch.Add(10*time.Millisecond), epoch)
	j.Press(KeyF, epoch.Add(20*time.Millisecond), epoch)
	j.Press(KeyJ, epoch.Add(30*time.Millisecond), epoch)
	res := j.Press(KeyK, epoch.Add(time.Second), epoch)

	if res.Accuracy != 75.0 {
		t.Errorf("Accuracy = %v, want 75.0", res.Accuracy)
	}
	if res.Rank != RankB {
		t.Errorf("Rank = %v, want %v", res.Rank, RankB)
	}
	if st := j.Stats(); st.Score != 310 {
		t.Errorf("Score = %d, want 310", st.Score)
	}
}

// TestPressInvariants checks counters, accuracy range and monotonic score on random presses
func TestPressInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	j := NewJudge(DefaultWindow)
	lastScore := 0

	for i := 0; i < 1000; i++ {
		beat := epoch.Add(time.Duration(i) * time.Second)
		res := j.Press(Keys[rng.Intn(4)], beat.Add(time.Duration(rng.Intn(400))*time.Millisecond), beat)
		st := j.Stats()

		if st.TotalHits < st.SuccessfulHits || st.SuccessfulHits < 0 {
			t.Fatalf("press %d: counters out of order: %+v", i, st)
		}
		if res.Accuracy < 0 || res.Accuracy > 100 {
			t.Fatalf("press %d: accuracy %v out of range", i, res.Accuracy)
		}
		if st.Score <= lastScore {
			t.Fatalf("press %d: score %d did not increase from %d", i, st.Score, lastScore)
		}
		lastScore = st.Score
	}
}

func TestJudgeReset(t *testing.T) {
	j := NewJudge(0)
	j.Press(KeyD, epoch, epoch)
	j.Reset()

	if st := j.Stats(); st != (Stats{}) {
		t.Errorf("Stats after reset = %+v, want zero", st)
	}
	if j.Stats().Accuracy() != 0 {
		t.Errorf("Accuracy after reset = %v, want 0", j.Stats().Accuracy())
	}
	if j.Window() != DefaultWindow {
		t.Errorf("Window = %v, want %v", j.Window(), DefaultWindow)
	}
}
