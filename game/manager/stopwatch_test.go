package manager

import (
	"testing"
	"time"

	"snake-arcade/game/types"
)

func TestStopwatch(t *testing.T) {
	clock := types.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sw := NewStopwatch(clock)

	sw.Stop() // stop without start is harmless
	if sw.Elapsed() != 0 {
		t.Fatalf("elapsed %v before start", sw.Elapsed())
	}

	sw.Start()
	clock.Advance(90 * time.Second)
	if got := sw.ElapsedMinutes(); got != 1.5 {
		t.Errorf("running ElapsedMinutes = %v, want 1.5", got)
	}

	sw.Stop()
	clock.Advance(10 * time.Minute)
	if got := sw.Elapsed(); got != 90*time.Second {
		t.Errorf("elapsed kept accumulating after stop: %v", got)
	}

	sw.Stop()
	sw.Start()
	sw.Start() // a second start must not restart the lap
	clock.Advance(30 * time.Second)
	if got := sw.Elapsed(); got != 2*time.Minute {
		t.Errorf("resumed elapsed %v, want 2m", got)
	}

	sw.Reset()
	clock.Advance(time.Minute)
	if sw.Elapsed() != 0 {
		t.Errorf("reset stopwatch reports %v", sw.Elapsed())
	}
}
