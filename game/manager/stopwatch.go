package manager

import (
	"sync"
	"time"

	"snake-arcade/game/types"
)

// Stopwatch accumulates elapsed time between Start and Stop calls.
// Stop without Start is a no-op and nothing accumulates while stopped.
type Stopwatch struct {
	mu      sync.Mutex
	clock   types.Clock
	running bool
	started time.Time
	total   time.Duration
}

func NewStopwatch(clock types.Clock) *Stopwatch {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

// Start begins or resumes timing
func (sw *Stopwatch) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.running {
		return
	}
	sw.running = true
	sw.started = sw.clock.Now()
}

// Stop freezes the accumulated time
func (sw *Stopwatch) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if !sw.running {
		return
	}
	sw.total += sw.clock.Now().Sub(sw.started)
	sw.running = false
}

// Reset stops the stopwatch and zeroes it
func (sw *Stopwatch) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.running = false
	sw.total = 0
}

// Elapsed returns the accumulated time, including the running lap
func (sw *Stopwatch) Elapsed() time.Duration {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.running {
		return sw.total + sw.clock.Now().Sub(sw.started)
	}
	return sw.total
}

func (sw *Stopwatch) ElapsedMinutes() float64 {
	return sw.Elapsed().Minutes()
}
