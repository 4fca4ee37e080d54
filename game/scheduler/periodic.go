package scheduler

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// PeriodicTask runs fn once per interval on its own goroutine for as long as the shared
// running flag is true. The flag is checked at the top of every period and again right
// before fn, so clearing it stops the task within one interval without outside help.
// Stop additionally cuts the current wait short.
type PeriodicTask struct {
	name     string
	interval time.Duration
	running  *atomic.Bool
	fn       func()
	logger   *log.Logger

	started  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	runs     atomic.Uint64
}

// New creates a task; it does nothing until Start
func New(name string, interval time.Duration, running *atomic.Bool, fn func(), logger *log.Logger) *PeriodicTask {
	if logger == nil {
		logger = log.Default()
	}
	return &PeriodicTask{
		name:     name,
		interval: interval,
		running:  running,
		fn:       fn,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop; calling it twice has no effect
func (t *PeriodicTask) Start() {
	if t.started.CompareAndSwap(false, true) {
		t.wg.Add(1)
		Go(t.logger, t.name, t.loop)
	}
}

// Stop interrupts the loop. It does not wait, so fn itself may call it.
func (t *PeriodicTask) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
}

// Wait blocks until the loop has returned. Never call it from fn.
func (t *PeriodicTask) Wait() {
	t.wg.Wait()
}

// Runs returns how many times fn has been called
func (t *PeriodicTask) Runs() uint64 {
	return t.runs.Load()
}

func (t *PeriodicTask) loop() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if !t.running.Load() {
			return
		}

		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
		}

		if !t.running.Load() {
			return
		}
		t.fn()
		t.runs.Add(1)
	}
}

// Go runs fn on a new goroutine, logging the stack of a panic before letting it crash the process
func Go(logger *log.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("CRASH in %s: %v\n%s", name, r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
