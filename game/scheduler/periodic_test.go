package scheduler

import (
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"
)

var quiet = log.New(io.Discard, "", 0)

func waitDone(t *testing.T, task *PeriodicTask, within time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		task.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(within):
		t.Fatalf("task still running after %v", within)
	}
}

func TestTaskRunsPeriodically(t *testing.T) {
	var running atomic.Bool
	running.Store(true)
	var calls atomic.Int32

	task := New("tick", time.Millisecond, &running, func() { calls.Add(1) }, quiet)
	task.Start()
	task.Start()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if calls.Load() < 5 {
		t.Fatalf("only %d calls", calls.Load())
	}

	task.Stop()
	waitDone(t, task, time.Second)
	if uint64(calls.Load()) != task.Runs() {
		t.Errorf("Runs() = %d, calls = %d", task.Runs(), calls.Load())
	}
}

func TestTaskObservesRunningFlag(t *testing.T) {
	var running atomic.Bool
	running.Store(true)

	interval := 20 * time.Millisecond
	var calls atomic.Int32
	task := New("spawn", interval, &running, func() {
		if calls.Add(1) == 2 {
			running.Store(false)
		}
	}, quiet)
	task.Start()

	// No Stop: clearing the flag alone must end the loop within one period
	waitDone(t, task, 10*interval)
	if got := calls.Load(); got != 2 {
		t.Errorf("fn ran %d times after the flag was cleared, want 2", got)
	}
}

func TestStopCancelsTheWait(t *testing.T) {
	var running atomic.Bool
	running.Store(true)

	task := New("slow", time.Hour, &running, func() { t.Error("fn must not run") }, quiet)
	task.Start()

	start := time.Now()
	task.Stop()
	task.Stop()
	waitDone(t, task, time.Second)
	if time.Since(start) > 500*time.Millisecond {
		t.Error("Stop did not interrupt the sleep")
	}
}

func TestTaskNeverStartsWhenFlagIsClear(t *testing.T) {
	var running atomic.Bool
	task := New("idle", time.Millisecond, &running, func() { t.Error("fn must not run") }, quiet)
	task.Start()
	waitDone(t, task, time.Second)
}

func TestStopFromInsideFn(t *testing.T) {
	var running atomic.Bool
	running.Store(true)

	var task *PeriodicTask
	task = New("self", time.Millisecond, &running, func() {
		running.Store(false)
		task.Stop()
	}, quiet)
	task.Start()
	waitDone(t, task, time.Second)
	if task.Runs() != 1 {
		t.Errorf("runs = %d, want 1", task.Runs())
	}
}
