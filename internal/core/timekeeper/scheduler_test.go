package timekeeper

import (
	"sync"
	"time"
)

// manualScheduler queues callbacks until the test fires them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (scheduler *manualScheduler) AfterFunc(delay time.Duration, fn func()) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.pending = append(scheduler.pending, fn)
	scheduler.delays = append(scheduler.delays, delay)
}

// Fire runs the oldest pending callback and reports whether there was one.
func (scheduler *manualScheduler) Fire() bool {
	scheduler.mu.Lock()
	if len(scheduler.pending) == 0 {
		scheduler.mu.Unlock()
		return false
	}
	fn := scheduler.pending[0]
	scheduler.pending = scheduler.pending[1:]
	scheduler.mu.Unlock()

	fn()
	return true
}

func (scheduler *manualScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}
