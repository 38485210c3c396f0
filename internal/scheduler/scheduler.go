// Package scheduler runs at most one pending deferred transition per session.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler keys timers by session id. Scheduling a new timer for an id
// replaces the pending one.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func New() *Scheduler {
	return &Scheduler{timers: map[string]*time.Timer{}}
}

// Schedule runs fn after d. A non-positive d runs fn synchronously before
// Schedule returns, after cancelling whatever was pending for id.
func (s *Scheduler) Schedule(id string, d time.Duration, fn func()) {
	if d <= 0 {
		s.Cancel(id)
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if existing, ok := s.timers[id]; ok {
		existing.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.timers[id] == timer {
			delete(s.timers, id)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[id] = timer
}

// Cancel drops the pending timer for id, if any. It reports whether a timer
// was stopped before firing.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return timer.Stop()
}

// Pending reports whether a timer is waiting for id.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Stop cancels every pending timer. Later Schedule calls with a positive
// delay are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
