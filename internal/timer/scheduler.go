package timer

import (
	"sync"
	"time"
)

// Scheduler arranges for fn to run every interval until the returned cancel
// function is called. Cancel must not block and must be safe to call more
// than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs each schedule on its own goroutine backed by a
// time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() { once.Do(func() { close(stop) }) }
}

// ManualScheduler fires ticks only when Advance is called. It makes
// countdowns deterministic in tests and replays.
type ManualScheduler struct {
	mu        sync.Mutex
	next      int
	active    map[int]func()
	scheduled int
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{active: make(map[int]func())}
}

func (s *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.scheduled++
	s.active[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.active, id)
	}
}

// Advance fires every live schedule n times, one round at a time.
func (s *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		s.mu.Lock()
		fns := make([]func(), 0, len(s.active))
		for _, fn := range s.active {
			fns = append(fns, fn)
		}
		s.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

// Active returns the number of live schedules.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Scheduled returns how many schedules were ever created.
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}
