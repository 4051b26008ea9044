// Package timer drives a single one-second-granularity countdown for a guided
// practice and hands completion off to a callback.
package timer

import (
	"errors"
	"sync"
	"time"
)

// TickInterval is the countdown granularity.
const TickInterval = time.Second

// State is the lifecycle of a countdown.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("timer duration must be positive")

	// ErrRunning indicates the operation is not allowed while counting down.
	ErrRunning = errors.New("timer is running")

	// ErrClosed indicates the controller was torn down.
	ErrClosed = errors.New("timer is closed")
)

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	Duration int // seconds
	TimeLeft int // seconds
	State    State
}

// Elapsed returns the seconds counted down so far.
func (s Snapshot) Elapsed() int {
	return s.Duration - s.TimeLeft
}

// Fraction returns the completed share of the session in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Elapsed()) / float64(s.Duration)
}

// Controller owns one countdown session. All transitions are serialized, so
// ticks from the scheduler and user actions may arrive on different
// goroutines.
//
// Invariant: a tick schedule is live if and only if the state is Running.
type Controller struct {
	mu    sync.Mutex
	sched Scheduler

	duration int
	timeLeft int
	state    State
	closed   bool

	// gen identifies the live schedule; ticks carrying an older generation
	// were cancelled and are dropped.
	gen    uint64
	cancel func()

	onTick     func(Snapshot)
	onComplete func(elapsedSeconds int)
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnComplete registers the callback fired once each time the countdown
// reaches zero. It runs outside the controller lock.
func WithOnComplete(fn func(elapsedSeconds int)) Option {
	return func(c *Controller) { c.onComplete = fn }
}

// WithOnTick registers a callback fired after every accepted tick.
func WithOnTick(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onTick = fn }
}

// NewController creates an idle controller for a session of durationSeconds.
func NewController(durationSeconds int, sched Scheduler, opts ...Option) (*Controller, error) {
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	if sched == nil {
		sched = TickerScheduler{}
	}
	c := &Controller{
		sched:    sched,
		duration: durationSeconds,
		timeLeft: durationSeconds,
		state:    Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetDuration reconfigures the session length. Not allowed while running.
func (c *Controller) SetDuration(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state == Running {
		return ErrRunning
	}
	c.stopLocked()
	c.duration = seconds
	c.timeLeft = seconds
	c.state = Idle
	return nil
}

// Start begins or resumes the countdown. Calling Start while already running
// replaces the schedule rather than adding a second one. Starting from
// Completed begins a fresh run.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.stopLocked()
	if c.state == Completed || c.timeLeft <= 0 {
		c.timeLeft = c.duration
	}
	gen := c.gen
	c.cancel = c.sched.Every(TickInterval, func() { c.tick(gen) })
	c.state = Running
	return nil
}

// Pause freezes the countdown. It is a no-op unless running.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running {
		return
	}
	c.stopLocked()
	c.state = Paused
}

// Stop pauses a running countdown and returns the state at the moment it
// stopped, for recording an early finish.
func (c *Controller) Stop() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Running {
		c.stopLocked()
		c.state = Paused
	}
	return c.snapshotLocked()
}

// Reset returns to Idle with the full duration remaining.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.state = Idle
	c.timeLeft = c.duration
}

// Close tears the controller down: the pending tick is cancelled and every
// later call or in-flight tick is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.state = Idle
	c.timeLeft = c.duration
	c.closed = true
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}

	c.timeLeft--
	completed := false
	if c.timeLeft <= 0 {
		c.timeLeft = 0
		c.stopLocked()
		c.state = Completed
		completed = true
	}
	snap := c.snapshotLocked()
	onTick, onComplete := c.onTick, c.onComplete
	c.mu.Unlock()

	if onTick != nil {
		onTick(snap)
	}
	if completed && onComplete != nil {
		onComplete(snap.Duration)
	}
}

// stopLocked cancels the live schedule, if any, and retires its generation.
func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Duration: c.duration, TimeLeft: c.timeLeft, State: c.state}
}
