package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, duration int, opts ...Option) (*Controller, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	c, err := NewController(duration, sched, opts...)
	require.NoError(t, err)
	return c, sched
}

func TestNewController_RejectsNonPositiveDuration(t *testing.T) {
	_, err := NewController(0, NewManualScheduler())
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewController(-5, NewManualScheduler())
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestController_RunsToCompletionOnce(t *testing.T) {
	for _, duration := range []int{1, 2, 59, 180, 300} {
		var completions atomic.Int32
		var elapsed int
		c, sched := newTestController(t, duration, WithOnComplete(func(e int) {
			completions.Add(1)
			elapsed = e
		}))

		require.NoError(t, c.Start())
		sched.Advance(duration + 5)

		snap := c.Snapshot()
		assert.Equal(t, 0, snap.TimeLeft, "duration=%d", duration)
		assert.Equal(t, Completed, snap.State, "duration=%d", duration)
		assert.Equal(t, int32(1), completions.Load(), "duration=%d", duration)
		assert.Equal(t, duration, elapsed, "duration=%d", duration)
		assert.Equal(t, 0, sched.Active(), "no tick may stay scheduled after completion")
	}
}

func TestController_PauseResumeKeepsExactTimeLeft(t *testing.T) {
	c, sched := newTestController(t, 60)

	require.NoError(t, c.Start())
	sched.Advance(15)
	c.Pause()

	paused := c.Snapshot()
	assert.Equal(t, Paused, paused.State)
	assert.Equal(t, 45, paused.TimeLeft)
	assert.Equal(t, 0, sched.Active())

	// Ticks while paused have no schedule to fire.
	sched.Advance(10)
	assert.Equal(t, 45, c.Snapshot().TimeLeft)

	require.NoError(t, c.Start())
	assert.Equal(t, 45, c.Snapshot().TimeLeft, "resume must not decrement")
	sched.Advance(1)
	assert.Equal(t, 44, c.Snapshot().TimeLeft)
}

func TestController_ResetRestoresDurationFromAnyState(t *testing.T) {
	c, sched := newTestController(t, 30)

	c.Reset()
	assert.Equal(t, Snapshot{Duration: 30, TimeLeft: 30, State: Idle}, c.Snapshot())

	require.NoError(t, c.Start())
	sched.Advance(7)
	c.Reset()
	assert.Equal(t, Snapshot{Duration: 30, TimeLeft: 30, State: Idle}, c.Snapshot())
	assert.Equal(t, 0, sched.Active())

	require.NoError(t, c.Start())
	sched.Advance(3)
	c.Pause()
	c.Reset()
	assert.Equal(t, Snapshot{Duration: 30, TimeLeft: 30, State: Idle}, c.Snapshot())

	require.NoError(t, c.Start())
	sched.Advance(30)
	require.Equal(t, Completed, c.Snapshot().State)
	c.Reset()
	assert.Equal(t, Snapshot{Duration: 30, TimeLeft: 30, State: Idle}, c.Snapshot())
}

func TestController_DoubleStartKeepsOneSchedule(t *testing.T) {
	c, sched := newTestController(t, 60)

	require.NoError(t, c.Start())
	require.NoError(t, c.Start())

	assert.Equal(t, 1, sched.Active())
	assert.Equal(t, 2, sched.Scheduled())

	sched.Advance(1)
	assert.Equal(t, 59, c.Snapshot().TimeLeft, "one tick must decrement exactly once")
}

func TestController_StaleTickIsIgnored(t *testing.T) {
	c, sched := newTestController(t, 60)

	var staleTick func()
	spy := &capturingScheduler{inner: sched, capture: func(fn func()) { staleTick = fn }}
	c.sched = spy

	require.NoError(t, c.Start())
	sched.Advance(2)
	c.Pause()

	// A tick that was already in flight when Pause ran must not mutate state.
	staleTick()
	assert.Equal(t, 58, c.Snapshot().TimeLeft)
	assert.Equal(t, Paused, c.Snapshot().State)
}

func TestController_StartAfterCompletionBeginsFreshRun(t *testing.T) {
	var completions atomic.Int32
	c, sched := newTestController(t, 3, WithOnComplete(func(int) { completions.Add(1) }))

	require.NoError(t, c.Start())
	sched.Advance(3)
	require.Equal(t, Completed, c.Snapshot().State)

	require.NoError(t, c.Start())
	assert.Equal(t, 3, c.Snapshot().TimeLeft)
	sched.Advance(3)
	assert.Equal(t, int32(2), completions.Load())
}

func TestController_SetDuration(t *testing.T) {
	c, sched := newTestController(t, 60)

	require.NoError(t, c.SetDuration(120))
	assert.Equal(t, Snapshot{Duration: 120, TimeLeft: 120, State: Idle}, c.Snapshot())

	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.SetDuration(30), ErrRunning)

	c.Pause()
	require.NoError(t, c.SetDuration(30))
	assert.Equal(t, Snapshot{Duration: 30, TimeLeft: 30, State: Idle}, c.Snapshot())
	assert.Equal(t, 0, sched.Active())

	assert.ErrorIs(t, c.SetDuration(0), ErrInvalidDuration)
}

func TestController_CloseCancelsPendingTick(t *testing.T) {
	var ticks atomic.Int32
	c, sched := newTestController(t, 60, WithOnTick(func(Snapshot) { ticks.Add(1) }))

	require.NoError(t, c.Start())
	sched.Advance(1)
	c.Close()

	assert.Equal(t, 0, sched.Active())
	sched.Advance(5)
	assert.Equal(t, int32(1), ticks.Load())
	assert.ErrorIs(t, c.Start(), ErrClosed)
	assert.ErrorIs(t, c.SetDuration(10), ErrClosed)
}

func TestController_StopReturnsStateAtStop(t *testing.T) {
	c, sched := newTestController(t, 300)

	require.NoError(t, c.Start())
	sched.Advance(10)
	snap := c.Stop()

	assert.Equal(t, 290, snap.TimeLeft)
	assert.Equal(t, 10, snap.Elapsed())
	assert.Equal(t, Paused, snap.State)
	assert.Equal(t, 0, sched.Active())
}

func TestController_CompletionCallbackMayReset(t *testing.T) {
	var c *Controller
	sched := NewManualScheduler()
	c, err := NewController(2, sched, WithOnComplete(func(int) { c.Reset() }))
	require.NoError(t, err)

	require.NoError(t, c.Start())
	sched.Advance(2)
	assert.Equal(t, Snapshot{Duration: 2, TimeLeft: 2, State: Idle}, c.Snapshot())
}

func TestTickerScheduler_FiresAndCancels(t *testing.T) {
	var fired atomic.Int32
	cancel := TickerScheduler{}.Every(5*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	cancel() // idempotent

	time.Sleep(20 * time.Millisecond)
	settled := fired.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, fired.Load())
}

type capturingScheduler struct {
	inner   Scheduler
	capture func(fn func())
}

func (s *capturingScheduler) Every(d time.Duration, fn func()) func() {
	s.capture(fn)
	return s.inner.Every(d, fn)
}
