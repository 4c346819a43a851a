// Package schedule runs cancellable periodic tasks on a virtual clock.
//
// A Scheduler never spawns goroutines. The owner advances it from a single
// loop (a frame loop, or a test), and every due callback runs on the caller's
// goroutine in deadline order. Two callbacks never run at the same time, so
// the state they share needs no locking.
package schedule

import (
	"fmt"
	"time"
)

// Handle controls a scheduled periodic task.
type Handle interface {
	// Stop cancels the task. Safe to call more than once and from inside
	// the task's own callback.
	Stop()
	// Active reports whether the task will fire again.
	Active() bool
}

// task is a single periodic callback.
type task struct {
	id      uint64
	period  time.Duration
	next    time.Duration // Virtual deadline of the next tick
	fn      func()
	stopped bool
}

func (t *task) Stop() {
	t.stopped = true
}

func (t *task) Active() bool {
	return !t.stopped
}

// Scheduler owns a virtual clock and the tasks registered on it.
type Scheduler struct {
	now    time.Duration
	tasks  []*task
	nextID uint64
	ticks  uint64
}

// New creates a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run once per period, first at now+period.
// Panics if period is not positive.
func (s *Scheduler) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		panic(fmt.Sprintf("schedule: non-positive period %v", period))
	}
	s.nextID++
	t := &task{
		id:     s.nextID,
		period: period,
		next:   s.now + period,
		fn:     fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every tick that falls due.
// Ticks run in deadline order; ties go to the task registered first.
// Tasks stopped by an earlier callback in the same Advance do not fire.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next += t.period
		s.ticks++
		t.fn()
	}

	s.now = target
	s.compact()
}

// nextDue returns the active task with the earliest deadline not after target.
func (s *Scheduler) nextDue(target time.Duration) *task {
	var due *task
	for _, t := range s.tasks {
		if t.stopped || t.next > target {
			continue
		}
		if due == nil || t.next < due.next || (t.next == due.next && t.id < due.id) {
			due = t
		}
	}
	return due
}

// compact drops stopped tasks, reusing the backing array.
func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
}

// StopAll cancels every registered task.
func (s *Scheduler) StopAll() {
	for _, t := range s.tasks {
		t.stopped = true
	}
	s.compact()
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of active tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Ticks returns the total number of callbacks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}
