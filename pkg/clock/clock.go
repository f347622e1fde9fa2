package clock

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled one-shot callback. Cancel reports whether the
// callback was stopped before it ran.
type Task interface {
	Cancel() bool
}

// Clock abstracts wall time and one-shot timers so deferred effects can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Task
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) Task {
	return realTask{t: time.AfterFunc(d, fn)}
}

type realTask struct {
	t *time.Timer
}

func (rt realTask) Cancel() bool {
	return rt.t.Stop()
}

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTask
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTask{clock: f, deadline: f.now.Add(d), fn: fn}
	f.pending = append(f.pending, t)
	return t
}

// Advance moves the fake time forward, firing due callbacks in deadline
// order. Callbacks run synchronously on the calling goroutine.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now

	var due []*fakeTask
	var rest []*fakeTask
	for _, t := range f.pending {
		if !t.cancelled && !t.deadline.After(now) {
			due = append(due, t)
		} else if !t.cancelled {
			rest = append(rest, t)
		}
	}
	f.pending = rest
	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	f.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

type fakeTask struct {
	clock     *Fake
	deadline  time.Time
	fn        func()
	cancelled bool
}

func (t *fakeTask) Cancel() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.cancelled {
		return false
	}
	for _, p := range t.clock.pending {
		if p == t {
			t.cancelled = true
			return true
		}
	}
	return false
}
