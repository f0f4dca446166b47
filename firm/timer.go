package firm

import (
	"sync"
	"time"
)

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// SystemClock schedules on the runtime timers.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Timeout runs fn once on the owner's loop after d. The returned function
// cancels it; disposing the owner cancels it too. A callback that still
// fires after disposal does nothing.
func Timeout(owner *Owner, d time.Duration, fn func()) CleanUp {
	owner.pending.Add(1)

	var once sync.Once
	done := func() {
		once.Do(owner.pending.Done)
	}

	timer := owner.clock.AfterFunc(d, func() {
		defer done()
		owner.Run(fn)
	})

	cancel := func() {
		if timer.Stop() {
			done()
		}
	}
	OnCleanup(owner, cancel)

	return cancel
}
