// Package firm provides owner-scoped reactive primitives: signals, memos,
// effects and one-shot timers. Every update made through an Owner runs on
// its loop, one at a time, so reactive code never needs its own locking.
package firm

import (
	"sync"

	"github.com/sasha-s/go-deadlock"
)

// CleanUp releases whatever a root, an effect run or a timer acquired.
type CleanUp func()

// Reactive is a value an effect or a memo can depend on.
type Reactive interface {
	track(e *EffectImpl)
}

// Owner scopes reactive nodes and serializes the work done on them.
type Owner struct {
	mu       deadlock.Mutex
	clock    Clock
	observer *EffectImpl
	batch    int
	queue    []*EffectImpl
	cleanups []CleanUp
	disposed bool
	pending  sync.WaitGroup
}

// Option configures an Owner created by Root.
type Option func(*Owner)

// WithClock replaces the clock used by Timeout.
func WithClock(clock Clock) Option {
	return func(o *Owner) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Root creates an owner and runs fn on its loop. The cleanup returned by fn
// runs when the root is disposed.
//
// Root returns a dispose function, which runs every registered cleanup in
// reverse order and is safe to call more than once, and a wait function,
// which blocks until every timer scheduled on the owner fired or was
// cancelled.
func Root(fn func(owner *Owner) CleanUp, opts ...Option) (CleanUp, func()) {
	owner := &Owner{clock: SystemClock{}}
	for _, opt := range opts {
		opt(owner)
	}

	owner.Run(func() {
		if cleanup := fn(owner); cleanup != nil {
			owner.cleanups = append(owner.cleanups, cleanup)
		}
	})

	return owner.dispose, owner.pending.Wait
}

// Run executes fn on the owner's loop. It reports false, without calling fn,
// once the owner is disposed. fn must not call Run on the same owner.
// Signal, Effect, Memo, Timeout, OnCleanup and Batch do not lock; call
// them from fn, from Root's fn or from an effect.
func (o *Owner) Run(fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.disposed {
		return false
	}
	fn()
	return true
}

// Inspect executes fn on the owner's loop even after disposal. Use it for
// reads; writes made from Inspect after disposal reach no effect.
func (o *Owner) Inspect(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn()
}

// Disposed reports whether the owner has been disposed.
func (o *Owner) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}

func (o *Owner) dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.disposed {
		return
	}
	o.disposed = true

	// LIFO, like the nodes were created
	for i := len(o.cleanups) - 1; i >= 0; i-- {
		if cleanup := o.cleanups[i]; cleanup != nil {
			cleanup()
		}
	}
	o.cleanups = nil
	o.queue = nil
}

// OnCleanup registers fn to run when owner is disposed. On an owner that is
// already disposed fn runs immediately.
//
// Like every other constructor in this package it must be called on the
// owner's loop: from Root's fn, from an effect, or inside Run or Inspect.
func OnCleanup(owner *Owner, fn CleanUp) {
	if owner.disposed {
		fn()
		return
	}
	owner.cleanups = append(owner.cleanups, fn)
}

// Batch runs fn and defers the effects its updates trigger until fn
// returns. Each affected effect runs once. Batches nest; only the outermost
// one flushes. Batch must be called on the owner's loop.
func Batch(owner *Owner, fn func()) {
	owner.batch++
	defer func() {
		owner.batch--
		if owner.batch == 0 {
			owner.flush()
		}
	}()
	fn()
}

func (o *Owner) schedule(effects []*EffectImpl) {
	for _, e := range effects {
		if e.disposed {
			continue
		}
		if o.batch > 0 {
			if !e.queued {
				e.queued = true
				o.queue = append(o.queue, e)
			}
			continue
		}
		e.run()
	}
}

func (o *Owner) flush() {
	for len(o.queue) > 0 {
		queue := o.queue
		o.queue = nil
		for _, e := range queue {
			e.queued = false
			e.run()
		}
	}
}
