package firm

// EffectImpl is a side effect re-run whenever one of its dependencies
// changes.
type EffectImpl struct {
	owner    *Owner
	fn       func() CleanUp
	deps     []Reactive
	cleanup  CleanUp
	sources  []func()
	disposed bool
	queued   bool
	running  bool
}

// Effect runs fn once and again after every change of its dependencies.
// With deps nil, every signal or memo read during a run becomes a
// dependency; otherwise only deps are tracked. The cleanup returned by a run
// is called before the next run and on dispose.
func Effect(owner *Owner, fn func() CleanUp, deps []Reactive) *EffectImpl {
	e := &EffectImpl{
		owner: owner,
		fn:    fn,
		deps:  deps,
	}

	for _, dep := range deps {
		dep.track(e)
	}
	OnCleanup(owner, e.Dispose)

	e.run()
	return e
}

func (e *EffectImpl) run() {
	// an effect writing to its own dependency does not re-enter itself
	if e.disposed || e.running {
		return
	}

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	prev := e.owner.observer
	if e.deps == nil {
		e.owner.observer = e
	} else {
		e.owner.observer = nil
	}
	e.running = true
	defer func() {
		e.running = false
		e.owner.observer = prev
	}()

	e.cleanup = e.fn()
}

// Dispose stops the effect and runs its pending cleanup.
func (e *EffectImpl) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	for _, unsubscribe := range e.sources {
		unsubscribe()
	}
	e.sources = nil
}
