package firm

// MemoImpl caches a value derived from other signals or memos.
type MemoImpl[T any] struct {
	signal *SignalImpl[T]
	effect *EffectImpl
}

// Memo creates a derived value recomputed when its dependencies change. deps
// follows the same rules as for Effect.
func Memo[T any](owner *Owner, compute func() T, deps []Reactive) *MemoImpl[T] {
	var zero T
	m := &MemoImpl[T]{
		signal: Signal(owner, zero),
	}

	m.effect = Effect(owner, func() CleanUp {
		m.signal.Set(compute())
		return nil
	}, deps)

	return m
}

// Get returns the cached value and tracks it for the running effect.
func (m *MemoImpl[T]) Get() T {
	return m.signal.Get()
}

// Peek returns the cached value without tracking.
func (m *MemoImpl[T]) Peek() T {
	return m.signal.Peek()
}

// Subscribe calls fn with every recomputed value that differs from the
// previous one.
func (m *MemoImpl[T]) Subscribe(fn func(T)) func() {
	return m.signal.Subscribe(fn)
}

func (m *MemoImpl[T]) track(e *EffectImpl) {
	m.signal.track(e)
}
