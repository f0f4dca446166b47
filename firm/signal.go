package firm

import "reflect"

// SignalImpl holds a value that effects and memos can observe.
type SignalImpl[T any] struct {
	owner     *Owner
	value     T
	equals    func(a, b T) bool
	effects   []*EffectImpl
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

// Signal creates a signal owned by owner.
func Signal[T any](owner *Owner, initial T) *SignalImpl[T] {
	s := &SignalImpl[T]{
		owner: owner,
		value: initial,
		equals: func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		},
	}

	OnCleanup(owner, func() {
		s.effects = nil
		s.listeners = nil
	})

	return s
}

// Get returns the current value and tracks it for the running effect.
func (s *SignalImpl[T]) Get() T {
	if observer := s.owner.observer; observer != nil {
		s.track(observer)
	}
	return s.value
}

// Owner returns the owner the signal belongs to.
func (s *SignalImpl[T]) Owner() *Owner {
	return s.owner
}

// Peek returns the current value without tracking.
func (s *SignalImpl[T]) Peek() T {
	return s.value
}

// Set stores value and notifies listeners and effects, unless the equality
// function reports it unchanged.
func (s *SignalImpl[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value

	listeners := make([]*listener[T], len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		l.fn(value)
	}

	effects := make([]*EffectImpl, len(s.effects))
	copy(effects, s.effects)
	s.owner.schedule(effects)
}

// Update sets the signal from its current value.
func (s *SignalImpl[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// SetEqualityFn replaces the function used by Set to skip unchanged values.
func (s *SignalImpl[T]) SetEqualityFn(fn func(a, b T) bool) {
	s.equals = fn
}

// Subscribe calls fn with every new value, synchronously and outside
// of any batch. The returned function removes it.
func (s *SignalImpl[T]) Subscribe(fn func(T)) func() {
	l := &listener[T]{fn: fn}
	s.listeners = append(s.listeners, l)

	return func() {
		for i, existing := range s.listeners {
			if existing == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *SignalImpl[T]) track(e *EffectImpl) {
	for _, existing := range s.effects {
		if existing == e {
			return
		}
	}
	s.effects = append(s.effects, e)
	e.sources = append(e.sources, func() {
		for i, existing := range s.effects {
			if existing == e {
				s.effects = append(s.effects[:i:i], s.effects[i+1:]...)
				return
			}
		}
	})
}
