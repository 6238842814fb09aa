// Package observable holds a value that can be read synchronously and watched for changes.
package observable

import "sync"

type Store[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]func(T)
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value
}

// Set replaces the value and notifies subscribers. Callbacks run outside the lock, in
// the caller's goroutine.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value atomically and returns the new value.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}

	return v
}

// Subscribe registers fn for future changes. The returned func removes it.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store[T]) snapshot() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
