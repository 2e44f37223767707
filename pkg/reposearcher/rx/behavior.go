package rx

import (
	"sync"

	"go.uber.org/atomic"
)

// Behavior is a latest-value holder.
//
// It always has a value. Every call to Next replaces the stored value and
// broadcasts it; a new observer immediately receives the stored value and then
// every later one. A Behavior never terminates.
type Behavior[T any] struct {
	serial    serial
	observers observers[T]

	mu    sync.Mutex
	value T
}

// NewBehavior creates a Behavior seeded with initial.
func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{value: initial}
}

// Value returns the stored value.
func (b *Behavior[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Next stores v and emits it to every current observer.
func (b *Behavior[T]) Next(v T) {
	b.serial.do(func() {
		b.mu.Lock()
		b.value = v
		b.mu.Unlock()

		for _, o := range b.observers.snapshot() {
			o.emit(v)
		}
	})
}

// Subscribe implements Observable.
//
// Registration and delivery of the stored value happen as one step in the
// emission order, so an observer never sees a value older than one it was
// already sent.
func (b *Behavior[T]) Subscribe(o Observer[T]) Subscription {
	var (
		cancelled atomic.Bool
		id        atomic.Uint64
	)

	b.serial.do(func() {
		if cancelled.Load() {
			return
		}
		id.Store(b.observers.add(o))
		o.emit(b.Value())
	})

	return NewSubscription(func() {
		cancelled.Store(true)
		if registered := id.Load(); registered != 0 {
			b.observers.remove(registered)
			return
		}
		// Registration may still be queued behind an emission in progress.
		b.serial.do(func() {
			if registered := id.Load(); registered != 0 {
				b.observers.remove(registered)
			}
		})
	})
}

// Sink returns a function that stores values into the holder.
func (b *Behavior[T]) Sink() func(T) {
	return b.Next
}
