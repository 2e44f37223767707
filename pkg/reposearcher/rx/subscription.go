package rx

import (
	"sync"

	"go.uber.org/atomic"
)

// Subscription releases whatever an observer is holding on to.
// Dispose is idempotent.
type Subscription interface {
	Dispose()
}

type subscription struct {
	disposed atomic.Bool
	release  func()
}

// NewSubscription returns a Subscription that runs release on the first Dispose.
func NewSubscription(release func()) Subscription {
	return &subscription{release: release}
}

// Disposed returns a Subscription that holds nothing.
func Disposed() Subscription {
	return NewSubscription(nil)
}

func (s *subscription) Dispose() {
	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	if s.release != nil {
		s.release()
	}
}

// Bag collects subscriptions so they can be disposed together, usually when the
// screen that owns them goes away. The zero value is ready to use.
type Bag struct {
	mu       sync.Mutex
	subs     []Subscription
	disposed bool
}

// Add stores subscriptions in the bag.
// If the bag has already been disposed, they are disposed immediately.
func (b *Bag) Add(subs ...Subscription) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		for _, s := range subs {
			s.Dispose()
		}
		return
	}
	b.subs = append(b.subs, subs...)
	b.mu.Unlock()
}

// Len returns the number of subscriptions currently held.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dispose disposes every subscription in the bag, in the order they were added.
func (b *Bag) Dispose() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.disposed = true
	b.mu.Unlock()

	for _, s := range subs {
		s.Dispose()
	}
}
