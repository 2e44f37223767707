package rx

import "sync"

type registration[T any] struct {
	id       uint64
	observer Observer[T]
}

// observers is an ordered observer list shared by Subject and Behavior.
// Delivery order is subscription order.
type observers[T any] struct {
	mu     sync.Mutex
	list   []registration[T]
	nextID uint64
}

func (l *observers[T]) add(o Observer[T]) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.list = append(l.list, registration[T]{id: l.nextID, observer: o})
	return l.nextID
}

func (l *observers[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.list {
		if r.id == id {
			l.list = append(l.list[:i:i], l.list[i+1:]...)
			return
		}
	}
}

func (l *observers[T]) snapshot() []Observer[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Observer[T], len(l.list))
	for i, r := range l.list {
		out[i] = r.observer
	}
	return out
}

func (l *observers[T]) clear() []Observer[T] {
	out := l.snapshot()
	l.mu.Lock()
	l.list = nil
	l.mu.Unlock()
	return out
}

func (l *observers[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.list)
}

// Subject is a hot multicast stream.
//
// Values are delivered to the observers subscribed at the time of emission.
// Observers that subscribe later miss them; there is no replay. After Error or
// Complete the subject is terminated: further values are dropped and new
// observers receive the terminal notification right away.
type Subject[T any] struct {
	serial    serial
	observers observers[T]

	mu   sync.Mutex
	done bool
	err  error
}

// NewSubject creates a Subject with no observers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Next emits v to every current observer.
func (s *Subject[T]) Next(v T) {
	s.serial.do(func() {
		if s.terminated() {
			return
		}
		for _, o := range s.observers.snapshot() {
			o.emit(v)
		}
	})
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	s.serial.do(func() {
		if !s.terminate(err) {
			return
		}
		for _, o := range s.observers.clear() {
			o.fail(err)
		}
	})
}

// Complete terminates the subject normally.
func (s *Subject[T]) Complete() {
	s.serial.do(func() {
		if !s.terminate(nil) {
			return
		}
		for _, o := range s.observers.clear() {
			o.finish()
		}
	})
}

// Subscribe implements Observable.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			o.fail(err)
		} else {
			o.finish()
		}
		return Disposed()
	}
	id := s.observers.add(o)
	s.mu.Unlock()

	return NewSubscription(func() {
		s.observers.remove(id)
	})
}

// HasObservers reports whether anything is currently subscribed.
func (s *Subject[T]) HasObservers() bool {
	return s.observers.len() > 0
}

func (s *Subject[T]) terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Subject[T]) terminate(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.done = true
	s.err = err
	return true
}

// Sink returns a function that pushes values into the subject.
// It is the write-only view handed to code that should not subscribe.
func (s *Subject[T]) Sink() func(T) {
	return s.Next
}
