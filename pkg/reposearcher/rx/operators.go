package rx

import (
	"sync"

	"go.uber.org/atomic"
)

// Map transforms every value of src with fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return Func[R](func(o Observer[R]) Subscription {
		return src.Subscribe(Observer[T]{
			Next:     func(v T) { o.emit(fn(v)) },
			Error:    o.fail,
			Complete: o.finish,
		})
	})
}

// Filter passes through only the values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if keep(v) {
					o.emit(v)
				}
			},
			Error:    o.fail,
			Complete: o.finish,
		})
	})
}

// Tap calls side on every notification of src before forwarding it.
func Tap[T any](src Observable[T], side Observer[T]) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				side.emit(v)
				o.emit(v)
			},
			Error: func(err error) {
				side.fail(err)
				o.fail(err)
			},
			Complete: func() {
				side.finish()
				o.finish()
			},
		})
	})
}

// StartWith emits values before anything from src.
func StartWith[T any](src Observable[T], values ...T) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		for _, v := range values {
			o.emit(v)
		}
		return src.Subscribe(o)
	})
}

// Merge interleaves the values of every source in arrival order.
// It completes when all sources complete and fails on the first error.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		var (
			ser       serial
			bag       Bag
			remaining = len(sources)
			stopped   bool
		)
		if remaining == 0 {
			o.finish()
			return Disposed()
		}
		for _, src := range sources {
			bag.Add(src.Subscribe(Observer[T]{
				Next: func(v T) {
					ser.do(func() {
						if !stopped {
							o.emit(v)
						}
					})
				},
				Error: func(err error) {
					ser.do(func() {
						if stopped {
							return
						}
						stopped = true
						o.fail(err)
						bag.Dispose()
					})
				},
				Complete: func() {
					ser.do(func() {
						remaining--
						if remaining == 0 && !stopped {
							stopped = true
							o.finish()
						}
					})
				},
			}))
		}
		return NewSubscription(func() {
			ser.do(func() { stopped = true })
			bag.Dispose()
		})
	})
}

// CombineLatest2 emits fn(a, b) whenever either source emits, pairing the new
// value with the most recent value of the other source. Nothing is emitted
// until both sources have produced at least one value.
//
// The result completes when both sources have completed, or when one completes
// before ever emitting. It fails on the first error from either source.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return Func[R](func(o Observer[R]) Subscription {
		var (
			ser          serial
			bag          Bag
			latestA      A
			latestB      B
			hasA, hasB   bool
			doneA, doneB bool
			stopped      bool
		)

		emit := func() {
			if !stopped && hasA && hasB {
				o.emit(fn(latestA, latestB))
			}
		}
		fail := func(err error) {
			ser.do(func() {
				if stopped {
					return
				}
				stopped = true
				o.fail(err)
				bag.Dispose()
			})
		}
		completed := func() {
			if stopped {
				return
			}
			if (doneA && doneB) || (doneA && !hasA) || (doneB && !hasB) {
				stopped = true
				o.finish()
				bag.Dispose()
			}
		}

		bag.Add(a.Subscribe(Observer[A]{
			Next: func(v A) {
				ser.do(func() {
					latestA, hasA = v, true
					emit()
				})
			},
			Error:    fail,
			Complete: func() { ser.do(func() { doneA = true; completed() }) },
		}))
		bag.Add(b.Subscribe(Observer[B]{
			Next: func(v B) {
				ser.do(func() {
					latestB, hasB = v, true
					emit()
				})
			},
			Error:    fail,
			Complete: func() { ser.do(func() { doneB = true; completed() }) },
		}))

		return NewSubscription(func() {
			ser.do(func() { stopped = true })
			bag.Dispose()
		})
	})
}

// WithLatestFrom emits fn(t, u) for every value t of trigger, where u is the
// most recent value of latest. Trigger values that arrive before latest has
// emitted are dropped. Only the trigger drives completion.
func WithLatestFrom[T, U, R any](trigger Observable[T], latest Observable[U], fn func(T, U) R) Observable[R] {
	return Func[R](func(o Observer[R]) Subscription {
		var (
			ser     serial
			bag     Bag
			value   U
			has     bool
			stopped bool
		)
		fail := func(err error) {
			ser.do(func() {
				if stopped {
					return
				}
				stopped = true
				o.fail(err)
				bag.Dispose()
			})
		}

		bag.Add(latest.Subscribe(Observer[U]{
			Next:  func(v U) { ser.do(func() { value, has = v, true }) },
			Error: fail,
		}))
		bag.Add(trigger.Subscribe(Observer[T]{
			Next: func(t T) {
				ser.do(func() {
					if !stopped && has {
						o.emit(fn(t, value))
					}
				})
			},
			Error: fail,
			Complete: func() {
				ser.do(func() {
					if !stopped {
						stopped = true
						o.finish()
					}
				})
			},
		}))

		return NewSubscription(func() {
			ser.do(func() { stopped = true })
			bag.Dispose()
		})
	})
}

// SwitchMap projects every value of src to an inner stream and forwards only
// the values of the most recently started inner stream.
//
// When src emits, the previous inner subscription is disposed and every result
// it may still deliver is dropped: each inner stream is tagged with a
// generation number and its notifications are checked against the current
// generation before they are forwarded. This is the only cancellation
// mechanism the presentation logic relies on.
//
// An error from the current inner stream fails the result; wrap the inner
// stream with Catch to keep the outer pipeline alive.
func SwitchMap[T, R any](src Observable[T], project func(T) Observable[R]) Observable[R] {
	return Func[R](func(o Observer[R]) Subscription {
		var (
			ser         serial
			generation  atomic.Uint64
			inner       Subscription
			innerActive bool
			outerDone   bool
			stopped     bool
			outer       Bag
		)

		stop := func() {
			stopped = true
			if inner != nil {
				inner.Dispose()
				inner = nil
			}
		}

		outer.Add(src.Subscribe(Observer[T]{
			Next: func(v T) {
				id := generation.Inc()
				ser.do(func() {
					if stopped || generation.Load() != id {
						return
					}
					if inner != nil {
						inner.Dispose()
					}
					innerActive = true
					inner = project(v).Subscribe(Observer[R]{
						Next: func(r R) {
							ser.do(func() {
								if !stopped && generation.Load() == id {
									o.emit(r)
								}
							})
						},
						Error: func(err error) {
							ser.do(func() {
								if stopped || generation.Load() != id {
									return
								}
								stop()
								o.fail(err)
								outer.Dispose()
							})
						},
						Complete: func() {
							ser.do(func() {
								if stopped || generation.Load() != id {
									return
								}
								innerActive = false
								if outerDone {
									stopped = true
									o.finish()
								}
							})
						},
					})
				})
			},
			Error: func(err error) {
				ser.do(func() {
					if stopped {
						return
					}
					stop()
					o.fail(err)
				})
			},
			Complete: func() {
				ser.do(func() {
					if stopped {
						return
					}
					outerDone = true
					if !innerActive {
						stopped = true
						o.finish()
					}
				})
			},
		}))

		return NewSubscription(func() {
			generation.Inc()
			outer.Dispose()
			ser.do(stop)
		})
	})
}

// Catch intercepts an error from src. The handler may emit fallback values
// through emit; the result then completes instead of failing.
func Catch[T any](src Observable[T], handler func(err error, emit func(T))) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		return src.Subscribe(Observer[T]{
			Next: o.emit,
			Error: func(err error) {
				handler(err, o.emit)
				o.finish()
			},
			Complete: o.finish,
		})
	})
}

// Share multicasts src to every subscriber through a single upstream
// subscription. The upstream is subscribed when the first observer arrives and
// disposed when the last one leaves. Values are not replayed.
func Share[T any](src Observable[T]) Observable[T] {
	return &shared[T]{src: src}
}

type shared[T any] struct {
	src Observable[T]

	mu      sync.Mutex
	subject *Subject[T]
	conn    Subscription
	refs    int
}

func (s *shared[T]) Subscribe(o Observer[T]) Subscription {
	s.mu.Lock()
	if s.subject == nil {
		s.subject = NewSubject[T]()
	}
	subject := s.subject
	sub := subject.Subscribe(o)
	s.refs++
	connect := s.refs == 1
	s.mu.Unlock()

	if connect {
		conn := s.src.Subscribe(Observer[T]{
			Next:     subject.Next,
			Error:    subject.Error,
			Complete: subject.Complete,
		})
		s.mu.Lock()
		if s.subject == subject {
			s.conn = conn
			conn = nil
		}
		s.mu.Unlock()
		if conn != nil {
			// Every observer left while we were connecting.
			conn.Dispose()
		}
	}

	return NewSubscription(func() {
		sub.Dispose()

		s.mu.Lock()
		if s.subject != subject {
			s.mu.Unlock()
			return
		}
		s.refs--
		var conn Subscription
		if s.refs == 0 {
			conn = s.conn
			s.conn = nil
			s.subject = nil
		}
		s.mu.Unlock()

		if conn != nil {
			conn.Dispose()
		}
	})
}
