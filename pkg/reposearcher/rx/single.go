package rx

import (
	"context"

	"go.uber.org/atomic"
)

// Single is a one-shot result stream: it delivers one value followed by
// completion, or one error, and nothing after that.
//
// A Single is cold. Each Subscribe calls the producer again with a fresh
// context that is cancelled when the subscription is disposed. Results reported
// after disposal are dropped.
type Single[T any] struct {
	produce func(ctx context.Context, done func(T, error))
}

// NewSingle creates a Single from a producer. The producer must call done at
// most once; it may do so synchronously or from another goroutine.
func NewSingle[T any](produce func(ctx context.Context, done func(T, error))) Single[T] {
	return Single[T]{produce: produce}
}

// Just returns a Single that succeeds synchronously with v.
func Just[T any](v T) Single[T] {
	return NewSingle(func(_ context.Context, done func(T, error)) {
		done(v, nil)
	})
}

// Fail returns a Single that fails synchronously with err.
func Fail[T any](err error) Single[T] {
	return NewSingle(func(_ context.Context, done func(T, error)) {
		var zero T
		done(zero, err)
	})
}

// Subscribe implements Observable.
func (s Single[T]) Subscribe(o Observer[T]) Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := NewSubscription(cancel)

	if s.produce == nil {
		cancel()
		o.finish()
		return sub
	}

	var delivered atomic.Bool
	s.produce(ctx, func(v T, err error) {
		if ctx.Err() != nil || !delivered.CompareAndSwap(false, true) {
			return
		}
		defer cancel()
		if err != nil {
			o.fail(err)
			return
		}
		o.emit(v)
		o.finish()
	})

	return sub
}

// Await subscribes and blocks until the result arrives or ctx is done.
// It is meant for command line code; the presentation logic never blocks.
func (s Single[T]) Await(ctx context.Context) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)

	sub := s.Subscribe(Observer[T]{
		Next:  func(v T) { ch <- result{v: v} },
		Error: func(err error) { ch <- result{err: err} },
	})
	defer sub.Dispose()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
