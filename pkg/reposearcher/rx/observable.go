package rx

// Observer receives stream notifications.
// Any of the callbacks may be nil, in which case that notification is ignored.
type Observer[T any] struct {
	Next     func(T)     // Called for every value
	Error    func(error) // Called once if the stream fails
	Complete func()      // Called once if the stream finishes normally
}

// OnNext returns an Observer that only handles values.
func OnNext[T any](fn func(T)) Observer[T] {
	return Observer[T]{Next: fn}
}

func (o Observer[T]) emit(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o Observer[T]) fail(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o Observer[T]) finish() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Observable is anything that can be subscribed to.
type Observable[T any] interface {
	Subscribe(o Observer[T]) Subscription
}

// Func adapts a subscribe function to the Observable interface.
// Each call to Subscribe runs the function again, so a Func is cold.
type Func[T any] func(o Observer[T]) Subscription

// Subscribe implements Observable.
func (f Func[T]) Subscribe(o Observer[T]) Subscription {
	return f(o)
}

// AsObservable hides the concrete type of src, so a holder of the result can
// only subscribe. Use it to hand out a Behavior or Subject without its Next.
func AsObservable[T any](src Observable[T]) Observable[T] {
	return Func[T](src.Subscribe)
}

// Never returns an Observable that never emits and never terminates.
func Never[T any]() Observable[T] {
	return Func[T](func(Observer[T]) Subscription {
		return Disposed()
	})
}

// Empty returns an Observable that completes immediately.
func Empty[T any]() Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		o.finish()
		return Disposed()
	})
}

// Of returns an Observable that emits the given values in order and completes.
func Of[T any](values ...T) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		for _, v := range values {
			o.emit(v)
		}
		o.finish()
		return Disposed()
	})
}
