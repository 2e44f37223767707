package rx

import (
	"sync"

	"go.uber.org/atomic"
)

// Executor runs scheduled work somewhere else, typically on the loop that owns
// presentation state.
type Executor interface {
	Schedule(task func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(task func())

// Schedule implements Executor.
func (f ExecutorFunc) Schedule(task func()) {
	f(task)
}

// Immediate runs tasks on the calling goroutine.
var Immediate Executor = ExecutorFunc(func(task func()) { task() })

// Queue is an unbounded single-consumer executor.
//
// Any goroutine may Schedule work; the owner of the queue runs it with Drain.
// Ready fires whenever the queue goes from empty to non-empty, which lets an
// event loop wait for work without polling.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
	ready chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Schedule implements Executor. It never blocks.
func (q *Queue) Schedule(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready returns a channel that receives after work has been scheduled.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of tasks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs scheduled tasks in order until the queue is empty, including
// tasks scheduled by the tasks themselves. It returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		if len(tasks) == 0 {
			return ran
		}
		for _, task := range tasks {
			task()
			ran++
		}
	}
}

// ObserveOn delivers the notifications of src through ex.
// Notifications scheduled before the subscription is disposed but run after it
// are dropped.
func ObserveOn[T any](src Observable[T], ex Executor) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		var disposed atomic.Bool
		sub := src.Subscribe(Observer[T]{
			Next: func(v T) {
				ex.Schedule(func() {
					if !disposed.Load() {
						o.emit(v)
					}
				})
			},
			Error: func(err error) {
				ex.Schedule(func() {
					if !disposed.Load() {
						o.fail(err)
					}
				})
			},
			Complete: func() {
				ex.Schedule(func() {
					if !disposed.Load() {
						o.finish()
					}
				})
			},
		})
		return NewSubscription(func() {
			disposed.Store(true)
			sub.Dispose()
		})
	})
}
