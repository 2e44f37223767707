package rx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recorder collects notifications in arrival order.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Next: func(v T) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.values = append(r.values, v)
		},
		Error: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.err = err
		},
		Complete: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completed = true
		},
	}
}

func (r *recorder[T]) got() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// pending is a Single whose result is supplied by the test.
type pending[T any] struct {
	mu    sync.Mutex
	calls []func(T, error)
}

func (p *pending[T]) single() Single[T] {
	return NewSingle(func(_ context.Context, done func(T, error)) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.calls = append(p.calls, done)
	})
}

func (p *pending[T]) resolve(i int, v T, err error) {
	p.mu.Lock()
	done := p.calls[i]
	p.mu.Unlock()
	done(v, err)
}

func TestSubjectIsHotWithoutReplay(t *testing.T) {
	s := NewSubject[int]()
	s.Next(1)

	var early, late recorder[int]
	s.Subscribe(early.observer())
	s.Next(2)
	s.Subscribe(late.observer())
	s.Next(3)

	if diff := cmp.Diff([]int{2, 3}, early.got()); diff != "" {
		t.Errorf("early subscriber (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3}, late.got()); diff != "" {
		t.Errorf("late subscriber (-want +got):\n%s", diff)
	}
}

func TestSubjectDisposeIsIdempotent(t *testing.T) {
	s := NewSubject[string]()
	var r recorder[string]
	sub := s.Subscribe(r.observer())

	s.Next("a")
	sub.Dispose()
	sub.Dispose()
	s.Next("b")

	if diff := cmp.Diff([]string{"a"}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if s.HasObservers() {
		t.Error("subject still has observers after dispose")
	}
}

func TestSubjectTerminalNotifications(t *testing.T) {
	s := NewSubject[int]()
	var before, after recorder[int]
	s.Subscribe(before.observer())

	boom := errors.New("boom")
	s.Error(boom)
	s.Next(1)
	s.Subscribe(after.observer())

	if !errors.Is(before.err, boom) || !errors.Is(after.err, boom) {
		t.Fatalf("expected both observers to see the error, got %v and %v", before.err, after.err)
	}
	if len(before.got()) != 0 {
		t.Errorf("values after error should be dropped, got %v", before.got())
	}
}

func TestSubjectReentrantEmissionKeepsOrder(t *testing.T) {
	s := NewSubject[int]()
	var r recorder[int]

	s.Subscribe(OnNext(func(v int) {
		if v == 1 {
			s.Next(2)
		}
	}))
	s.Subscribe(r.observer())
	s.Next(1)

	if diff := cmp.Diff([]int{1, 2}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSubjectConcurrentProducersAreSerialized(t *testing.T) {
	s := NewSubject[int]()
	var (
		inFlight int
		overlap  bool
		mu       sync.Mutex
		count    int
	)
	s.Subscribe(OnNext(func(int) {
		mu.Lock()
		inFlight++
		if inFlight > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(time.Microsecond)

		mu.Lock()
		inFlight--
		count++
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Next(i*100 + j)
			}
		}(i)
	}
	wg.Wait()

	// The last producer to find the queue idle drains it before returning.
	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("deliveries overlapped")
	}
	if count != 400 {
		t.Errorf("delivered %d values, want 400", count)
	}
}

func TestBehaviorReplaysLatestToNewSubscribers(t *testing.T) {
	b := NewBehavior("Swift")
	b.Next("Objective-C")

	var r recorder[string]
	b.Subscribe(r.observer())

	if diff := cmp.Diff([]string{"Objective-C"}, r.got()); diff != "" {
		t.Errorf("late subscriber (-want +got):\n%s", diff)
	}

	b.Next("Go")
	if diff := cmp.Diff([]string{"Objective-C", "Go"}, r.got()); diff != "" {
		t.Errorf("after update (-want +got):\n%s", diff)
	}
	if got := b.Value(); got != "Go" {
		t.Errorf("Value() = %q, want Go", got)
	}
}

func TestAsObservableHidesBehavior(t *testing.T) {
	b := NewBehavior("Swift")
	view := AsObservable[string](b)

	if _, ok := view.(*Behavior[string]); ok {
		t.Fatal("AsObservable returned the Behavior itself")
	}

	var r recorder[string]
	sub := view.Subscribe(r.observer())
	b.Next("Go")
	sub.Dispose()
	b.Next("Java")

	if diff := cmp.Diff([]string{"Swift", "Go"}, r.got()); diff != "" {
		t.Errorf("forwarded values (-want +got):\n%s", diff)
	}
}

func TestBehaviorBroadcastsInArrivalOrder(t *testing.T) {
	b := NewBehavior(0)
	var first, second recorder[int]
	b.Subscribe(first.observer())
	b.Subscribe(second.observer())

	for i := 1; i <= 3; i++ {
		b.Next(i)
	}

	want := []int{0, 1, 2, 3}
	if diff := cmp.Diff(want, first.got()); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, second.got()); diff != "" {
		t.Errorf("second (-want +got):\n%s", diff)
	}
}

func TestBehaviorSubscribeInsideEmission(t *testing.T) {
	b := NewBehavior(1)
	var inner recorder[int]

	var once sync.Once
	b.Subscribe(OnNext(func(v int) {
		if v == 2 {
			once.Do(func() { b.Subscribe(inner.observer()) })
		}
	}))
	b.Next(2)
	b.Next(3)

	if diff := cmp.Diff([]int{2, 3}, inner.got()); diff != "" {
		t.Errorf("nested subscriber (-want +got):\n%s", diff)
	}
}

func TestSingleDeliversOnce(t *testing.T) {
	var r recorder[int]
	Just(7).Subscribe(r.observer())

	if diff := cmp.Diff([]int{7}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if !r.completed {
		t.Error("single did not complete")
	}

	var f recorder[int]
	boom := errors.New("boom")
	Fail[int](boom).Subscribe(f.observer())
	if !errors.Is(f.err, boom) || f.completed || len(f.got()) != 0 {
		t.Errorf("unexpected failure delivery: values=%v err=%v completed=%v", f.got(), f.err, f.completed)
	}
}

func TestSingleDropsResultAfterDispose(t *testing.T) {
	var p pending[string]
	var r recorder[string]

	sub := p.single().Subscribe(r.observer())
	sub.Dispose()
	p.resolve(0, "late", nil)

	if len(r.got()) != 0 || r.completed {
		t.Errorf("disposed single delivered %v", r.got())
	}
}

func TestSingleCancelsContextOnDispose(t *testing.T) {
	cancelled := make(chan struct{})
	s := NewSingle(func(ctx context.Context, done func(int, error)) {
		go func() {
			<-ctx.Done()
			close(cancelled)
		}()
	})

	s.Subscribe(Observer[int]{}).Dispose()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestSingleAwait(t *testing.T) {
	s := NewSingle(func(_ context.Context, done func(string, error)) {
		go done("ok", nil)
	})
	got, err := s.Await(context.Background())
	if err != nil || got != "ok" {
		t.Fatalf("Await() = %q, %v", got, err)
	}
}

func TestCombineLatestPairsWithMostRecent(t *testing.T) {
	reload := NewSubject[struct{}]()
	language := NewBehavior("Swift")

	var r recorder[string]
	CombineLatest2[struct{}, string, string](reload, language, func(_ struct{}, l string) string {
		return l
	}).Subscribe(r.observer())

	if len(r.got()) != 0 {
		t.Fatalf("emitted before reload: %v", r.got())
	}

	reload.Next(struct{}{})
	language.Next("Go")
	reload.Next(struct{}{})

	if diff := cmp.Diff([]string{"Swift", "Go", "Go"}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestCombineLatestCompletesWhenBothComplete(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	var r recorder[int]
	CombineLatest2[int, int, int](a, b, func(x, y int) int { return x + y }).Subscribe(r.observer())

	a.Next(1)
	b.Next(2)
	a.Complete()
	b.Next(3)
	if r.completed {
		t.Fatal("completed while b is still live")
	}
	b.Complete()

	if diff := cmp.Diff([]int{3, 4}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if !r.completed {
		t.Error("did not complete")
	}
}

func TestWithLatestFromDropsTriggersBeforeLatest(t *testing.T) {
	trigger := NewSubject[struct{}]()
	latest := NewSubject[string]()

	var r recorder[string]
	WithLatestFrom[struct{}, string, string](trigger, latest, func(_ struct{}, s string) string {
		return s
	}).Subscribe(r.observer())

	trigger.Next(struct{}{})
	latest.Next("a")
	latest.Next("b")
	trigger.Next(struct{}{})

	if diff := cmp.Diff([]string{"b"}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSwitchMapDiscardsSupersededResults(t *testing.T) {
	src := NewSubject[string]()
	var p pending[string]

	var r recorder[string]
	SwitchMap[string, string](src, func(q string) Observable[string] {
		return p.single()
	}).Subscribe(r.observer())

	src.Next("first")
	src.Next("second")

	p.resolve(1, "second result", nil)
	p.resolve(0, "first result", nil)

	if diff := cmp.Diff([]string{"second result"}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSwitchMapDiscardsSupersededFailure(t *testing.T) {
	src := NewSubject[int]()
	var p pending[int]

	var r recorder[int]
	SwitchMap[int, int](src, func(int) Observable[int] {
		return p.single()
	}).Subscribe(r.observer())

	src.Next(1)
	src.Next(2)
	p.resolve(0, 0, errors.New("stale failure"))
	p.resolve(1, 2, nil)

	if r.err != nil {
		t.Fatalf("stale failure leaked: %v", r.err)
	}
	if diff := cmp.Diff([]int{2}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSwitchMapWithCatchSurvivesFailures(t *testing.T) {
	src := NewSubject[int]()
	var r recorder[[]int]

	SwitchMap[int, []int](src, func(n int) Observable[[]int] {
		var inner Observable[[]int] = Just([]int{n})
		if n%2 == 0 {
			inner = Fail[[]int](errors.New("even"))
		}
		return Catch(inner, func(_ error, emit func([]int)) {
			emit([]int{})
		})
	}).Subscribe(r.observer())

	src.Next(1)
	src.Next(2)
	src.Next(3)

	want := [][]int{{1}, {}, {3}}
	if diff := cmp.Diff(want, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if r.err != nil || r.completed {
		t.Errorf("pipeline terminated: err=%v completed=%v", r.err, r.completed)
	}
}

func TestSwitchMapFromGoroutines(t *testing.T) {
	src := NewSubject[int]()
	results := make(chan int, 4)

	SwitchMap[int, int](src, func(n int) Observable[int] {
		return NewSingle(func(_ context.Context, done func(int, error)) {
			go func() {
				time.Sleep(time.Duration(5-n) * 5 * time.Millisecond)
				done(n, nil)
			}()
		})
	}).Subscribe(OnNext(func(v int) { results <- v }))

	src.Next(1)
	src.Next(2)
	src.Next(3)

	select {
	case v := <-results:
		if v != 3 {
			t.Fatalf("got %d, want only the latest result 3", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no result")
	}

	select {
	case v := <-results:
		t.Fatalf("unexpected extra result %d", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShareSubscribesUpstreamOnce(t *testing.T) {
	src := NewSubject[int]()
	calls := 0
	shared := Share(Map[int, int](src, func(v int) int {
		calls++
		return v * 10
	}))

	var a, b recorder[int]
	subA := shared.Subscribe(a.observer())
	subB := shared.Subscribe(b.observer())
	src.Next(1)

	if calls != 1 {
		t.Errorf("mapper ran %d times, want 1", calls)
	}
	if diff := cmp.Diff([]int{10}, b.got()); diff != "" {
		t.Errorf("second subscriber (-want +got):\n%s", diff)
	}

	subA.Dispose()
	subB.Dispose()
	if src.HasObservers() {
		t.Error("upstream still subscribed after last observer left")
	}
}

func TestMergeAndFilter(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	var r recorder[int]
	Filter(Merge[int](a, b), func(v int) bool { return v > 0 }).Subscribe(r.observer())

	a.Next(1)
	b.Next(-1)
	b.Next(2)
	a.Next(3)

	if diff := cmp.Diff([]int{1, 2, 3}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestObserveOnQueue(t *testing.T) {
	q := NewQueue()
	s := NewSubject[int]()
	var r recorder[int]
	sub := ObserveOn[int](s, q).Subscribe(r.observer())

	s.Next(1)
	s.Next(2)
	if len(r.got()) != 0 {
		t.Fatal("delivered before drain")
	}

	select {
	case <-q.Ready():
	default:
		t.Fatal("queue did not signal readiness")
	}

	if n := q.Drain(); n != 2 {
		t.Errorf("Drain() ran %d tasks, want 2", n)
	}
	if diff := cmp.Diff([]int{1, 2}, r.got()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}

	s.Next(3)
	sub.Dispose()
	q.Drain()
	if diff := cmp.Diff([]int{1, 2}, r.got()); diff != "" {
		t.Errorf("delivered after dispose (-want +got):\n%s", diff)
	}
}

func TestBagDisposesEverything(t *testing.T) {
	var bag Bag
	disposed := 0
	bag.Add(NewSubscription(func() { disposed++ }), NewSubscription(func() { disposed++ }))
	bag.Dispose()
	bag.Add(NewSubscription(func() { disposed++ }))

	if disposed != 3 {
		t.Errorf("disposed %d, want 3", disposed)
	}
	if bag.Len() != 0 {
		t.Errorf("bag still holds %d subscriptions", bag.Len())
	}
}
