package tui

import (
	"github.com/google/uuid"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
)

// base implements router.Caller against the window. Every screen embeds one.
type base struct {
	id     string
	title  string
	window *Window
	bag    rx.Bag
}

func (b *base) setup(w *Window, title string) {
	b.id = uuid.NewString()
	b.title = title
	b.window = w
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Title() string {
	return b.title
}

func (b *base) Present(target router.Screen, style router.Style) {
	b.window.present(target, style)
}

func (b *base) Dismiss() {
	b.window.dismiss(b.id)
}

func (b *base) Pop(toRoot bool) {
	b.window.pop(b.id, toRoot)
}

// container is the stack the screen lives in, so pushes land on it. Screens
// outside a stack present over themselves.
func (b *base) container(self router.Screen) router.Screen {
	if stack := b.window.stackOf(b.id); stack != nil {
		return stack
	}
	return self
}

func (b *base) release() {
	b.bag.Dispose()
}

// observe delivers the values of src to next on the window's update loop for
// as long as the screen is shown.
func observe[T any](b *base, src rx.Observable[T], next func(T)) {
	b.bag.Add(rx.ObserveOn(src, b.window.queue).Subscribe(rx.OnNext(next)))
}
