// Package tui presents reposearcher in a terminal with bubbletea.
//
// Window is the bubbletea model and the router.Host. It keeps the presented
// screens as a pile of layers: the root, then every modal, detail or alert
// presented over it. Screens observe their Output streams on the window's
// rx.Queue, which the bubbletea update loop drains, so all screen state is
// only ever touched from that loop.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// styleRoot marks the bottom layer; it was set by SetRoot, not presented.
const styleRoot router.Style = -1

type layer struct {
	screen router.Screen
	style  router.Style
}

// view is a screen the window can draw and route keys to.
type view interface {
	router.Caller
	Update(msg tea.KeyMsg) tea.Cmd
	View(width, height int) string
	Hint() string
	release()
}

type workMsg struct{}

// Options configures a Window.
type Options struct {
	InitialLanguage string                     // Language the repository list opens with after login
	OnLogin         func(reposearcher.Session) // Called on the update loop after a successful login
	Logger          *slog.Logger               // nil uses reposearcher.Logger("tui")
}

// Window is the bubbletea model hosting every screen.
type Window struct {
	queue    *rx.Queue
	layers   []layer
	width    int
	height   int
	quitting bool
	options  Options
	logger   *slog.Logger
}

// NewWindow creates an empty Window. Show a scene with router.Root to give it
// something to draw.
func NewWindow(options Options) *Window {
	logger := options.Logger
	if logger == nil {
		logger = reposearcher.Logger("tui")
	}
	return &Window{
		queue:   rx.NewQueue(),
		width:   defaultWidth,
		height:  defaultHeight,
		options: options,
		logger:  logger,
	}
}

// Builder returns the router.Builder that binds screens to this window.
func (w *Window) Builder() router.Builder {
	return builder{window: w}
}

// Queue returns the executor screens observe their outputs on.
func (w *Window) Queue() *rx.Queue {
	return w.queue
}

// SetRoot implements router.Host. Everything presented before is released.
func (w *Window) SetRoot(screen router.Screen) {
	for i := len(w.layers) - 1; i >= 0; i-- {
		w.release(w.layers[i].screen)
	}
	w.layers = w.layers[:0]
	w.push(screen, styleRoot)
	w.logger.Debug("root set", "screen", screen.ID(), "title", screen.Title())
}

// Layers returns the number of presented layers, the root included.
func (w *Window) Layers() int {
	return len(w.layers)
}

// Top returns the screen keys are routed to, or nil when nothing is shown.
func (w *Window) Top() router.Screen {
	if len(w.layers) == 0 {
		return nil
	}
	if v := topView(w.layers[len(w.layers)-1].screen); v != nil {
		return v
	}
	return nil
}

// Close releases every presented screen.
func (w *Window) Close() {
	for i := len(w.layers) - 1; i >= 0; i-- {
		w.release(w.layers[i].screen)
	}
	w.layers = nil
}

// Run shows the window until the user quits or ctx is cancelled.
func Run(ctx context.Context, w *Window) error {
	defer w.Close()
	_, err := tea.NewProgram(w, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (w *Window) Init() tea.Cmd {
	return w.waitForWork()
}

func (w *Window) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height

	case workMsg:
		w.queue.Drain()
		cmd = w.waitForWork()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return w, tea.Quit
		}
		if top := topView(w.topLayer()); top != nil {
			cmd = top.Update(msg)
		}
		// Reactions that were scheduled synchronously show up in this frame.
		w.queue.Drain()
	}

	if w.quitting {
		return w, tea.Quit
	}
	return w, cmd
}

func (w *Window) View() string {
	if len(w.layers) == 0 {
		return ""
	}
	st := currentStyles()
	bodyHeight := max(w.height-1, 1)

	top := w.layers[len(w.layers)-1]
	body := ""
	if top.style == router.StyleAlert {
		card := ""
		if v := topView(top.screen); v != nil {
			card = v.View(w.width, bodyHeight)
		}
		body = lipgloss.Place(w.width, bodyHeight, lipgloss.Center, lipgloss.Center, card)
	} else if v := topView(top.screen); v != nil {
		body = lipgloss.NewStyle().Width(w.width).Height(bodyHeight).MaxHeight(bodyHeight).
			Render(v.View(w.width, bodyHeight))
	}

	hint := ""
	if v := topView(top.screen); v != nil {
		hint = v.Hint()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, st.hint.Render(hint))
}

func (w *Window) waitForWork() tea.Cmd {
	ready := w.queue.Ready()
	return func() tea.Msg {
		<-ready
		return workMsg{}
	}
}

func (w *Window) topLayer() router.Screen {
	if len(w.layers) == 0 {
		return nil
	}
	return w.layers[len(w.layers)-1].screen
}

// present is how a view shows another screen over itself.
func (w *Window) present(target router.Screen, style router.Style) {
	w.push(target, style)
	w.logger.Debug("presented", "screen", target.ID(), "style", style.String())
}

func (w *Window) push(screen router.Screen, style router.Style) {
	if stack, ok := screen.(*router.Stack); ok {
		stack.OnRemove(w.release)
		stack.OnDismiss(func() { w.dismiss(stack.ID()) })
	}
	w.layers = append(w.layers, layer{screen: screen, style: style})
}

// dismiss removes the layer holding id and everything presented over it.
// Dismissing the root quits.
func (w *Window) dismiss(id string) {
	i := w.layerOf(id)
	if i < 0 {
		w.logger.Warn("dismiss of a screen that is not shown", "screen", id)
		return
	}
	for j := len(w.layers) - 1; j >= i; j-- {
		w.release(w.layers[j].screen)
	}
	w.layers = w.layers[:i]
	if i == 0 {
		w.quitting = true
	}
}

// pop pops the stack that holds id.
func (w *Window) pop(id string, toRoot bool) {
	stack := w.stackOf(id)
	if stack == nil {
		w.logger.Warn("pop outside a stack", "screen", id)
		return
	}
	if toRoot {
		stack.PopToRoot()
	} else {
		stack.Pop()
	}
}

func (w *Window) layerOf(id string) int {
	for i := len(w.layers) - 1; i >= 0; i-- {
		screen := w.layers[i].screen
		if screen.ID() == id {
			return i
		}
		if stack, ok := screen.(*router.Stack); ok && stack.Contains(id) {
			return i
		}
	}
	return -1
}

func (w *Window) stackOf(id string) *router.Stack {
	if i := w.layerOf(id); i >= 0 {
		if stack, ok := w.layers[i].screen.(*router.Stack); ok {
			return stack
		}
	}
	return nil
}

func (w *Window) release(screen router.Screen) {
	switch s := screen.(type) {
	case *router.Stack:
		for _, child := range s.Screens() {
			w.release(child)
		}
	case view:
		s.release()
	}
}

func topView(screen router.Screen) view {
	switch s := screen.(type) {
	case *router.Stack:
		return topView(s.Peek())
	case view:
		return s
	}
	return nil
}
