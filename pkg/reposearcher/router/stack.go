package router

import "github.com/google/uuid"

// Stack is a navigation container: a Screen that shows the top of a pile of
// screens. The bottom screen is the root and is never popped.
//
// Showing a scene with a Stack as the caller pushes onto it. Stacks are owned
// by the presentation loop and are not safe for concurrent use.
type Stack struct {
	id        string
	screens   []Screen
	onRemove  func(Screen)
	onDismiss func()
}

// NewStack creates a stack with root at the bottom.
func NewStack(root Screen) *Stack {
	s := &Stack{id: uuid.NewString()}
	if root != nil {
		s.screens = append(s.screens, root)
	}
	return s
}

// OnRemove registers fn to run for every screen popped off the stack, so the
// surface can release whatever the screen holds.
func (s *Stack) OnRemove(fn func(Screen)) {
	s.onRemove = fn
}

// OnDismiss registers fn to run when the stack is asked to dismiss itself.
func (s *Stack) OnDismiss(fn func()) {
	s.onDismiss = fn
}

// ID implements Screen.
func (s *Stack) ID() string {
	return s.id
}

// Title implements Screen. It is the title of the top screen.
func (s *Stack) Title() string {
	if top := s.Peek(); top != nil {
		return top.Title()
	}
	return ""
}

// Push adds a screen on top.
func (s *Stack) Push(screen Screen) {
	s.screens = append(s.screens, screen)
}

// Pop removes and returns the top screen.
// Returns nil if only the root is left.
func (s *Stack) Pop() Screen {
	if len(s.screens) <= 1 {
		return nil
	}
	top := s.screens[len(s.screens)-1]
	s.screens[len(s.screens)-1] = nil
	s.screens = s.screens[:len(s.screens)-1]
	if s.onRemove != nil {
		s.onRemove(top)
	}
	return top
}

// PopToRoot removes every screen above the root and returns them, top first.
func (s *Stack) PopToRoot() []Screen {
	var removed []Screen
	for {
		top := s.Pop()
		if top == nil {
			return removed
		}
		removed = append(removed, top)
	}
}

// Peek returns the top screen without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Root returns the bottom screen, or nil for an empty stack.
func (s *Stack) Root() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[0]
}

// Contains reports whether a screen with the given id is on the stack.
func (s *Stack) Contains(id string) bool {
	for _, screen := range s.screens {
		if screen.ID() == id {
			return true
		}
	}
	return false
}

// Screens returns the screens bottom first.
func (s *Stack) Screens() []Screen {
	return append([]Screen(nil), s.screens...)
}

// IsEmpty returns true if the stack has no screens.
func (s *Stack) IsEmpty() bool {
	return len(s.screens) == 0
}

// Len returns the number of screens on the stack.
func (s *Stack) Len() int {
	return len(s.screens)
}

// Dismiss asks whoever presented the stack to take it away.
func (s *Stack) Dismiss() {
	if s.onDismiss != nil {
		s.onDismiss()
	}
}
