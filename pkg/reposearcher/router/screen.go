package router

// Screen is anything the Navigator can resolve a Scene into.
type Screen interface {
	ID() string
	Title() string
}

// Host owns the root of the presentation.
type Host interface {
	SetRoot(screen Screen)
}

// Caller is a screen that can present others over itself and take itself
// away again. A *Stack is accepted wherever a caller is expected too.
type Caller interface {
	Screen
	Present(target Screen, style Style)
	Dismiss()
	Pop(toRoot bool)
}
