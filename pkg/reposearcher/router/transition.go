package router

// Style is how a caller presents a screen.
type Style int

const (
	StyleModal  Style = iota // Stacked over the caller
	StyleDetail              // Alongside the caller
	StyleAlert               // Blocking overlay
)

func (s Style) String() string {
	switch s {
	case StyleModal:
		return "modal"
	case StyleDetail:
		return "detail"
	case StyleAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// Transition is how a resolved screen is put in front of the user.
type Transition interface {
	TransitionName() string
	isTransition()
}

// Root replaces everything in Host with the new screen.
type Root struct {
	Host Host
}

// Modal presents the screen in a new Stack over the caller.
type Modal struct{}

// Detail presents the screen in a new Stack next to the caller.
type Detail struct{}

// Alert presents the screen as a blocking overlay.
type Alert struct{}

// Custom resolves the screen and leaves presenting it to the caller.
type Custom struct{}

func (Root) TransitionName() string   { return "root" }
func (Modal) TransitionName() string  { return "modal" }
func (Detail) TransitionName() string { return "detail" }
func (Alert) TransitionName() string  { return "alert" }
func (Custom) TransitionName() string { return "custom" }

func (Root) isTransition()   {}
func (Modal) isTransition()  {}
func (Detail) isTransition() {}
func (Alert) isTransition()  {}
func (Custom) isTransition() {}
