package router

import "fmt"

// PreconditionError is the panic value for a transition that cannot be
// carried out, such as Modal without a caller. It is a programming error:
// the screen asking for the transition is wired wrong.
type PreconditionError struct {
	Scene      string
	Transition string
	Reason     string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("router: %s transition to %s: %s", e.Transition, e.Scene, e.Reason)
}
