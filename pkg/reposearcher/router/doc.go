// Package router provides declarative navigation between screens.
//
// A screen never constructs another screen. It names where it wants to go
// with a Scene and how with a Transition, and hands both to a Navigator:
//
//	nav.Show(router.Repository{URL: url}, screen, router.Detail{})
//
// The Navigator resolves the Scene into a fresh screen: it builds the
// presentation logic for that scene, injects the state the Scene carries, and
// asks the Builder to bind it to a new screen. It then applies the Transition.
//
// # Scenes and Transitions
//
// Both are closed sets. Scene and Transition are interfaces with an unexported
// method, so only the variants in this package satisfy them. Builder has one
// method per Scene variant: adding a variant does not compile until every
// presentation surface can build it.
//
// # Transitions
//
//   - Root installs the screen as the only root of a Host. It needs no caller.
//   - Modal, Detail and Alert need a caller and panic with a *PreconditionError
//     without one. When the caller is a *Stack the screen is pushed onto it.
//     Otherwise Modal and Detail wrap the screen in a new Stack and ask the
//     caller to present it; Alert presents the screen as is.
//   - Custom only resolves. The caller presents the returned screen itself.
//
// Dismiss and Pop undo presentation. They never resolve anything.
//
// # Stacks
//
// A Stack is a screen holding other screens, top last. The repository list is
// always resolved inside a Stack so that screens shown from it can be pushed.
package router
