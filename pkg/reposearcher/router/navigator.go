package router

import (
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/languagelist"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/login"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/repositorylist"
)

// Builder binds freshly built presentation logic to a new screen. A
// presentation surface implements one method per Scene variant.
type Builder interface {
	RepositoryList(nav *Navigator, vm *repositorylist.ViewModel) Screen
	LanguageList(nav *Navigator, vm *languagelist.ViewModel, scene LanguageList) Screen
	Repository(nav *Navigator, scene Repository) Screen
	Login(nav *Navigator, vm *login.ViewModel) Screen
	ErrorMessage(nav *Navigator, scene ErrorMessage) Screen
}

// Dependencies is everything the Navigator injects into the screens it builds.
type Dependencies struct {
	Repositories  repositorylist.Service
	Languages     languagelist.Service
	Authenticator login.Authenticator
	Localizer     *i18n.Localizer // nil uses i18n.Default()
	Builder       Builder
	Logger        *slog.Logger // nil uses reposearcher.Logger("router")
}

// Navigator resolves Scenes into screens and applies Transitions.
// It keeps no state between calls.
type Navigator struct {
	deps   Dependencies
	logger *slog.Logger
}

// New creates a Navigator. It panics if deps has no Builder.
func New(deps Dependencies) *Navigator {
	if deps.Builder == nil {
		panic("router: Dependencies.Builder is required")
	}
	if deps.Localizer == nil {
		deps.Localizer = i18n.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = reposearcher.Logger("router")
	}
	return &Navigator{deps: deps, logger: logger}
}

// Localizer returns the localizer screens should render with.
func (n *Navigator) Localizer() *i18n.Localizer {
	return n.deps.Localizer
}

// Resolve builds a fresh screen for scene. Every call builds new presentation
// logic and a new screen; nothing is cached.
func (n *Navigator) Resolve(scene Scene) Screen {
	var screen Screen

	switch s := scene.(type) {
	case RepositoryList:
		language := s.InitialLanguage
		if language == "" {
			language = constants.DefaultLanguage
		}
		vm := repositorylist.New(n.deps.Repositories, language,
			repositorylist.WithLogger(reposearcher.Logger("repositorylist")))
		screen = NewStack(n.deps.Builder.RepositoryList(n, vm))

	case LanguageList:
		vm := languagelist.New(n.deps.Languages, languagelist.Config{
			Filter:  s.Filter,
			Current: s.Current,
		}, reposearcher.Logger("languagelist"))
		screen = n.deps.Builder.LanguageList(n, vm, s)

	case Repository:
		screen = n.deps.Builder.Repository(n, s)

	case Login:
		vm := login.New(n.deps.Authenticator, n.deps.Localizer, reposearcher.Logger("login"))
		screen = n.deps.Builder.Login(n, vm)

	case ErrorMessage:
		if s.Title == "" {
			s.Title = n.deps.Localizer.T(i18n.ErrorTitle)
		}
		screen = n.deps.Builder.ErrorMessage(n, s)

	default:
		// Scene is sealed; reaching this is a build defect.
		panic(fmt.Sprintf("router: no resolver for scene %T", scene))
	}

	n.logger.Debug("resolved scene", "scene", scene.SceneName(), "screen", screen.ID())
	return screen
}

// Show resolves scene and applies transition, returning the new screen.
//
// caller may be nil only for Root and Custom. For Modal, Detail and Alert a
// nil caller, or one that is neither a Caller nor a *Stack, panics with a
// *PreconditionError.
func (n *Navigator) Show(scene Scene, caller Screen, transition Transition) Screen {
	switch t := transition.(type) {
	case Root:
		if t.Host == nil {
			panic(&PreconditionError{Scene: scene.SceneName(), Transition: t.TransitionName(), Reason: "no host"})
		}
		target := n.Resolve(scene)
		n.logger.Debug("show", "scene", scene.SceneName(), "transition", t.TransitionName(), "screen", target.ID())
		t.Host.SetRoot(target)
		return target

	case Custom:
		target := n.Resolve(scene)
		n.logger.Debug("show", "scene", scene.SceneName(), "transition", t.TransitionName(), "screen", target.ID())
		return target

	case Modal, Detail, Alert:
		if caller == nil {
			panic(&PreconditionError{Scene: scene.SceneName(), Transition: t.TransitionName(), Reason: "no caller"})
		}
		stack, isStack := caller.(*Stack)
		if isStack && stack == nil {
			panic(&PreconditionError{Scene: scene.SceneName(), Transition: t.TransitionName(), Reason: "no caller"})
		}
		presenter, isCaller := caller.(Caller)
		if !isStack && !isCaller {
			panic(&PreconditionError{Scene: scene.SceneName(), Transition: t.TransitionName(), Reason: fmt.Sprintf("%T cannot present", caller)})
		}

		target := n.Resolve(scene)
		n.logger.Debug("show", "scene", scene.SceneName(), "transition", t.TransitionName(),
			"screen", target.ID(), "caller", caller.ID())

		if isStack {
			stack.Push(target)
			return target
		}

		switch t.(type) {
		case Modal:
			presenter.Present(NewStack(target), StyleModal)
		case Detail:
			presenter.Present(NewStack(target), StyleDetail)
		default:
			presenter.Present(target, StyleAlert)
		}
		return target

	default:
		panic(fmt.Sprintf("router: no strategy for transition %T", transition))
	}
}

// Dismiss asks caller to take itself away. A nil caller is a no-op.
func (n *Navigator) Dismiss(caller Screen) {
	switch c := caller.(type) {
	case nil:
	case *Stack:
		c.Dismiss()
	case Caller:
		c.Dismiss()
	default:
		n.logger.Warn("dismiss ignored", "caller", fmt.Sprintf("%T", caller))
	}
}

// Pop removes the top screen, or everything above the root when toRoot is
// set, from the stack caller lives in. A nil caller is a no-op.
func (n *Navigator) Pop(caller Screen, toRoot bool) {
	switch c := caller.(type) {
	case nil:
	case *Stack:
		if toRoot {
			c.PopToRoot()
		} else {
			c.Pop()
		}
	case Caller:
		c.Pop(toRoot)
	default:
		n.logger.Warn("pop ignored", "caller", fmt.Sprintf("%T", caller))
	}
}
