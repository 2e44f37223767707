package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/login"
)

const (
	fieldUsername = iota
	fieldPasscode
)

type loginForm struct {
	base
	localizer *i18n.Localizer

	usernameText *rx.Subject[string]
	passcodeText *rx.Subject[string]
	trigger      *rx.Subject[struct{}]

	username      string
	passcode      string
	focus         int
	usernameValid bool
	passcodeValid bool
	canSubmit     bool
	loading       bool
	message       string
}

func newLogin(w *Window, nav *router.Navigator, vm *login.ViewModel) *loginForm {
	s := &loginForm{
		localizer:    nav.Localizer(),
		usernameText: rx.NewSubject[string](),
		passcodeText: rx.NewSubject[string](),
		trigger:      rx.NewSubject[struct{}](),
	}
	s.setup(w, nav.Localizer().T(i18n.LoginTitle))

	out := vm.Transform(login.Input{
		Username:     s.usernameText,
		Passcode:     s.passcodeText,
		LoginTrigger: s.trigger,
	})

	observe(&s.base, out.UsernameValid, func(ok bool) { s.usernameValid = ok })
	observe(&s.base, out.PasscodeValid, func(ok bool) { s.passcodeValid = ok })
	observe(&s.base, out.EverythingValid, func(ok bool) { s.canSubmit = ok })
	observe(&s.base, out.Message, func(message string) { s.message = message })
	observe(&s.base, out.Loading, func(loading bool) { s.loading = loading })
	observe(&s.base, out.LoggedIn, func(session reposearcher.Session) {
		w.logger.Info("logged in", "login", session.Login)
		if w.options.OnLogin != nil {
			w.options.OnLogin(session)
		}
		nav.Show(router.RepositoryList{InitialLanguage: w.options.InitialLanguage}, nil, router.Root{Host: w})
	})
	return s
}

func (s *loginForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		s.focus = 1 - s.focus
	case tea.KeyEnter:
		if s.focus == fieldUsername {
			s.focus = fieldPasscode
			return nil
		}
		if s.canSubmit && !s.loading {
			s.trigger.Next(struct{}{})
		}
	case tea.KeyBackspace:
		s.edit(func(text string) string {
			if r := []rune(text); len(r) > 0 {
				return string(r[:len(r)-1])
			}
			return text
		})
	case tea.KeyRunes:
		s.edit(func(text string) string { return text + string(msg.Runes) })
	}
	return nil
}

// edit changes the focused field. The last message goes away; the check of
// the new text brings back whatever still applies.
func (s *loginForm) edit(change func(string) string) {
	s.message = ""
	if s.focus == fieldUsername {
		s.username = change(s.username)
		s.usernameText.Next(s.username)
		return
	}
	s.passcode = change(s.passcode)
	s.passcodeText.Next(s.passcode)
}

func (s *loginForm) Hint() string {
	return s.localizer.T(i18n.HintLogin)
}

func (s *loginForm) View(_, _ int) string {
	st := currentStyles()

	box := func(focused, valid bool, text string) string {
		style := st.field
		if focused {
			style = st.focused
		}
		mark := " "
		if valid {
			mark = "✓"
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, style.Render(text), " ", mark)
	}

	var b strings.Builder
	b.WriteString(st.title.Render(s.title))
	b.WriteString("\n")
	b.WriteString(box(s.focus == fieldUsername, s.usernameValid, s.username))
	b.WriteString("\n")
	b.WriteString(box(s.focus == fieldPasscode, s.passcodeValid, strings.Repeat("•", len([]rune(s.passcode)))))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(st.dim.Render(s.localizer.T(i18n.Loading)))
	case s.message != "":
		b.WriteString(st.error.Render(s.message))
	}
	return b.String()
}
