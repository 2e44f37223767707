package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
)

// alert is a blocking message box. It has a single dismiss action.
type alert struct {
	base
	localizer *i18n.Localizer
	nav       *router.Navigator
	message   string
}

func newAlert(w *Window, nav *router.Navigator, scene router.ErrorMessage) *alert {
	s := &alert{localizer: nav.Localizer(), nav: nav, message: scene.Message}
	s.setup(w, scene.Title)
	return s
}

func (s *alert) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		s.nav.Dismiss(s)
	}
	return nil
}

func (s *alert) Hint() string {
	return s.localizer.T(i18n.HintAlert)
}

func (s *alert) View(width, _ int) string {
	st := currentStyles()
	inner := max(min(width-8, 60), 10)
	content := lipgloss.JoinVertical(lipgloss.Left,
		st.error.Bold(true).Render(s.title),
		"",
		st.text.Width(inner).Render(s.message),
	)
	return st.alert.Render(content)
}
