package tui

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
)

// repository shows where a repository lives on the web.
type repository struct {
	base
	localizer *i18n.Localizer
	nav       *router.Navigator
	url       string
}

func newRepository(w *Window, nav *router.Navigator, scene router.Repository) *repository {
	s := &repository{localizer: nav.Localizer(), nav: nav, url: scene.URL}
	s.setup(w, repositoryName(scene.URL))
	return s
}

// repositoryName turns https://github.com/owner/name into owner/name.
func repositoryName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	return strings.Trim(u.Path, "/")
}

func (s *repository) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace", "left", "h":
		s.nav.Pop(s.container(s), false)
	}
	return nil
}

func (s *repository) Hint() string {
	return s.localizer.T(i18n.HintRepository)
}

func (s *repository) View(width, _ int) string {
	st := currentStyles()
	return st.title.Render(s.title) + "\n" + st.text.Width(width).Render(s.url)
}
