package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/repositorylist"
)

type repositoryList struct {
	base
	localizer *i18n.Localizer

	reload           *rx.Subject[struct{}]
	chooseLanguage   *rx.Subject[struct{}]
	selectRepository *rx.Subject[repositorylist.RepositoryViewModel]

	rows    []repositorylist.RepositoryViewModel
	cursor  int
	offset  int
	loading bool
}

func newRepositoryList(w *Window, nav *router.Navigator, vm *repositorylist.ViewModel) *repositoryList {
	s := &repositoryList{
		localizer:        nav.Localizer(),
		reload:           rx.NewSubject[struct{}](),
		chooseLanguage:   rx.NewSubject[struct{}](),
		selectRepository: rx.NewSubject[repositorylist.RepositoryViewModel](),
	}
	s.setup(w, vm.CurrentLanguage())

	out := vm.Transform(repositorylist.Input{
		Reload:           s.reload,
		ChooseLanguage:   s.chooseLanguage,
		SelectRepository: s.selectRepository,
	})

	observe(&s.base, out.Title, func(title string) { s.title = title })
	observe(&s.base, out.Loading, func(loading bool) { s.loading = loading })
	observe(&s.base, out.Repositories, func(rows []repositorylist.RepositoryViewModel) {
		s.rows = rows
		s.cursor = 0
		s.offset = 0
	})
	observe(&s.base, out.AlertMessage, func(message string) {
		nav.Show(router.ErrorMessage{Message: message}, s, router.Alert{})
	})
	observe(&s.base, out.ShowLanguageList, func(struct{}) {
		nav.Show(router.LanguageList{
			Current: vm.CurrentLanguage(),
			Choose:  vm.SetCurrentLanguage,
		}, s, router.Modal{})
	})
	observe(&s.base, out.ShowRepository, func(url string) {
		nav.Show(router.Repository{URL: url}, s.container(s), router.Detail{})
	})

	// Nothing is fetched until the first reload.
	s.reload.Next(struct{}{})
	return s
}

func (s *repositoryList) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "enter":
		if len(s.rows) > 0 {
			s.selectRepository.Next(s.rows[s.cursor])
		}
	case "r":
		s.reload.Next(struct{}{})
	case "l":
		s.chooseLanguage.Next(struct{}{})
	}
	return nil
}

func (s *repositoryList) Hint() string {
	return s.localizer.T(i18n.HintRepositoryList)
}

// Rows take two lines: name and stars, then the description.
const repositoryRowHeight = 2

func (s *repositoryList) View(width, height int) string {
	st := currentStyles()
	var b strings.Builder
	b.WriteString(st.title.Render(s.title))
	b.WriteString("\n")

	switch {
	case s.loading && len(s.rows) == 0:
		b.WriteString(st.dim.Render(s.localizer.T(i18n.Loading)))
		return b.String()
	case len(s.rows) == 0:
		b.WriteString(st.dim.Render(s.localizer.T(i18n.EmptyList)))
		return b.String()
	}

	visible := max((height-2)/repositoryRowHeight, 1)
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}

	end := min(s.offset+visible, len(s.rows))
	for i := s.offset; i < end; i++ {
		row := s.rows[i]
		stars := row.StarsCountText
		nameWidth := max(width-lipgloss.Width(stars)-1, 1)
		name := lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth).Render(row.Name)
		line := name + " " + stars

		description := row.Description
		if description == "" {
			description = s.localizer.T(i18n.NoDescription)
		}
		description = lipgloss.NewStyle().MaxWidth(width).Render("  " + description)

		if i == s.cursor {
			b.WriteString(st.selected.Render(line))
		} else {
			b.WriteString(st.text.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(st.dim.Render(description))
		b.WriteString("\n")
	}
	if s.loading {
		b.WriteString(st.dim.Render(s.localizer.T(i18n.Loading)))
	}
	return b.String()
}

