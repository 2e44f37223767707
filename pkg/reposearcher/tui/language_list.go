package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/languagelist"
)

type languageList struct {
	base
	localizer *i18n.Localizer

	selectLanguage *rx.Subject[string]
	cancel         *rx.Subject[struct{}]
	filterText     *rx.Subject[string]

	filter string
	rows   []languagelist.LanguageViewModel
	cursor int
}

func newLanguageList(w *Window, nav *router.Navigator, vm *languagelist.ViewModel, scene router.LanguageList) *languageList {
	s := &languageList{
		localizer:      nav.Localizer(),
		selectLanguage: rx.NewSubject[string](),
		cancel:         rx.NewSubject[struct{}](),
		filterText:     rx.NewSubject[string](),
		filter:         scene.Filter,
	}
	s.setup(w, nav.Localizer().T(i18n.LanguageListTitle))

	out := vm.Transform(languagelist.Input{
		Select: s.selectLanguage,
		Cancel: s.cancel,
		Filter: s.filterText,
	})

	observe(&s.base, out.Languages, func(rows []languagelist.LanguageViewModel) {
		s.rows = rows
		s.cursor = 0
	})
	observe(&s.base, out.Selected, func(language string) {
		if scene.Choose != nil {
			scene.Choose(language)
		}
		nav.Dismiss(s)
	})
	observe(&s.base, out.Cancelled, func(struct{}) {
		nav.Dismiss(s)
	})
	observe(&s.base, out.AlertMessage, func(message string) {
		nav.Show(router.ErrorMessage{Message: message}, s, router.Alert{})
	})
	return s
}

func (s *languageList) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		s.cancel.Next(struct{}{})
	case tea.KeyEnter:
		if len(s.rows) > 0 {
			s.selectLanguage.Next(s.rows[s.cursor].Name)
		}
	case tea.KeyUp:
		if s.cursor > 0 {
			s.cursor--
		}
	case tea.KeyDown:
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case tea.KeyBackspace:
		if r := []rune(s.filter); len(r) > 0 {
			s.filter = string(r[:len(r)-1])
			s.filterText.Next(s.filter)
		}
	case tea.KeyRunes, tea.KeySpace:
		s.filter += string(msg.Runes)
		s.filterText.Next(s.filter)
	}
	return nil
}

func (s *languageList) Hint() string {
	return s.localizer.T(i18n.HintLanguageList)
}

func (s *languageList) View(width, height int) string {
	st := currentStyles()
	var b strings.Builder
	b.WriteString(st.title.Render(s.title))
	b.WriteString("\n")
	b.WriteString("> " + s.filter)
	b.WriteString("\n\n")

	if len(s.rows) == 0 {
		b.WriteString(st.dim.Render(s.localizer.T(i18n.NoLanguagesMatch, map[string]any{"Filter": s.filter})))
		return b.String()
	}

	visible := max(height-4, 1)
	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}
	end := min(start+visible, len(s.rows))
	for i := start; i < end; i++ {
		row := s.rows[i]
		line := "  " + row.Name
		if row.Current {
			line = "• " + row.Name
		}
		if i == s.cursor {
			b.WriteString(st.selected.Width(width).Render(line))
		} else {
			b.WriteString(st.text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
