// Package languagelist lets the user pick the language the repository list
// searches for.
package languagelist

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
)

// MaxDistance is the largest edit distance at which a language still matches
// a filter it does not contain.
const MaxDistance = 2

// Service provides the languages to choose from.
type Service interface {
	Languages() rx.Single[[]string]
}

// Config carries the state the screen was opened with.
type Config struct {
	Filter  string // Initial filter text
	Current string // Language currently in use, marked in the list
}

// Input is what the screen feeds in.
type Input struct {
	Select rx.Observable[string]   // User picked a language
	Cancel rx.Observable[struct{}] // User backed out
	Filter rx.Observable[string]   // Filter text after every keystroke
}

// LanguageViewModel is one row of the list.
type LanguageViewModel struct {
	Name    string
	Current bool
}

// Output is what the screen observes.
type Output struct {
	Languages    rx.Observable[[]LanguageViewModel]
	Selected     rx.Observable[string]
	Cancelled    rx.Observable[struct{}]
	AlertMessage rx.Observable[string]
}

// ViewModel turns the language screen's Input into its Output.
type ViewModel struct {
	service Service
	config  Config
	logger  *slog.Logger
}

// New creates a ViewModel. A nil logger uses reposearcher.Logger("languagelist").
func New(service Service, config Config, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = reposearcher.Logger("languagelist")
	}
	return &ViewModel{service: service, config: config, logger: logger}
}

// Transform implements reposearcher.Transformable.
//
// The language list is fetched once, when the first observer of Languages or
// AlertMessage arrives, and then re-ranked locally on every filter change. The
// result is kept, so every observer of AlertMessage hears about a failure no
// matter which output it subscribed to first.
func (vm *ViewModel) Transform(input Input) Output {
	filters := rx.StartWith(orNever(input.Filter), vm.config.Filter)

	results := rx.NewBehavior[*fetched](nil)
	fetch := rx.Share(rx.Func[struct{}](func(o rx.Observer[struct{}]) rx.Subscription {
		if results.Value() != nil {
			return rx.Disposed()
		}
		return rx.Catch(
			rx.Map(rx.Observable[[]string](vm.service.Languages()), func(names []string) *fetched {
				return &fetched{names: names}
			}),
			func(err error, emit func(*fetched)) { emit(&fetched{err: err}) },
		).Subscribe(rx.OnNext(func(f *fetched) {
			if f.err != nil {
				vm.logger.Warn("language list failed", "error", f.err)
			}
			results.Next(f)
		}))
	}))
	settled := rx.Filter[*fetched](results, func(f *fetched) bool { return f != nil })

	languages := rx.CombineLatest2(settled, filters, func(f *fetched, filter string) []LanguageViewModel {
		return Rank(f.names, filter, vm.config.Current)
	})
	alerts := rx.Map(
		rx.Filter(settled, func(f *fetched) bool { return f.err != nil }),
		func(f *fetched) string { return reposearcher.UserMessage(f.err) },
	)

	return Output{
		Languages:    whileFetching(fetch, languages),
		Selected:     orNever(input.Select),
		Cancelled:    orNever(input.Cancel),
		AlertMessage: whileFetching(fetch, alerts),
	}
}

type fetched struct {
	names []string
	err   error
}

// whileFetching subscribes to src and keeps the shared fetch running for as
// long as the observer stays.
func whileFetching[T any](fetch rx.Observable[struct{}], src rx.Observable[T]) rx.Observable[T] {
	return rx.Func[T](func(o rx.Observer[T]) rx.Subscription {
		bag := &rx.Bag{}
		bag.Add(src.Subscribe(o), fetch.Subscribe(rx.Observer[struct{}]{}))
		return bag
	})
}

type scored struct {
	index int
	rank  int
	name  string
}

// Rank filters and orders names for display.
//
// An empty filter keeps every name in its original order. Otherwise names
// starting with the filter come first, then names containing it, then names
// within MaxDistance edits of it, closest first. Matching ignores case and
// ties keep the original order.
func Rank(names []string, filter, current string) []LanguageViewModel {
	filter = strings.ToLower(strings.TrimSpace(filter))

	matches := make([]scored, 0, len(names))
	for i, name := range names {
		lower := strings.ToLower(name)
		switch {
		case filter == "":
			matches = append(matches, scored{index: i, name: name})
		case strings.HasPrefix(lower, filter):
			matches = append(matches, scored{index: i, rank: 0, name: name})
		case strings.Contains(lower, filter):
			matches = append(matches, scored{index: i, rank: 1, name: name})
		default:
			if d := levenshtein.ComputeDistance(lower, filter); d <= MaxDistance {
				matches = append(matches, scored{index: i, rank: 1 + d, name: name})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]LanguageViewModel, len(matches))
	for i, m := range matches {
		out[i] = LanguageViewModel{Name: m.name, Current: m.name == current}
	}
	return out
}

func orNever[T any](o rx.Observable[T]) rx.Observable[T] {
	if o == nil {
		return rx.Never[T]()
	}
	return o
}
