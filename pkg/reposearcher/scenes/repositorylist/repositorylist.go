// Package repositorylist turns reload and language events into the list of
// most popular repositories for the current language.
package repositorylist

import (
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
)

// Service fetches repositories. Each call returns a fresh one-shot result.
type Service interface {
	MostPopularRepositories(language string) rx.Single[[]reposearcher.Repository]
}

// RepositoryViewModel is a repository ready for display.
type RepositoryViewModel struct {
	Name           string
	Description    string
	StarsCountText string
	URL            string
}

// NewRepositoryViewModel maps a repository for display.
func NewRepositoryViewModel(r reposearcher.Repository) RepositoryViewModel {
	return RepositoryViewModel{
		Name:           r.FullName,
		Description:    r.Description,
		StarsCountText: fmt.Sprintf("%s %d", constants.StarGlyph, r.StarsCount),
		URL:            r.URL,
	}
}

// Input is what the screen feeds in.
type Input struct {
	Reload           rx.Observable[struct{}]            // Fetch again for the current language
	ChooseLanguage   rx.Observable[struct{}]            // User asked for the language picker
	SelectRepository rx.Observable[RepositoryViewModel] // User opened a row
}

// Output is what the screen observes.
//
// Repositories never terminates on a failed fetch. A failure emits an empty
// list on Repositories and then the message on AlertMessage, in that order.
//
// ShowRepository and ShowLanguageList are hot: an intent emitted while
// nothing observes it is lost.
type Output struct {
	Repositories     rx.Observable[[]RepositoryViewModel]
	Title            rx.Observable[string]
	AlertMessage     rx.Observable[string]
	ShowRepository   rx.Observable[string]
	ShowLanguageList rx.Observable[struct{}]
	Loading          rx.Observable[bool]
}

// ViewModel owns the current language.
type ViewModel struct {
	service         Service
	currentLanguage *rx.Behavior[string]
	logger          *slog.Logger
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLogger sets the logger. The default is reposearcher.Logger("repositorylist").
func WithLogger(logger *slog.Logger) Option {
	return func(vm *ViewModel) {
		if logger != nil {
			vm.logger = logger
		}
	}
}

// New creates a ViewModel seeded with initialLanguage.
func New(service Service, initialLanguage string, opts ...Option) *ViewModel {
	vm := &ViewModel{
		service:         service,
		currentLanguage: rx.NewBehavior(initialLanguage),
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.logger == nil {
		vm.logger = reposearcher.Logger("repositorylist")
	}
	return vm
}

// SetCurrentLanguage changes the language. Once a reload has happened, this
// triggers a fetch for the new language.
func (vm *ViewModel) SetCurrentLanguage(language string) {
	vm.logger.Debug("language changed", "language", language)
	vm.currentLanguage.Next(language)
}

// CurrentLanguage returns the language the next fetch will use.
func (vm *ViewModel) CurrentLanguage() string {
	return vm.currentLanguage.Value()
}

type outcome struct {
	language     string
	repositories []reposearcher.Repository
	err          error
}

// Transform implements reposearcher.Transformable.
func (vm *ViewModel) Transform(input Input) Output {
	alerts := rx.NewSubject[string]()
	loading := rx.NewBehavior(false)

	requests := rx.Tap(
		rx.CombineLatest2(orNever(input.Reload), rx.Observable[string](vm.currentLanguage),
			func(_ struct{}, language string) string { return language }),
		rx.OnNext(func(language string) {
			vm.logger.Debug("fetching repositories", "language", language)
			loading.Next(true)
		}),
	)

	outcomes := rx.SwitchMap(requests, func(language string) rx.Observable[outcome] {
		fetched := rx.Map(rx.Observable[[]reposearcher.Repository](vm.service.MostPopularRepositories(language)),
			func(repos []reposearcher.Repository) outcome {
				return outcome{language: language, repositories: repos}
			})
		return rx.Catch(fetched, func(err error, emit func(outcome)) {
			emit(outcome{language: language, err: err})
		})
	})

	// The list goes out before the alert so a screen showing the alert already
	// has the emptied list behind it.
	repositories := rx.Share(rx.Func[[]RepositoryViewModel](func(o rx.Observer[[]RepositoryViewModel]) rx.Subscription {
		return outcomes.Subscribe(rx.Observer[outcome]{
			Next: func(out outcome) {
				loading.Next(false)
				if out.err != nil {
					vm.logger.Warn("fetch failed", "language", out.language, "error", out.err)
					o.Next([]RepositoryViewModel{})
					alerts.Next(reposearcher.UserMessage(out.err))
					return
				}
				vm.logger.Debug("fetched repositories", "language", out.language, "count", len(out.repositories))
				o.Next(toViewModels(out.repositories))
			},
			Error:    o.Error,
			Complete: o.Complete,
		})
	}))

	return Output{
		Repositories: repositories,
		Title:        rx.AsObservable[string](vm.currentLanguage),
		AlertMessage: alerts,
		ShowRepository: rx.Map(orNever(input.SelectRepository), func(r RepositoryViewModel) string {
			return r.URL
		}),
		ShowLanguageList: orNever(input.ChooseLanguage),
		Loading:          rx.AsObservable[bool](loading),
	}
}

func toViewModels(repos []reposearcher.Repository) []RepositoryViewModel {
	out := make([]RepositoryViewModel, len(repos))
	for i, r := range repos {
		out[i] = NewRepositoryViewModel(r)
	}
	return out
}

func orNever[T any](o rx.Observable[T]) rx.Observable[T] {
	if o == nil {
		return rx.Never[T]()
	}
	return o
}
