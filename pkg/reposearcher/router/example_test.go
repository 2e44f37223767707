package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/languagelist"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/login"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/repositorylist"
)

// page is a minimal screen that prints what happens to it.
type page struct {
	id    string
	title string
}

func (p *page) ID() string    { return p.id }
func (p *page) Title() string { return p.title }

func (p *page) Present(target router.Screen, style router.Style) {
	fmt.Printf("%s presents %q as %s\n", p.title, target.Title(), style)
}

func (p *page) Dismiss()        { fmt.Printf("%s dismissed\n", p.title) }
func (p *page) Pop(toRoot bool) { fmt.Printf("%s pop (to root: %v)\n", p.title, toRoot) }

// console builds pages instead of real screens.
type console struct{}

func (console) RepositoryList(_ *router.Navigator, vm *repositorylist.ViewModel) router.Screen {
	return &page{id: "list", title: vm.CurrentLanguage() + " repositories"}
}

func (console) LanguageList(_ *router.Navigator, _ *languagelist.ViewModel, _ router.LanguageList) router.Screen {
	return &page{id: "languages", title: "Languages"}
}

func (console) Repository(_ *router.Navigator, scene router.Repository) router.Screen {
	return &page{id: "repository", title: scene.URL}
}

func (console) Login(_ *router.Navigator, _ *login.ViewModel) router.Screen {
	return &page{id: "login", title: "Login"}
}

func (console) ErrorMessage(_ *router.Navigator, scene router.ErrorMessage) router.Screen {
	return &page{id: "error", title: scene.Title}
}

type window struct{}

func (window) SetRoot(screen router.Screen) {
	fmt.Printf("root is %q\n", screen.Title())
}

type offline struct{}

func (offline) MostPopularRepositories(string) rx.Single[[]reposearcher.Repository] {
	return rx.Just([]reposearcher.Repository{})
}

func (offline) Languages() rx.Single[[]string] {
	return rx.Just([]string{"Swift", "Go"})
}

// Example shows a screen navigating by naming a Scene and a Transition.
func Example() {
	nav := router.New(router.Dependencies{
		Repositories: offline{},
		Languages:    offline{},
		Builder:      console{},
	})

	// Startup: the repository list becomes the root, inside a Stack.
	root := nav.Show(router.RepositoryList{InitialLanguage: "Go"}, nil, router.Root{Host: window{}})

	// A screen shows the language picker modally and a repository in detail.
	list := &page{id: "list", title: "Go repositories"}
	nav.Show(router.LanguageList{Current: "Go"}, list, router.Modal{})
	nav.Show(router.Repository{URL: "https://github.com/golang/go"}, list, router.Detail{})

	// With the Stack as the caller, the repository page is pushed instead.
	nav.Show(router.Repository{URL: "https://github.com/gohugoio/hugo"}, root, router.Detail{})
	fmt.Println("stack depth:", root.(*router.Stack).Len())

	nav.Pop(list, false)

	// Output:
	// root is "Go repositories"
	// Go repositories presents "Languages" as modal
	// Go repositories presents "https://github.com/golang/go" as detail
	// stack depth: 2
	// Go repositories pop (to root: false)
}

// Example_missingCaller shows that Modal without a caller is a programming error.
func Example_missingCaller() {
	nav := router.New(router.Dependencies{Builder: console{}})

	defer func() {
		fmt.Println(recover())
	}()
	nav.Show(router.Login{}, nil, router.Modal{})

	// Output:
	// router: modal transition to login: no caller
}
