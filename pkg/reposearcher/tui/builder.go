package tui

import (
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/languagelist"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/login"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/repositorylist"
)

type builder struct {
	window *Window
}

func (b builder) RepositoryList(nav *router.Navigator, vm *repositorylist.ViewModel) router.Screen {
	return newRepositoryList(b.window, nav, vm)
}

func (b builder) LanguageList(nav *router.Navigator, vm *languagelist.ViewModel, scene router.LanguageList) router.Screen {
	return newLanguageList(b.window, nav, vm, scene)
}

func (b builder) Repository(nav *router.Navigator, scene router.Repository) router.Screen {
	return newRepository(b.window, nav, scene)
}

func (b builder) Login(nav *router.Navigator, vm *login.ViewModel) router.Screen {
	return newLogin(b.window, nav, vm)
}

func (b builder) ErrorMessage(nav *router.Navigator, scene router.ErrorMessage) router.Screen {
	return newAlert(b.window, nav, scene)
}
