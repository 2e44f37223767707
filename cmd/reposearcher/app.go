package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/config"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/github"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/tui"
)

// app is what every command needs: settings, messages and the API client.
type app struct {
	cfg       config.Config
	localizer *i18n.Localizer
	client    *github.Client
}

// setup loads configuration and wires logging, the message catalog and the
// GitHub client. console sends log records to stderr as well; leave it off
// while the terminal UI owns the screen.
func setup(cmd *cobra.Command, console bool) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	reposearcher.Init(reposearcher.Options{
		LogPath:  cfg.Log.Path,
		LogLevel: cfg.Log.Level,
		Console:  console,
	})
	logger := reposearcher.GetLogger()
	logger.Debug("configuration loaded", "locale", cfg.Locale, "language", cfg.InitialLanguage, "base_url", cfg.GitHub.BaseURL)

	localizer, err := i18n.New(cfg.Locale)
	if err != nil {
		reposearcher.Close()
		return nil, fmt.Errorf("load messages for %q: %w", cfg.Locale, err)
	}
	i18n.SetDefault(localizer)

	client, err := github.New(cfg.GitHub.BaseURL,
		github.WithToken(cfg.GitHub.Token),
		github.WithPerPage(cfg.GitHub.PerPage),
		github.WithTimeout(cfg.GitHub.Timeout),
		github.WithLanguages(cfg.Languages),
		github.WithCache(cfg.GitHub.CacheSize, cfg.GitHub.CacheTTL),
		github.WithLocalizer(localizer),
		github.WithLogger(reposearcher.Logger("github")),
	)
	if err != nil {
		reposearcher.Close()
		return nil, fmt.Errorf("create github client: %w", err)
	}

	return &app{cfg: cfg, localizer: localizer, client: client}, nil
}

func (a *app) window() *tui.Window {
	return tui.NewWindow(tui.Options{
		InitialLanguage: a.cfg.InitialLanguage,
		OnLogin: func(session reposearcher.Session) {
			a.client.SetToken(session.Token)
		},
	})
}

func (a *app) navigator(window *tui.Window) *router.Navigator {
	return router.New(router.Dependencies{
		Repositories:  a.client,
		Languages:     a.client,
		Authenticator: a.client,
		Localizer:     a.localizer,
		Builder:       window.Builder(),
	})
}

func (a *app) close() {
	reposearcher.Close()
}
