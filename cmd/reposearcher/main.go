// reposearcher browses the most popular GitHub repositories per language in
// the terminal.
//
// Usage:
//
//	reposearcher [--language=<name>] [--locale=<tag>] [--config=<path>]
//	reposearcher login
//	reposearcher languages [--filter=<text>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/config"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/tui"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "reposearcher",
	Short: "Browse the most starred GitHub repositories per language",
	Long: "reposearcher lists the most starred GitHub repositories for a language.\n" +
		"Press l to switch language, enter to open a repository, r to reload.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runBrowse,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String(config.FlagConfig, "", "Config file (default ~/.config/reposearcher/config.toml)")
	f.String(config.FlagLanguage, "", "Language to list first")
	f.String(config.FlagLogLevel, "", "Log level: debug, info, warn, error")
	f.String(config.FlagLocale, "", "Interface language, e.g. en or zh-Hans")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.Version = version
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	window := a.window()
	a.navigator(window).Show(router.RepositoryList{InitialLanguage: a.cfg.InitialLanguage}, nil, router.Root{Host: window})
	return tui.Run(cmd.Context(), window)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
