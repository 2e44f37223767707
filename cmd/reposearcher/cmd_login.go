package main

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/router"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a personal access token, then browse",
	Long: "Checks a GitHub personal access token against the username it belongs to.\n" +
		"Type the token into the passcode field. On success the repository list opens\n" +
		"and searches use the token.",
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	window := a.window()
	a.navigator(window).Show(router.Login{}, nil, router.Root{Host: window})
	return tui.Run(cmd.Context(), window)
}
