package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/scenes/languagelist"
)

var languagesFlags struct {
	filter string
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Print the configured language list",
	RunE:  runLanguages,
}

func init() {
	f := languagesCmd.Flags()
	f.StringVar(&languagesFlags.filter, "filter", "", "Rank languages against this text, as the picker does")
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	names, err := a.client.Languages().Await(cmd.Context())
	if err != nil {
		return fmt.Errorf("list languages: %w", err)
	}

	out := cmd.OutOrStdout()
	ranked := languagelist.Rank(names, languagesFlags.filter, a.cfg.InitialLanguage)
	if len(ranked) == 0 {
		fmt.Fprintln(out, a.localizer.T(i18n.NoLanguagesMatch, map[string]any{"Filter": languagesFlags.filter}))
		return nil
	}
	for _, l := range ranked {
		mark := " "
		if l.Current {
			mark = "•"
		}
		fmt.Fprintf(out, "%s %s\n", mark, l.Name)
	}
	return nil
}
