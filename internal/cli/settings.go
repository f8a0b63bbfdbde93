package cli

import (
	"github.com/spf13/cobra"

	"deckctl/internal/settings"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit the config file in an interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := targetConfigPath()
		if err != nil {
			return err
		}
		return settings.Run(conf, p)
	},
}
