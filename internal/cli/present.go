package cli

import (
	"github.com/spf13/cobra"

	"deckctl/internal/app"
)

func init() {
	rootCmd.AddCommand(presentCmd)
	presentCmd.Flags().BoolP("watch", "w", false, "reload the deck when the file changes")
}

var presentCmd = &cobra.Command{
	Use:   "present <deck[#n]>",
	Short: "Present a deck in the terminal",
	Long:  "Present a deck in the terminal. A trailing #n starts at slide n; the final position is printed on exit.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		return app.Present(args[0], app.PresentOptions{Config: conf, Watch: watch, LogFile: logFile})
	},
}
