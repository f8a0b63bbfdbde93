package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckctl/internal/app"
	cfg "deckctl/internal/config"
	"deckctl/internal/system"
)

var (
	configPath string
	logLevel   string
	logFile    string
	watchDeck  bool

	// conf is loaded before every command runs.
	conf *cfg.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file while presenting")
	rootCmd.Flags().BoolVarP(&watchDeck, "watch", "w", false, "reload the deck when the file changes")
}

var rootCmd = &cobra.Command{
	Use:   "deckctl [deck.html|deck.md[#n]]",
	Short: "deckctl – present HTML slide decks",
	Long:  "deckctl presents HTML or markdown slide decks in the terminal, serves them to browsers, and checks their structure.",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		conf = c
		level := conf.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		system.SetLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return app.Present(args[0], app.PresentOptions{Config: conf, Watch: watchDeck, LogFile: logFile})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func loadConfig() (*cfg.Config, error) {
	if configPath != "" {
		return cfg.Load(configPath)
	}
	return cfg.LoadDefault()
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
