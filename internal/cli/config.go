package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	cfg "deckctl/internal/config"
)

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd, configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and initialize the config file",
}

// targetConfigPath is --config when set, else the default location.
func targetConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return cfg.Path()
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := targetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config (file plus DECKCTL_* overrides)",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yamlv3.Marshal(conf)
		if err != nil {
			return err
		}
		fmt.Print(string(b))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := targetConfigPath()
		if err != nil {
			return err
		}
		if fileExists(p) && !configForce {
			fmt.Printf("• keeping existing config: %s\n", p)
			return nil
		}
		if err := cfg.Default().Save(p); err != nil {
			return err
		}
		fmt.Printf("✓ wrote config: %s\n", p)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := cfg.MarshalSchema(cfg.Schema())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
