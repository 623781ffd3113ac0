package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teranos/autogen/config"
)

// ConfigCmd groups configuration commands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect autogen configuration",
	Long: `Inspect autogen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (AUTOGEN_* prefix)
3. Project config (autogen.toml, searched upwards from the working directory, or --config)
4. Default values

Examples:
  autogen config show        # Show the effective configuration
  autogen config validate    # Validate the configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cfg.File != "" {
			fmt.Fprintf(out, "# loaded from %s\n", cfg.File)
		} else {
			fmt.Fprintf(out, "# no %s found, showing defaults\n", config.FileName)
		}
		return config.Show(out, cfg)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := LoadConfig(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}
