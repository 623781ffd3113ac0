package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/autogen/cmd/autogen/commands"
	_ "github.com/teranos/autogen/frontend/clang"
	_ "github.com/teranos/autogen/frontend/treesitter"
	"github.com/teranos/autogen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "autogen",
	Short: "autogen - binding generator for annotated C++ headers",
	Long: `autogen - generate script bindings from annotated C++ headers.

autogen parses C++ headers, extracts the public declarations of one root
namespace into a neutral model and renders a text template over it, for
example a pybind11 module or a .pyi stub.

Available commands:
  generate - Render a template over parsed headers
  check    - Verify a generated file is up to date
  inspect  - Print the extracted declaration model
  config   - Show or validate configuration
  version  - Show version information

Examples:
  autogen generate -i engine.h -j templates/binding.tmpl -o binding.cpp -c /usr/lib/libclang.so
  autogen inspect -i engine.h -c /usr/lib/libclang.so --format yaml
  autogen config show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// Version needs no configuration.
		if cmd.Name() == "version" {
			return logger.Initialize(verbosity, false)
		}

		cfg, err := commands.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return logger.Initialize(verbosity, cfg.Log.JSON)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().String("config", "", "Path to autogen.toml (default: nearest autogen.toml above the working directory)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		logger.Cleanup()
		os.Exit(1)
	}
}
