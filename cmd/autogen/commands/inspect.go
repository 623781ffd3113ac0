package commands

import (
	"github.com/spf13/cobra"
	"github.com/teranos/autogen/display"
)

var (
	inspectFlags  pipelineFlags
	inspectFormat string
)

// InspectCmd prints the declaration model templates receive
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the declarations extracted from headers",
	Long: `Parse headers and print the extracted declaration model, the same data
a template receives. Useful when writing templates.

Examples:
  autogen inspect -i include/engine.h -c $LIBCLANG
  autogen inspect -i include/engine.h -c $LIBCLANG --format yaml`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectFlags.bind(InspectCmd, false)
	InspectCmd.Flags().StringVar(&inspectFormat, "format", display.FormatJSON, "Output format: json, yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := inspectFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	decls, err := newGenerator().Extract(opts)
	if err != nil {
		return err
	}
	return display.Output(cmd.OutOrStdout(), decls, inspectFormat)
}
