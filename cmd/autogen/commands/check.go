package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	checkFlags pipelineFlags
	checkQuiet bool
)

// CheckCmd verifies that a generated file matches its inputs
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that generated output is up to date",
	Long: `Render the template in memory and compare it with the existing output
file. Nothing is written. Exits non-zero and prints a diff when the file is
missing or differs.

Examples:
  autogen check -i include/engine.h -j templates/binding.tmpl -o src/binding.cpp -c $LIBCLANG`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkFlags.bind(CheckCmd, true)
	CheckCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Do not print the diff")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := checkFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	res, err := newGenerator().Check(opts)
	if err != nil {
		return err
	}

	if res.UpToDate {
		pterm.Success.Printfln("%s is up to date", res.Output)
		return nil
	}

	if res.Missing {
		pterm.Warning.Printfln("%s does not exist", res.Output)
	} else if !checkQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (-on disk +rendered):\n%s", res.Output, res.Diff)
	}
	return res.Err()
}
