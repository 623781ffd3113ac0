package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teranos/autogen/display"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show autogen version information",
	Long:  `Display version, build time, commit hash, platform and available front ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		info := version.Get()
		info.Frontends = frontend.Backends()

		if jsonOutput {
			return display.Output(out, info, display.FormatJSON)
		}
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Front ends: %v\n", info.Frontends)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
