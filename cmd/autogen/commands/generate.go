package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/autogen/generate"
)

var (
	generateFlags pipelineFlags
	generateWatch bool
)

// GenerateCmd renders a template over the declarations of one or more headers
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate bindings from annotated C++ headers",
	Long: `Parse C++ headers, extract the declarations of the root namespace and
render a template over them.

Only public members are extracted. Declarations carry the tags of their
annotate attributes (e.g. "python", "singleton"), which templates use to
decide what to emit. The output file is replaced only when rendering
succeeds.

Examples:
  autogen generate -i include/engine.h -j templates/binding.tmpl -o src/binding.cpp -c /usr/lib/libclang.so
  autogen generate -i a.h -i b.h -j stub.tmpl -o engine.pyi -c $LIBCLANG --frontend treesitter
  autogen generate -i engine.h -j binding.tmpl -o binding.cpp -c $LIBCLANG --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateFlags.bind(GenerateCmd, true)
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever an input or the template changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := generateFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	g := newGenerator()

	if generateWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		pterm.Info.Printfln("Watching %d header(s) and %s (press Ctrl+C to stop)", len(opts.Inputs), opts.Template)
		return g.Watch(ctx, opts, func(res *generate.Result, err error) {
			if err != nil {
				pterm.Error.Printfln("Generation failed: %v", err)
				return
			}
			printGenerated(res)
		})
	}

	res, err := g.Run(opts)
	if err != nil {
		return err
	}
	printGenerated(res)
	return nil
}

func printGenerated(res *generate.Result) {
	pterm.Success.Printfln("Generated %s (%d declarations, %d bytes)",
		res.Output, res.Declarations.Count(), res.Bytes)
}
