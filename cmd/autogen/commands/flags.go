package commands

import (
	"github.com/spf13/cobra"
	"github.com/teranos/autogen/config"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/generate"
	"github.com/teranos/autogen/logger"
)

// library is the process-wide native front-end library. It is configured
// by the first run and every later run must name the same path.
var library = frontend.NewLibrary()

// pipelineFlags are the flags shared by generate, check and inspect.
type pipelineFlags struct {
	inputs   []string
	template string
	output   string
	library  string

	namespace string
	frontend  string
	std       string
	defines   []string
	strict    bool
}

// bind registers the flags on cmd. targets adds -j and -o.
func (f *pipelineFlags) bind(cmd *cobra.Command, targets bool) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.inputs, "input", "i", nil, "Header to parse (repeatable, parsed in order)")
	flags.StringVarP(&f.library, "libclang", "c", "", "Path to the native front-end library (libclang)")
	if targets {
		flags.StringVarP(&f.template, "template", "j", "", "Template to render")
		flags.StringVarP(&f.output, "output", "o", "", "File to write")
	}

	flags.StringVar(&f.namespace, "namespace", config.DefaultNamespace, "Root C++ namespace to extract")
	flags.StringVar(&f.frontend, "frontend", config.BackendAuto, "Front end: auto, clang or treesitter")
	flags.StringVar(&f.std, "std", config.DefaultStd, "C++ language standard")
	flags.StringArrayVar(&f.defines, "define", nil, "Extra macro definition NAME=VALUE (repeatable)")
	flags.BoolVar(&f.strict, "strict", false, "Fail on any error diagnostic")
}

// options merges the loaded configuration with the flags set on cmd.
// Flags win over configuration; defines are added to the configured ones.
func (f *pipelineFlags) options(cmd *cobra.Command, cfg *config.Config) (generate.Options, error) {
	changed := cmd.Flags().Changed

	namespace := cfg.Namespace
	if changed("namespace") {
		namespace = f.namespace
	}
	backend := cfg.Frontend.Backend
	if changed("frontend") {
		backend = f.frontend
	}
	std := cfg.Frontend.Std
	if changed("std") {
		std = f.std
	}

	args, err := cfg.Frontend.SplitArgs()
	if err != nil {
		return generate.Options{}, err
	}
	types, err := cfg.TypeMappings()
	if err != nil {
		return generate.Options{}, err
	}

	defines := append(append([]string{}, cfg.Frontend.Defines...), f.defines...)

	return generate.Options{
		Inputs:    f.inputs,
		Template:  f.template,
		Output:    f.output,
		Library:   f.library,
		Namespace: namespace,
		Frontend:  backend,
		FrontendOptions: frontend.Options{
			Std:     std,
			Args:    args,
			Defines: defines,
			Strict:  cfg.Frontend.Strict || f.strict,
			Trace:   logger.ShouldLogTrace(logger.Verbosity),
			Log:     logger.ComponentLogger("frontend"),
		},
		HeaderExtensions:   cfg.Headers.Extensions,
		TemplateExtensions: cfg.Templates.Extensions,
		Types:              types,
	}, nil
}

// LoadConfig loads and validates the configuration named by the --config
// flag, or the nearest autogen.toml when the flag is unset.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGenerator() *generate.Generator {
	return generate.New(library, logger.ComponentLogger("generate"))
}
