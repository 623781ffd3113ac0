// Package config loads autogen's project configuration.
//
// Sources, lowest precedence first: built-in defaults, the project file
// (autogen.toml, found by walking up from the working directory or passed
// with --config), AUTOGEN_* environment variables, and finally CLI flags
// which commands apply on top of the loaded Config.
package config

import "github.com/teranos/autogen/frontend"

// FileName is the project configuration file searched for by Load.
const FileName = "autogen.toml"

// EnvPrefix prefixes every environment override, e.g. AUTOGEN_NAMESPACE.
const EnvPrefix = "AUTOGEN"

// Front-end backend names accepted by frontend.backend.
const (
	BackendAuto       = frontend.BackendAuto
	BackendClang      = frontend.BackendClang
	BackendTreeSitter = frontend.BackendTreeSitter
)

// Config represents the autogen configuration
type Config struct {
	Namespace string          `mapstructure:"namespace" toml:"namespace"` // root C++ namespace to extract (default: ntt)
	Requires  string          `mapstructure:"requires" toml:"requires"`   // semver constraint on the autogen binary, e.g. ">= 1.2"
	Headers   HeadersConfig   `mapstructure:"headers" toml:"headers"`
	Templates TemplatesConfig `mapstructure:"templates" toml:"templates"`
	Frontend  FrontendConfig  `mapstructure:"frontend" toml:"frontend"`
	Types     TypesConfig     `mapstructure:"types" toml:"types"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`

	// File is the project file the configuration was read from, empty when none was found
	File string `mapstructure:"-" toml:"-"`
}

// HeadersConfig restricts which files are accepted as -i inputs
type HeadersConfig struct {
	Extensions []string `mapstructure:"extensions" toml:"extensions"`
}

// TemplatesConfig restricts which files are accepted as -j templates
type TemplatesConfig struct {
	Extensions []string `mapstructure:"extensions" toml:"extensions"`
}

// FrontendConfig configures how headers are parsed
type FrontendConfig struct {
	Backend string   `mapstructure:"backend" toml:"backend"` // auto, clang or treesitter
	Std     string   `mapstructure:"std" toml:"std"`         // language standard passed as -std
	Args    string   `mapstructure:"args" toml:"args"`       // extra compiler arguments, shell quoted
	Strict  bool     `mapstructure:"strict" toml:"strict"`   // treat any error diagnostic as a parse failure
	Defines []string `mapstructure:"defines" toml:"defines"` // NAME=VALUE or NAME(args)=VALUE macro definitions
}

// TypesConfig lists custom types known before extraction.
// Entries are "Name" or "Name=Output"; extracted class, struct, enum and
// typedef names are registered automatically on top of these.
type TypesConfig struct {
	Registered []string `mapstructure:"registered" toml:"registered"`
}

// LogConfig configures diagnostic output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}
