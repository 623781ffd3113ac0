package config

import (
	"github.com/spf13/viper"
)

// Default values shared by SetDefaults and the CLI flag help.
const (
	DefaultNamespace = "ntt"
	DefaultStd       = "c++17"
)

// DefaultDefines expands the namespace and annotation macros used by
// annotated headers, so the tree-sitter backend sees what libclang would.
var DefaultDefines = []string{
	`NTT_NS=ntt`,
	`NTT_ANNOTATE(a)=__attribute__((annotate(a)))`,
	`NTT_PYTHON_BINDING=NTT_ANNOTATE("python")`,
	`NTT_SINGLETON=NTT_ANNOTATE("singleton")`,
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("namespace", DefaultNamespace)
	v.SetDefault("requires", "")

	v.SetDefault("headers.extensions", []string{".h", ".hh", ".hpp", ".hxx"})
	v.SetDefault("templates.extensions", []string{".tmpl", ".gotmpl"})

	v.SetDefault("frontend.backend", BackendAuto)
	v.SetDefault("frontend.std", DefaultStd)
	v.SetDefault("frontend.args", "")
	v.SetDefault("frontend.strict", false)
	v.SetDefault("frontend.defines", DefaultDefines)

	v.SetDefault("types.registered", []string{})

	v.SetDefault("log.json", false)
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal; a failure here is a programming error.
		panic(err)
	}
	return cfg
}
