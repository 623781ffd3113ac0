package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/version"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance, no files and no environment
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "ntt", cfg.Namespace)
	assert.Equal(t, BackendAuto, cfg.Frontend.Backend)
	assert.Equal(t, "c++17", cfg.Frontend.Std)
	assert.False(t, cfg.Frontend.Strict)
	assert.Equal(t, DefaultDefines, cfg.Frontend.Defines)
	assert.Contains(t, cfg.Headers.Extensions, ".h")
	assert.Contains(t, cfg.Templates.Extensions, ".tmpl")
	assert.Empty(t, cfg.Types.Registered)
	require.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
namespace = "engine"
requires = ">= 0.1"

[frontend]
backend = "treesitter"
strict = true
args = "-DFOO=1 -I 'include dir'"

[types]
registered = ["Handle", "Vec3=Vector3"]
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "engine", cfg.Namespace)
	assert.Equal(t, BackendTreeSitter, cfg.Frontend.Backend)
	assert.True(t, cfg.Frontend.Strict)
	// Unset keys keep their defaults
	assert.Equal(t, "c++17", cfg.Frontend.Std)

	args, err := cfg.Frontend.SplitArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"-DFOO=1", "-I", "include dir"}, args)

	mappings, err := cfg.TypeMappings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Handle": "Handle", "Vec3": "Vector3"}, mappings)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsInputNotFoundError(err))
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `namespace = "engine"`)
	t.Setenv("AUTOGEN_NAMESPACE", "other")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Namespace)
}

func TestFindConfigFrom(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `namespace = "ntt"`)
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, path, findConfigFrom(nested))
	assert.Equal(t, path, findConfigFrom(root))
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty namespace", func(c *Config) { c.Namespace = " " }, "namespace cannot be empty"},
		{"qualified namespace", func(c *Config) { c.Namespace = "a::b" }, "single identifier"},
		{"unknown backend", func(c *Config) { c.Frontend.Backend = "gcc" }, "frontend.backend"},
		{"bad header extension", func(c *Config) { c.Headers.Extensions = []string{"h"} }, "headers.extensions"},
		{"no template extensions", func(c *Config) { c.Templates.Extensions = nil }, "templates.extensions cannot be empty"},
		{"unbalanced args quote", func(c *Config) { c.Frontend.Args = `-I "unterminated` }, "frontend.args"},
		{"define without name", func(c *Config) { c.Frontend.Defines = []string{"=1"} }, "no macro name"},
		{"type without name", func(c *Config) { c.Types.Registered = []string{"=Foo"} }, "no type name"},
		{"bad constraint", func(c *Config) { c.Requires = "not a constraint" }, "invalid requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsFrontendBackends(t *testing.T) {
	for _, name := range []string{frontend.BackendAuto, frontend.BackendClang, frontend.BackendTreeSitter} {
		c := Default()
		c.Frontend.Backend = name
		assert.NoError(t, c.Validate(), "backend %q", name)
	}
}

func TestCheckRequires(t *testing.T) {
	release := version.Info{Version: "1.4.2"}
	dev := version.Info{Version: "dev"}

	assert.NoError(t, CheckRequires("", release))
	assert.NoError(t, CheckRequires(">= 1.2, < 2.0", release))
	assert.NoError(t, CheckRequires(">= 9.0", dev), "dev builds skip the version check")

	err := CheckRequires(">= 2.0", release)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestShow(t *testing.T) {
	cfg := Default()
	cfg.Types.Registered = []string{"Handle"}

	var buf bytes.Buffer
	require.NoError(t, Show(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, `namespace = "ntt"`)
	assert.Contains(t, out, "[frontend]")
	assert.Contains(t, out, `backend = "auto"`)
	assert.Contains(t, out, `registered = ["Handle"]`)
	assert.NotContains(t, out, "File")
}
