package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/kballard/go-shellquote"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/version"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.NewConfigurationError("namespace cannot be empty")
	}
	if strings.ContainsAny(c.Namespace, " \t:") {
		return errors.NewConfigurationError("namespace must be a single identifier, got %q", c.Namespace)
	}

	switch c.Frontend.Backend {
	case BackendAuto, BackendClang, BackendTreeSitter:
	default:
		return errors.NewConfigurationError("frontend.backend must be one of auto, clang, treesitter, got %q", c.Frontend.Backend)
	}

	if err := checkExtensions("headers.extensions", c.Headers.Extensions); err != nil {
		return err
	}
	if err := checkExtensions("templates.extensions", c.Templates.Extensions); err != nil {
		return err
	}

	if _, err := c.Frontend.SplitArgs(); err != nil {
		return err
	}

	for _, d := range c.Frontend.Defines {
		name, _, _ := strings.Cut(d, "=")
		if strings.TrimSpace(name) == "" {
			return errors.NewConfigurationError("frontend.defines entry %q has no macro name", d)
		}
	}

	if _, err := c.TypeMappings(); err != nil {
		return err
	}

	return CheckRequires(c.Requires, version.Get())
}

func checkExtensions(key string, exts []string) error {
	if len(exts) == 0 {
		return errors.NewConfigurationError("%s cannot be empty", key)
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.NewConfigurationError("%s entries must look like \".h\", got %q", key, ext)
		}
	}
	return nil
}

// CheckRequires verifies that info satisfies the semver constraint.
// An empty constraint always passes; development builds skip the version check
// but still reject constraints that do not parse.
func CheckRequires(constraint string, info version.Info) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.WrapConfiguration(err, "invalid requires constraint "+constraint)
	}

	if !info.IsRelease() {
		return nil
	}

	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return errors.WrapConfiguration(err, "binary version "+info.Version+" is not semver")
	}

	if !c.Check(v) {
		err := errors.NewConfigurationError("autogen %s does not satisfy requires %q", info.Version, constraint)
		return errors.WithHint(err, "install a matching autogen release or relax 'requires' in "+FileName)
	}
	return nil
}

// SplitArgs splits the shell-quoted frontend.args string into compiler arguments.
func (f FrontendConfig) SplitArgs() ([]string, error) {
	if strings.TrimSpace(f.Args) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(f.Args)
	if err != nil {
		return nil, errors.WrapConfiguration(err, "invalid frontend.args")
	}
	return args, nil
}

// TypeMappings turns types.registered entries into name -> output pairs.
// A bare "Name" maps to itself.
func (c *Config) TypeMappings() (map[string]string, error) {
	out := make(map[string]string, len(c.Types.Registered))
	for _, entry := range c.Types.Registered {
		name, output, found := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		output = strings.TrimSpace(output)
		if name == "" {
			return nil, errors.NewConfigurationError("types.registered entry %q has no type name", entry)
		}
		if !found || output == "" {
			output = name
		}
		out[name] = output
	}
	return out, nil
}
