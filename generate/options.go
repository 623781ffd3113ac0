package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
)

// Options describe one generation: headers in, one rendered file out.
type Options struct {
	Inputs    []string // headers, parsed in order
	Template  string
	Output    string
	Library   string // native front-end library (-c)
	Namespace string

	Frontend        string // backend name, see frontend.Resolve
	FrontendOptions frontend.Options

	// Accepted file extensions; empty accepts anything.
	HeaderExtensions   []string
	TemplateExtensions []string

	// Types map name -> script-side name. They are registered after the
	// extracted type names, so a configured entry overrides a declared type.
	Types map[string]string

	// Adapter replaces the named backend when set.
	Adapter frontend.Adapter
}

// Validate checks every input before anything is parsed. All problems are
// reported together.
func (o *Options) Validate() error {
	return o.validate(true).ErrorOrNil()
}

// ValidateSources is Validate for callers that only extract: the template
// and output are not required.
func (o *Options) ValidateSources() error {
	return o.validate(false).ErrorOrNil()
}

func (o *Options) validate(rendering bool) *multierror.Error {
	var result *multierror.Error

	if strings.TrimSpace(o.Namespace) == "" {
		result = multierror.Append(result, errors.NewConfigurationError("namespace cannot be empty"))
	}

	if len(o.Inputs) == 0 {
		result = multierror.Append(result, errors.WithHint(
			errors.NewConfigurationError("no input headers"),
			"pass at least one header with -i <header>"))
	}
	for _, in := range o.Inputs {
		if err := checkFile("header", in, o.HeaderExtensions); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if rendering {
		result = o.validateTargets(result)
	}

	if o.Library == "" {
		result = multierror.Append(result, errors.WithHint(
			errors.NewConfigurationError("no native library"),
			"pass the front-end library with -c <native-library-path>"))
	} else if _, err := os.Stat(o.Library); os.IsNotExist(err) {
		result = multierror.Append(result, errors.NewInputNotFoundError("native library", o.Library))
	}

	return result
}

func (o *Options) validateTargets(result *multierror.Error) *multierror.Error {
	if o.Template == "" {
		result = multierror.Append(result, errors.WithHint(
			errors.NewConfigurationError("no template"),
			"pass the template with -j <template>"))
	} else if err := checkFile("template", o.Template, o.TemplateExtensions); err != nil {
		result = multierror.Append(result, err)
	}

	if o.Output == "" {
		result = multierror.Append(result, errors.WithHint(
			errors.NewConfigurationError("no output path"),
			"pass the output file with -o <output>"))
	} else if info, err := os.Stat(o.Output); err == nil && info.IsDir() {
		result = multierror.Append(result, errors.NewConfigurationError("output %s is a directory", o.Output))
	}

	return result
}

func checkFile(kind, path string, exts []string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInputNotFoundError(kind, path)
		}
		return errors.Wrapf(err, "failed to stat %s %s", kind, path)
	}
	if info.IsDir() {
		return errors.NewConfigurationError("%s %s is a directory", kind, path)
	}
	if len(exts) > 0 && !hasExtension(path, exts) {
		return errors.WithHintf(
			errors.NewConfigurationError("%s %s has an unrecognized extension", kind, path),
			"accepted extensions: %s", strings.Join(exts, ", "))
	}
	return nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
