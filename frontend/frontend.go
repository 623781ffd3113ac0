// Package frontend turns C++ headers into a neutral cursor tree.
//
// Backends register themselves by name (see Register). The treesitter
// backend is always available; the clang backend is compiled in with the
// libclang build tag. "auto" prefers clang when it is present.
package frontend

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/logger"
	"go.uber.org/zap"
)

// Backend names.
const (
	BackendAuto       = "auto"
	BackendClang      = "clang"
	BackendTreeSitter = "treesitter"
)

// Adapter parses one header into a translation unit.
type Adapter interface {
	// Name returns the backend name.
	Name() string
	// Parse parses path. When content is non-nil it is used instead of the
	// file on disk, and path only names the unit.
	Parse(path string, content []byte) (*TranslationUnit, error)
}

// Options configure a backend.
type Options struct {
	Std     string   // language standard, e.g. "c++17"
	Args    []string // extra compiler arguments
	Defines []string // NAME=VALUE or NAME(params)=VALUE
	Strict  bool     // any error diagnostic fails the parse
	Trace   bool     // log every lowered cursor at debug level
	Log     *zap.SugaredLogger
}

// CompilerArgs returns the argument list a compiler-backed front end should use.
func (o Options) CompilerArgs() []string {
	std := o.Std
	if std == "" {
		std = "c++17"
	}
	args := []string{"-x", "c++", "-std=" + std, "-fgnu-extensions", "-fparse-all-comments"}
	for _, d := range o.Defines {
		args = append(args, "-D"+d)
	}
	return append(args, o.Args...)
}

// TraceCursors logs each cursor of tu to log when o.Trace is set.
func (o Options) TraceCursors(log *zap.SugaredLogger, tu *TranslationUnit) {
	if !o.Trace || tu == nil {
		return
	}
	tu.Root.Walk(func(c *Cursor) bool {
		log.Debugw("Cursor",
			logger.FieldKind, c.Kind.String(),
			logger.FieldSpelling, c.Spelling,
			logger.FieldFile, c.Location.File,
			logger.FieldLine, c.Location.Line)
		return true
	})
}

// Factory builds an adapter bound to a configured library.
type Factory func(lib *Library, opts Options) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available to Open. It panics on duplicate names.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic("frontend: backend registered twice: " + name)
	}
	registry[name] = f
}

// Backends lists registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps "auto" (or "") to a concrete registered backend.
func Resolve(name string) string {
	if name != "" && name != BackendAuto {
		return name
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	if _, ok := registry[BackendClang]; ok {
		return BackendClang
	}
	return BackendTreeSitter
}

// Open builds the named backend. The library must already be configured.
func Open(name string, lib *Library, opts Options) (Adapter, error) {
	if err := lib.require(); err != nil {
		return nil, err
	}

	name = Resolve(name)

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		err := errors.NewConfigurationError("unknown front-end backend %q", name)
		if name == BackendClang {
			return nil, errors.WithHint(err, "rebuild autogen with -tags libclang to enable the clang backend")
		}
		return nil, errors.WithHintf(err, "available backends: %s", strings.Join(Backends(), ", "))
	}
	return factory(lib, opts)
}

// ReadSource returns content when given, otherwise the file at path.
func ReadSource(path string, content []byte) ([]byte, error) {
	if content != nil {
		return content, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputNotFoundError("header", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}

// ParseError reports a translation unit the front end rejected.
type ParseError struct {
	File        string
	Diagnostics []Diagnostic
	Err         error
}

func (e *ParseError) Error() string {
	msg := "parse error: " + e.File
	if len(e.Diagnostics) > 0 {
		msg += ": " + e.Diagnostics[0].String()
		if n := len(e.Diagnostics) - 1; n > 0 {
			msg += " (and " + strconv.Itoa(n) + " more)"
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches errors.ErrParse.
func (e *ParseError) Is(target error) bool { return target == errors.ErrParse }

// Check returns a *ParseError when the unit's diagnostics make it unusable:
// any fatal diagnostic, or any error diagnostic in strict mode.
func Check(tu *TranslationUnit, strict bool) error {
	var failing []Diagnostic
	for _, d := range tu.Diagnostics {
		if d.Severity == SeverityFatal || (strict && d.Severity == SeverityError) {
			failing = append(failing, d)
		}
	}
	if len(failing) == 0 {
		return nil
	}
	return &ParseError{File: tu.File, Diagnostics: failing}
}
