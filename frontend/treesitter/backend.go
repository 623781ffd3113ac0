// Package treesitter is the pure tree-sitter front end.
//
// There is no preprocessor: configured defines, plus #define directives
// found in the header and in headers it includes with quotes, are expanded
// textually before parsing. Everything else about macros is ignored.
package treesitter

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/logger"
	"go.uber.org/zap"
)

// maxIncludeDepth bounds how far quoted includes are followed for defines.
const maxIncludeDepth = 8

func init() {
	frontend.Register(frontend.BackendTreeSitter, New)
}

// Backend parses headers with the tree-sitter C++ grammar.
type Backend struct {
	lib    *frontend.Library
	opts   frontend.Options
	macros *frontend.Expander
	log    *zap.SugaredLogger
}

// New builds a tree-sitter backend. The native library is only required to be
// configured; this backend does not load it.
func New(lib *frontend.Library, opts frontend.Options) (frontend.Adapter, error) {
	macros, err := frontend.NewExpander(opts.Defines)
	if err != nil {
		return nil, err
	}
	log := logger.OrNop(opts.Log).With(logger.FieldBackend, frontend.BackendTreeSitter)
	log.Debugw("Front end ready",
		logger.FieldLibrary, lib.Path(),
		logger.FieldCount, macros.Len())

	return &Backend{lib: lib, opts: opts, macros: macros, log: log}, nil
}

// Name returns "treesitter".
func (b *Backend) Name() string { return frontend.BackendTreeSitter }

// Parse lowers one header into the neutral cursor tree.
func (b *Backend) Parse(path string, content []byte) (*frontend.TranslationUnit, error) {
	start := time.Now()

	src, err := frontend.ReadSource(path, content)
	if err != nil {
		return nil, err
	}

	macros := b.macros.Clone()
	b.learnDefines(macros, path, src, map[string]bool{}, 0)
	expanded := macros.Expand(src)

	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, expanded)
	if err != nil {
		return nil, &frontend.ParseError{File: path, Err: errors.Wrap(err, "tree-sitter parse failed")}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &frontend.ParseError{File: path, Err: errors.New("tree-sitter returned no root node")}
	}

	l := &lowerer{src: expanded, file: path}
	tu := &frontend.TranslationUnit{
		File: path,
		Root: l.translationUnit(root),
	}
	tu.Diagnostics = append(syntaxDiagnostics(root, expanded, path), l.diags...)

	for _, d := range tu.Diagnostics {
		b.log.Debugw("Diagnostic",
			logger.FieldFile, d.Location.File,
			logger.FieldLine, d.Location.Line,
			logger.FieldColumn, d.Location.Column,
			"severity", d.Severity.String(),
			"message", d.Message)
	}
	if errs := tu.Errors(); len(errs) > 0 && !b.opts.Strict {
		b.log.Warnw("Header has syntax errors, continuing with a partial tree",
			logger.FieldFile, path,
			logger.FieldCount, len(errs))
	}

	if err := frontend.Check(tu, b.opts.Strict); err != nil {
		return nil, err
	}

	b.opts.TraceCursors(b.log, tu)
	b.log.Debugw("Parsed header",
		logger.FieldFile, path,
		logger.FieldSize, len(src),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return tu, nil
}

// learnDefines records #define directives from src and, recursively, from
// quoted includes resolved next to the including file. Configured defines
// and earlier definitions win.
func (b *Backend) learnDefines(macros *frontend.Expander, path string, src []byte, visited map[string]bool, depth int) {
	visited[filepath.Clean(path)] = true

	for _, m := range frontend.LearnDefines(src) {
		macros.DefineIfAbsent(m)
	}
	if depth >= maxIncludeDepth {
		return
	}

	dir := filepath.Dir(path)
	for _, inc := range frontend.QuotedIncludes(src) {
		target := filepath.Clean(filepath.Join(dir, inc))
		if visited[target] {
			continue
		}
		data, err := os.ReadFile(target)
		if err != nil {
			b.log.Debugw("Skipping unreadable include",
				logger.FieldFile, target,
				logger.FieldError, err)
			visited[target] = true
			continue
		}
		b.learnDefines(macros, target, data, visited, depth+1)
	}
}
