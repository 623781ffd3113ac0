// Package generate drives the pipeline: validate, parse each header,
// extract, register types, render and write the output file.
//
// Output is written only after rendering succeeds, through a temporary
// file in the output directory that is renamed into place.
package generate

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/extract"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/logger"
	"github.com/teranos/autogen/model"
	"github.com/teranos/autogen/render"
	"github.com/teranos/autogen/typeconv"
	"go.uber.org/zap"
)

// Generator runs generations against one native library.
type Generator struct {
	lib *frontend.Library
	log *zap.SugaredLogger

	// Debounce is how long Watch waits for changes to settle.
	Debounce time.Duration
}

// New returns a generator. lib is configured on first Run and shared by
// every later run.
func New(lib *frontend.Library, log *zap.SugaredLogger) *Generator {
	if lib == nil {
		lib = frontend.NewLibrary()
	}
	return &Generator{lib: lib, log: logger.OrNop(log), Debounce: 300 * time.Millisecond}
}

// Result summarizes a successful run.
type Result struct {
	Output       string
	Bytes        int
	Declarations *model.Declarations
	Duration     time.Duration
}

// Run renders opts.Template over every input and writes opts.Output.
func (g *Generator) Run(opts Options) (*Result, error) {
	start := time.Now()

	text, decls, err := g.render(opts)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(opts.Output, []byte(text)); err != nil {
		return nil, err
	}

	g.log.Infow("Generated output",
		logger.FieldOutput, opts.Output,
		logger.FieldCount, decls.Count(),
		logger.FieldSize, len(text),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return &Result{
		Output:       opts.Output,
		Bytes:        len(text),
		Declarations: decls,
		Duration:     time.Since(start),
	}, nil
}

// Extract returns the merged declarations of every input without
// rendering. Template and Output are ignored.
func (g *Generator) Extract(opts Options) (*model.Declarations, error) {
	if err := opts.ValidateSources(); err != nil {
		return nil, err
	}
	return g.extract(opts)
}

func (g *Generator) render(opts Options) (string, *model.Declarations, error) {
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}

	decls, err := g.extract(opts)
	if err != nil {
		return "", nil, err
	}

	conv := typeconv.New(g.log.Named("typeconv"))
	conv.RegisterAll(decls.TypeNames()...)
	names := make([]string, 0, len(opts.Types))
	for name := range opts.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		conv.Register(name, opts.Types[name])
	}

	text, err := render.New(conv, opts.Namespace, g.log.Named("render")).Render(opts.Template, decls)
	if err != nil {
		return "", nil, err
	}
	return text, decls, nil
}

func (g *Generator) extract(opts Options) (*model.Declarations, error) {
	adapter, err := g.adapter(opts)
	if err != nil {
		return nil, err
	}

	ex := extract.New(opts.Namespace, g.log.Named("extract"))
	merged := model.New()
	for _, in := range opts.Inputs {
		tu, err := adapter.Parse(in, nil)
		if err != nil {
			return nil, err
		}
		decls, err := ex.Extract(tu)
		if err != nil {
			return nil, err
		}
		g.log.Debugw("Extracted header",
			logger.FieldFile, in,
			logger.FieldCount, decls.Count())
		merged.Append(decls)
	}
	return merged, nil
}

func (g *Generator) adapter(opts Options) (frontend.Adapter, error) {
	if err := g.lib.Configure(opts.Library); err != nil {
		return nil, err
	}
	if opts.Adapter != nil {
		return opts.Adapter, nil
	}

	fopts := opts.FrontendOptions
	if fopts.Log == nil {
		fopts.Log = g.log.Named("frontend")
	}
	return frontend.Open(opts.Frontend, g.lib, fopts)
}

// writeAtomic replaces path with data, or leaves it untouched on failure.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to set mode on %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "failed to move output into place at %s", path)
	}
	return nil
}
