// Package render executes text templates over the declaration model.
//
// Templates receive *model.Declarations as their data (.Functions,
// .Classes, .Structs, .Enums, .Typedefs) and the functions in FuncMap,
// including convert for type-name substitution.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/logger"
	"github.com/teranos/autogen/model"
	"github.com/teranos/autogen/typeconv"
	"go.uber.org/zap"
)

// TemplateError reports a template that could not be loaded, parsed or
// executed.
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Template, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TemplateError) Unwrap() error { return e.Err }

// Is matches errors.ErrTemplate.
func (e *TemplateError) Is(target error) bool { return target == errors.ErrTemplate }

// Renderer renders templates with a shared type converter.
type Renderer struct {
	conv      *typeconv.Converter
	namespace string
	log       *zap.SugaredLogger
}

// New returns a renderer. namespace is exposed to templates through the
// namespace function for qualifying native names.
func New(conv *typeconv.Converter, namespace string, log *zap.SugaredLogger) *Renderer {
	return &Renderer{conv: conv, namespace: namespace, log: logger.OrNop(log)}
}

// Render loads the template at path and executes it over decls.
func (r *Renderer) Render(path string, decls *model.Declarations) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Template: path, Err: errors.NewInputNotFoundError("template", path)}
		}
		return "", &TemplateError{Template: path, Err: err}
	}
	return r.RenderString(filepath.Base(path), string(data), decls)
}

// RenderString executes template text named name over decls.
func (r *Renderer) RenderString(name, text string, decls *model.Declarations) (string, error) {
	start := time.Now()
	if decls == nil {
		decls = model.New()
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(r.FuncMap()).
		Parse(text)
	if err != nil {
		return "", &TemplateError{Template: name, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, decls); err != nil {
		return "", &TemplateError{Template: name, Err: err}
	}

	r.log.Debugw("Rendered template",
		logger.FieldTemplate, name,
		logger.FieldSize, buf.Len(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return buf.String(), nil
}
