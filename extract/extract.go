// Package extract builds the declaration model from a front-end cursor tree.
//
// Only direct children of the root namespace are considered. Members of
// classes and structs are kept when they are public.
package extract

import (
	"fmt"
	"time"

	"github.com/teranos/autogen/annotate"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/logger"
	"github.com/teranos/autogen/model"
	"go.uber.org/zap"
)

// Extractor walks translation units and collects declarations of one root
// namespace.
type Extractor struct {
	Namespace string
	Log       *zap.SugaredLogger
}

// New returns an extractor for the given root namespace.
func New(namespace string, log *zap.SugaredLogger) *Extractor {
	return &Extractor{Namespace: namespace, Log: log}
}

// Extract returns the declarations of tu in source order. A nil unit is a
// parse error; members the model has no place for are skipped.
func (e *Extractor) Extract(tu *frontend.TranslationUnit) (*model.Declarations, error) {
	if tu == nil || tu.Root == nil {
		file := ""
		if tu != nil {
			file = tu.File
		}
		return nil, &frontend.ParseError{File: file, Err: errors.New("no translation unit to extract from")}
	}

	start := time.Now()
	log := logger.OrNop(e.Log).With(logger.FieldFile, tu.File)
	decls := model.New()

	blocks := 0
	for _, c := range tu.Root.Children {
		if c.Kind != frontend.KindNamespace || c.Spelling != e.Namespace {
			continue
		}
		blocks++
		for _, child := range c.Children {
			e.declaration(log, decls, child)
		}
	}

	if blocks == 0 {
		log.Warnw("Root namespace not found, nothing extracted",
			logger.FieldNamespace, e.Namespace)
	}
	log.Debugw("Extracted declarations",
		logger.FieldNamespace, e.Namespace,
		"functions", len(decls.Functions),
		"classes", len(decls.Classes),
		"structs", len(decls.Structs),
		"enums", len(decls.Enums),
		"typedefs", len(decls.Typedefs),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return decls, nil
}

func (e *Extractor) declaration(log *zap.SugaredLogger, d *model.Declarations, c *frontend.Cursor) {
	switch c.Kind {
	case frontend.KindFunction:
		d.Functions = append(d.Functions, function(c, "Function"))
	case frontend.KindClass:
		d.Classes = append(d.Classes, class(log, c))
	case frontend.KindStruct:
		d.Structs = append(d.Structs, structure(log, c))
	case frontend.KindEnum:
		d.Enums = append(d.Enums, enum(c))
	case frontend.KindTypedef:
		d.Typedefs = append(d.Typedefs, model.Typedef{Name: c.Spelling, Type: c.Type})
	default:
		log.Debugw("Skipping declaration",
			logger.FieldKind, c.Kind.String(),
			logger.FieldSpelling, c.Spelling)
	}
}

// function converts a function-like cursor. noun names the kind in the
// fallback comment ("Function foo is not documented").
func function(c *frontend.Cursor, noun string) model.Function {
	f := model.Function{
		Name:        c.Spelling,
		Arguments:   []model.Argument{},
		ReturnType:  c.ResultType,
		Comment:     c.Comment,
		IsStatic:    c.Static,
		Annotations: annotate.Collect(c.AnnotationLiterals()...),
	}
	if f.Comment == "" {
		f.Comment = fmt.Sprintf("%s %s is not documented", noun, c.Spelling)
	}
	for _, p := range c.Parameters() {
		f.Arguments = append(f.Arguments, model.Argument{Name: p.Spelling, Type: p.Type})
	}
	return f
}

// members is the public surface of a class or struct.
type members struct {
	methods      []model.Function
	constructors []model.Function
	attributes   []model.Attribute
	hasDefault   bool
}

// collectMembers keeps public methods, fields and constructors. Every
// declared constructor counts towards the default-constructor rule; only a
// public zero-argument one makes the type default constructible.
func collectMembers(log *zap.SugaredLogger, c *frontend.Cursor) members {
	m := members{
		methods:    []model.Function{},
		attributes: []model.Attribute{},
	}

	declared := 0
	for _, child := range c.Children {
		switch child.Kind {
		case frontend.KindConstructor:
			declared++
			if child.Access != frontend.AccessPublic {
				continue
			}
			if len(child.Parameters()) == 0 {
				m.hasDefault = true
				continue
			}
			m.constructors = append(m.constructors, function(child, "Method"))
		case frontend.KindMethod:
			if child.Access == frontend.AccessPublic {
				m.methods = append(m.methods, function(child, "Method"))
			}
		case frontend.KindField:
			if child.Access == frontend.AccessPublic {
				m.attributes = append(m.attributes, model.Attribute{
					Name:    child.Spelling,
					Type:    child.Type,
					Comment: child.Comment,
				})
			}
		case frontend.KindAnnotation, frontend.KindDestructor:
		default:
			log.Debugw("Skipping member",
				logger.FieldDeclaration, c.Spelling,
				logger.FieldKind, child.Kind.String(),
				logger.FieldSpelling, child.Spelling)
		}
	}

	if declared == 0 {
		m.hasDefault = true
	}
	return m
}

func class(log *zap.SugaredLogger, c *frontend.Cursor) model.Class {
	m := collectMembers(log, c)
	return model.Class{
		Name:                  c.Spelling,
		Comment:               c.Comment,
		Methods:               m.methods,
		Constructors:          m.constructors,
		HasDefaultConstructor: m.hasDefault,
		Annotations:           annotate.Collect(c.AnnotationLiterals()...),
	}
}

func structure(log *zap.SugaredLogger, c *frontend.Cursor) model.Struct {
	m := collectMembers(log, c)
	return model.Struct{
		Name:                  c.Spelling,
		Comment:               c.Comment,
		Attributes:            m.attributes,
		Methods:               m.methods,
		Constructors:          m.constructors,
		HasDefaultConstructor: m.hasDefault,
		Annotations:           annotate.Collect(c.AnnotationLiterals()...),
	}
}

func enum(c *frontend.Cursor) model.Enum {
	e := model.Enum{
		Name:        c.Spelling,
		Comment:     c.Comment,
		Constants:   []model.EnumConstant{},
		Annotations: annotate.Collect(c.AnnotationLiterals()...),
	}
	for _, k := range c.ChildrenOf(frontend.KindEnumConstant) {
		e.Constants = append(e.Constants, model.EnumConstant{Name: k.Spelling, Value: k.EnumValue})
	}
	return e
}
