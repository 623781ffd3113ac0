//go:build libclang

package clang

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	libclang "github.com/go-clang/clang-v13/clang"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/logger"
	"go.uber.org/zap"
)

func init() {
	frontend.Register(frontend.BackendClang, New)
}

// Backend parses headers with libclang.
type Backend struct {
	lib  *frontend.Library
	opts frontend.Options
	args []string
	log  *zap.SugaredLogger
}

// New checks the linked libclang and builds the backend. Defines are passed
// to the compiler as -D arguments.
func New(lib *frontend.Library, opts frontend.Options) (frontend.Adapter, error) {
	log := logger.OrNop(opts.Log).With(logger.FieldBackend, frontend.BackendClang)

	banner := libclang.GetClangVersion()
	v, err := CheckVersion(banner)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(strings.ToLower(filepath.Base(lib.Path())), "clang") {
		log.Warnw("Configured library does not look like libclang",
			logger.FieldLibrary, lib.Path())
	}
	log.Infow("Using libclang",
		logger.FieldLibrary, lib.Path(),
		"version", v.String())

	return &Backend{lib: lib, opts: opts, args: opts.CompilerArgs(), log: log}, nil
}

// Name returns "clang".
func (b *Backend) Name() string { return frontend.BackendClang }

// Parse lowers one header into the neutral cursor tree. Only declarations
// spelled in the header itself are kept; included headers are parsed for
// context but not reported.
func (b *Backend) Parse(path string, content []byte) (*frontend.TranslationUnit, error) {
	start := time.Now()

	var unsaved []libclang.UnsavedFile
	if content != nil {
		unsaved = []libclang.UnsavedFile{libclang.NewUnsavedFile(path, string(content))}
	} else if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputNotFoundError("header", path)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	idx := libclang.NewIndex(0, 0)
	defer idx.Dispose()

	tu := idx.ParseTranslationUnit(path, b.args, unsaved, 0)
	if tu == (libclang.TranslationUnit{}) {
		return nil, &frontend.ParseError{File: path, Err: errors.New("libclang could not create a translation unit")}
	}
	defer tu.Dispose()

	unit := &frontend.TranslationUnit{File: path, Diagnostics: diagnostics(tu)}
	for _, d := range unit.Diagnostics {
		b.log.Debugw("Diagnostic",
			logger.FieldFile, d.Location.File,
			logger.FieldLine, d.Location.Line,
			"severity", d.Severity.String(),
			"message", d.Message)
	}
	if err := frontend.Check(unit, b.opts.Strict); err != nil {
		return nil, err
	}

	root := &frontend.Cursor{
		Kind:     frontend.KindTranslationUnit,
		Spelling: path,
		Location: frontend.Location{File: path, Line: 1, Column: 1},
	}
	lowerChildren(root, tu.TranslationUnitCursor())
	unit.Root = root
	b.opts.TraceCursors(b.log, unit)

	b.log.Debugw("Parsed header",
		logger.FieldFile, path,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return unit, nil
}

var kinds = map[libclang.CursorKind]frontend.Kind{
	libclang.Cursor_Namespace:        frontend.KindNamespace,
	libclang.Cursor_FunctionDecl:     frontend.KindFunction,
	libclang.Cursor_ClassDecl:        frontend.KindClass,
	libclang.Cursor_StructDecl:       frontend.KindStruct,
	libclang.Cursor_EnumDecl:         frontend.KindEnum,
	libclang.Cursor_EnumConstantDecl: frontend.KindEnumConstant,
	libclang.Cursor_TypedefDecl:      frontend.KindTypedef,
	libclang.Cursor_TypeAliasDecl:    frontend.KindTypedef,
	libclang.Cursor_CXXMethod:        frontend.KindMethod,
	libclang.Cursor_Constructor:      frontend.KindConstructor,
	libclang.Cursor_Destructor:       frontend.KindDestructor,
	libclang.Cursor_FieldDecl:        frontend.KindField,
	libclang.Cursor_ParmDecl:         frontend.KindParameter,
	libclang.Cursor_AnnotateAttr:     frontend.KindAnnotation,
}

func lowerChildren(parent *frontend.Cursor, c libclang.Cursor) {
	c.Visit(func(child, _ libclang.Cursor) libclang.ChildVisitResult {
		// Attributes are located at their macro expansion, which may be
		// in an included header.
		if child.Kind() != libclang.Cursor_AnnotateAttr && !child.Location().IsFromMainFile() {
			return libclang.ChildVisit_Continue
		}
		if lowered := lower(child); lowered != nil {
			parent.Add(lowered)
		}
		return libclang.ChildVisit_Continue
	})
}

func lower(c libclang.Cursor) *frontend.Cursor {
	kind, ok := kinds[c.Kind()]
	if !ok {
		return nil
	}

	out := &frontend.Cursor{
		Kind:     kind,
		Spelling: c.Spelling(),
		Access:   access(c.AccessSpecifier()),
		Location: location(c.Location()),
	}

	switch kind {
	case frontend.KindFunction, frontend.KindMethod, frontend.KindConstructor, frontend.KindDestructor:
		out.ResultType = c.ResultType().Spelling()
		out.Static = kind == frontend.KindMethod && c.CXXMethod_IsStatic()
		out.Comment = c.BriefCommentText()
	case frontend.KindField:
		out.Type = c.Type().Spelling()
		out.Comment = c.BriefCommentText()
	case frontend.KindParameter:
		out.Type = c.Type().Spelling()
	case frontend.KindTypedef:
		out.Type = c.TypedefDeclUnderlyingType().Spelling()
		out.Comment = c.BriefCommentText()
	case frontend.KindEnumConstant:
		out.EnumValue = c.EnumConstantDeclValue()
		out.Comment = c.BriefCommentText()
	case frontend.KindClass, frontend.KindStruct, frontend.KindEnum:
		out.Comment = c.BriefCommentText()
	case frontend.KindAnnotation:
		return out
	}

	lowerChildren(out, c)
	return out
}

func access(a libclang.AccessSpecifier) frontend.Access {
	switch a {
	case libclang.AccessSpecifier_Public:
		return frontend.AccessPublic
	case libclang.AccessSpecifier_Protected:
		return frontend.AccessProtected
	case libclang.AccessSpecifier_Private:
		return frontend.AccessPrivate
	default:
		return frontend.AccessNone
	}
}

func location(loc libclang.SourceLocation) frontend.Location {
	file, line, col, _ := loc.FileLocation()
	return frontend.Location{File: file.Name(), Line: int(line), Column: int(col)}
}

func diagnostics(tu libclang.TranslationUnit) []frontend.Diagnostic {
	var out []frontend.Diagnostic
	for i := uint32(0); i < tu.NumDiagnostics(); i++ {
		d := tu.Diagnostic(i)
		out = append(out, frontend.Diagnostic{
			Severity: severity(d.Severity()),
			Location: location(d.Location()),
			Message:  d.Spelling(),
		})
		d.Dispose()
	}
	return out
}

func severity(s libclang.DiagnosticSeverity) frontend.Severity {
	switch s {
	case libclang.Diagnostic_Fatal:
		return frontend.SeverityFatal
	case libclang.Diagnostic_Error:
		return frontend.SeverityError
	case libclang.Diagnostic_Warning:
		return frontend.SeverityWarning
	default:
		return frontend.SeverityNote
	}
}
