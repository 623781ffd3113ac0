package frontend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/autogen/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeLibrary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libclang.so")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	return path
}

func TestLibraryConfigure(t *testing.T) {
	t.Run("first call records absolute path", func(t *testing.T) {
		lib := NewLibrary()
		path := writeLibrary(t)

		require.NoError(t, lib.Configure(path))
		assert.True(t, lib.Configured())
		assert.True(t, filepath.IsAbs(lib.Path()))
	})

	t.Run("same path again is a no-op", func(t *testing.T) {
		lib := NewLibrary()
		path := writeLibrary(t)

		require.NoError(t, lib.Configure(path))
		require.NoError(t, lib.Configure(path))
		assert.Equal(t, path, lib.Path())
	})

	t.Run("different path is rejected", func(t *testing.T) {
		lib := NewLibrary()
		first := writeLibrary(t)
		second := writeLibrary(t)

		require.NoError(t, lib.Configure(first))
		err := lib.Configure(second)
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Equal(t, first, lib.Path())
	})

	t.Run("missing file", func(t *testing.T) {
		lib := NewLibrary()
		err := lib.Configure(filepath.Join(t.TempDir(), "nope.so"))
		require.Error(t, err)
		assert.True(t, errors.IsInputNotFoundError(err))
		assert.False(t, lib.Configured())
	})

	t.Run("empty path", func(t *testing.T) {
		err := NewLibrary().Configure("")
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("directory", func(t *testing.T) {
		err := NewLibrary().Configure(t.TempDir())
		assert.True(t, errors.IsConfigurationError(err))
	})
}

type stubAdapter struct{ name string }

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) Parse(path string, _ []byte) (*TranslationUnit, error) {
	return &TranslationUnit{File: path, Root: &Cursor{Kind: KindTranslationUnit}}, nil
}

func TestRegistry(t *testing.T) {
	Register("stub-test", func(lib *Library, opts Options) (Adapter, error) {
		return stubAdapter{name: "stub-test"}, nil
	})

	assert.Contains(t, Backends(), "stub-test")
	assert.Panics(t, func() {
		Register("stub-test", func(*Library, Options) (Adapter, error) { return nil, nil })
	})

	t.Run("open requires configured library", func(t *testing.T) {
		_, err := Open("stub-test", NewLibrary(), Options{})
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("open configured", func(t *testing.T) {
		lib := NewLibrary()
		require.NoError(t, lib.Configure(writeLibrary(t)))

		a, err := Open("stub-test", lib, Options{})
		require.NoError(t, err)
		assert.Equal(t, "stub-test", a.Name())
	})

	t.Run("unknown backend", func(t *testing.T) {
		lib := NewLibrary()
		require.NoError(t, lib.Configure(writeLibrary(t)))

		_, err := Open("missing-backend", lib, Options{})
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("explicit names pass through resolve", func(t *testing.T) {
		assert.Equal(t, BackendTreeSitter, Resolve(BackendTreeSitter))
		assert.NotEqual(t, BackendAuto, Resolve(BackendAuto))
		assert.Equal(t, Resolve(BackendAuto), Resolve(""))
	})
}

func TestCompilerArgs(t *testing.T) {
	args := Options{
		Defines: []string{"FOO=1"},
		Args:    []string{"-Iinclude"},
	}.CompilerArgs()

	assert.Equal(t, []string{"-x", "c++", "-std=c++17", "-fgnu-extensions", "-fparse-all-comments", "-DFOO=1", "-Iinclude"}, args)
	assert.Contains(t, Options{Std: "c++20"}.CompilerArgs(), "-std=c++20")
}

func TestReadSource(t *testing.T) {
	data, err := ReadSource("inline.h", []byte("int x;"))
	require.NoError(t, err)
	assert.Equal(t, "int x;", string(data))

	_, err = ReadSource(filepath.Join(t.TempDir(), "missing.h"), nil)
	assert.True(t, errors.IsInputNotFoundError(err))
}

func TestCheck(t *testing.T) {
	loc := Location{File: "a.h", Line: 3, Column: 1}
	tu := &TranslationUnit{
		File: "a.h",
		Diagnostics: []Diagnostic{
			{Severity: SeverityWarning, Location: loc, Message: "unused"},
			{Severity: SeverityError, Location: loc, Message: "unknown type name 'Foo'"},
		},
	}

	assert.NoError(t, Check(tu, false))

	err := Check(tu, true)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Len(t, pe.Diagnostics, 1)
	assert.Contains(t, err.Error(), "a.h:3:1: error: unknown type name 'Foo'")

	tu.Diagnostics = append(tu.Diagnostics, Diagnostic{Severity: SeverityFatal, Location: loc, Message: "file not found"})
	assert.Error(t, Check(tu, false))
	assert.Len(t, tu.Errors(), 2)
}

func TestCursorHelpers(t *testing.T) {
	fn := (&Cursor{Kind: KindFunction, Spelling: "foo"}).Add(
		&Cursor{Kind: KindParameter, Spelling: "a", Type: "int"},
		&Cursor{Kind: KindAnnotation, Spelling: "python"},
		&Cursor{Kind: KindParameter, Spelling: "b", Type: "float"},
	)

	params := fn.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "b", params[1].Spelling)
	assert.Equal(t, []string{"python"}, fn.AnnotationLiterals())

	var seen []string
	fn.Walk(func(c *Cursor) bool {
		seen = append(seen, c.Kind.String())
		return true
	})
	assert.Equal(t, []string{"Function", "Parameter", "Annotation", "Parameter"}, seen)
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestTraceCursors(t *testing.T) {
	tu := &TranslationUnit{
		File: "a.h",
		Root: (&Cursor{Kind: KindTranslationUnit, Spelling: "a.h"}).Add(
			&Cursor{Kind: KindFunction, Spelling: "foo", Location: Location{File: "a.h", Line: 3}},
		),
	}

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core).Sugar()

	Options{}.TraceCursors(log, tu)
	assert.Zero(t, logs.Len())

	Options{Trace: true}.TraceCursors(log, tu)
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[1].ContextMap()
	assert.Equal(t, "Function", entry["kind"])
	assert.Equal(t, "foo", entry["spelling"])
	assert.EqualValues(t, 3, entry["line"])
}

func TestParseDefine(t *testing.T) {
	m, err := ParseDefine("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, Macro{Name: "DEBUG", Body: "1"}, m)
	assert.False(t, m.FunctionLike())

	m, err = ParseDefine("NTT_ANNOTATE(a)=__attribute__((annotate(a)))")
	require.NoError(t, err)
	assert.Equal(t, "NTT_ANNOTATE", m.Name)
	assert.Equal(t, []string{"a"}, m.Params)
	assert.Equal(t, "__attribute__((annotate(a)))", m.Body)

	m, err = ParseDefine("EMPTY()=")
	require.NoError(t, err)
	assert.True(t, m.FunctionLike())
	assert.Empty(t, m.Params)

	for _, bad := range []string{"", "1ABC=2", "F(a=1", "F(a-b)=1"} {
		_, err := ParseDefine(bad)
		assert.True(t, errors.IsConfigurationError(err), bad)
	}
}

func defaultExpander(t *testing.T) *Expander {
	t.Helper()
	e, err := NewExpander([]string{
		`NTT_ANNOTATE(a)=__attribute__((annotate(a)))`,
		`NTT_PYTHON_BINDING=NTT_ANNOTATE("python")`,
		`NTT_SINGLETON=NTT_ANNOTATE("singleton")`,
	})
	require.NoError(t, err)
	return e
}

func TestExpand(t *testing.T) {
	e := defaultExpander(t)

	t.Run("annotation macros", func(t *testing.T) {
		got := string(e.Expand([]byte("class NTT_PYTHON_BINDING NTT_SINGLETON Camera {};")))
		assert.Equal(t,
			`class __attribute__((annotate("python"))) __attribute__((annotate("singleton"))) Camera {};`,
			got)
	})

	t.Run("comments and literals untouched", func(t *testing.T) {
		src := "// NTT_SINGLETON here\nconst char* s = \"NTT_SINGLETON\"; /* NTT_SINGLETON */"
		assert.Equal(t, src, string(e.Expand([]byte(src))))
	})

	t.Run("directives untouched", func(t *testing.T) {
		src := "#define X NTT_SINGLETON\nint NTT_SINGLETON y;"
		got := string(e.Expand([]byte(src)))
		assert.True(t, strings.HasPrefix(got, "#define X NTT_SINGLETON\n"))
		assert.Contains(t, got, `int __attribute__((annotate("singleton"))) y;`)
	})

	t.Run("identifier boundaries", func(t *testing.T) {
		src := "int NTT_SINGLETON_COUNT;"
		assert.Equal(t, src, string(e.Expand([]byte(src))))
	})

	t.Run("function-like name without call", func(t *testing.T) {
		src := "int NTT_ANNOTATE;"
		assert.Equal(t, src, string(e.Expand([]byte(src))))
	})

	t.Run("multi-line invocation keeps line count", func(t *testing.T) {
		src := "void f() NTT_ANNOTATE(\n\"python\"\n);\nint g();"
		got := string(e.Expand([]byte(src)))
		assert.Equal(t, strings.Count(src, "\n"), strings.Count(got, "\n"))
		assert.Contains(t, got, `__attribute__((annotate("python")))`)
	})

	t.Run("self reference stops", func(t *testing.T) {
		loop, err := NewExpander([]string{"A=B", "B=A"})
		require.NoError(t, err)
		assert.Equal(t, "int A;", string(loop.Expand([]byte("int A;"))))
	})

	t.Run("arguments with nested parens and commas in strings", func(t *testing.T) {
		pair, err := NewExpander([]string{"PAIR(a,b)=a + b"})
		require.NoError(t, err)
		got := string(pair.Expand([]byte(`x = PAIR((1, 2), "x,y");`)))
		assert.Equal(t, `x = (1, 2) + "x,y";`, got)
	})

	t.Run("digit separators", func(t *testing.T) {
		src := "enum E { A = 1'000, B };"
		assert.Equal(t, src, string(e.Expand([]byte(src))))
	})

	t.Run("no macros returns input", func(t *testing.T) {
		empty, err := NewExpander(nil)
		require.NoError(t, err)
		assert.Equal(t, "int x;", string(empty.Expand([]byte("int x;"))))
	})
}

func TestExpanderCloneAndDefineIfAbsent(t *testing.T) {
	e := defaultExpander(t)
	c := e.Clone()

	assert.False(t, c.DefineIfAbsent(Macro{Name: "NTT_SINGLETON", Body: "x"}))
	assert.True(t, c.DefineIfAbsent(Macro{Name: "EXTRA", Body: "1"}))
	assert.Equal(t, e.Len()+1, c.Len())
}

func TestLearnDefines(t *testing.T) {
	src := []byte(`#pragma once
#define ENGINE_API
#define EXPORT(x) \
    __attribute__((annotate(x)))
# define LIMIT 16
int notADefine;
`)
	got := LearnDefines(src)
	require.Len(t, got, 3)
	assert.Equal(t, Macro{Name: "ENGINE_API"}, got[0])
	assert.Equal(t, "EXPORT", got[1].Name)
	assert.Equal(t, []string{"x"}, got[1].Params)
	assert.Equal(t, "__attribute__((annotate(x)))", got[1].Body)
	assert.Equal(t, "LIMIT", got[2].Name)
	assert.Equal(t, "16", got[2].Body)
}

func TestQuotedIncludes(t *testing.T) {
	src := []byte("#include <vector>\n#include \"engine/macros.h\"\n  #  include \"types.h\"\n")
	assert.Equal(t, []string{"engine/macros.h", "types.h"}, QuotedIncludes(src))
}
