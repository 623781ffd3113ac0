package treesitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
)

var annotationDefines = []string{
	`NTT_ANNOTATE(a)=__attribute__((annotate(a)))`,
	`NTT_PYTHON_BINDING=NTT_ANNOTATE("python")`,
	`NTT_SINGLETON=NTT_ANNOTATE("singleton")`,
}

const engineHeader = `#pragma once
#include <string>

namespace ntt {

/// Adds two integers.
int add(int a, int b);

// Scale factor.
float scale(float value, float factor = 1.0f);

enum Color {
    Red,
    Green = 5,
    Blue,
    Mask = 1 << 4,
};

typedef int EntityId;
using Name = std::string;

class NTT_PYTHON_BINDING Camera {
public:
    Camera();
    /// Zoom level.
    float zoom() const;
    static Camera* instance();
    void set_target(const std::string& name, int* out);
private:
    void hidden();
};

struct Vec2 {
    float x;
    float y;
    float length() const;
};

}  // namespace ntt
`

func open(t *testing.T, opts frontend.Options) frontend.Adapter {
	t.Helper()
	lib := frontend.NewLibrary()
	path := filepath.Join(t.TempDir(), "libclang.so")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	require.NoError(t, lib.Configure(path))

	a, err := frontend.Open(frontend.BackendTreeSitter, lib, opts)
	require.NoError(t, err)
	return a
}

func find(t *testing.T, parent *frontend.Cursor, kind frontend.Kind, name string) *frontend.Cursor {
	t.Helper()
	for _, c := range parent.Children {
		if c.Kind == kind && c.Spelling == name {
			return c
		}
	}
	t.Fatalf("no %s %q under %s", kind, name, parent.Spelling)
	return nil
}

func parseEngine(t *testing.T) *frontend.Cursor {
	t.Helper()
	a := open(t, frontend.Options{Defines: annotationDefines})
	assert.Equal(t, frontend.BackendTreeSitter, a.Name())

	tu, err := a.Parse("engine.h", []byte(engineHeader))
	require.NoError(t, err)
	assert.Empty(t, tu.Errors())
	return find(t, tu.Root, frontend.KindNamespace, "ntt")
}

func TestParseFunctions(t *testing.T) {
	ns := parseEngine(t)

	add := find(t, ns, frontend.KindFunction, "add")
	assert.Equal(t, "int", add.ResultType)
	assert.Equal(t, "Adds two integers.", add.Comment)
	require.Len(t, add.Parameters(), 2)
	assert.Equal(t, "a", add.Parameters()[0].Spelling)
	assert.Equal(t, "int", add.Parameters()[0].Type)

	scale := find(t, ns, frontend.KindFunction, "scale")
	assert.Equal(t, "Scale factor.", scale.Comment)
	require.Len(t, scale.Parameters(), 2)
	assert.Equal(t, "factor", scale.Parameters()[1].Spelling)
	assert.Equal(t, "float", scale.Parameters()[1].Type)
}

func TestParseEnum(t *testing.T) {
	ns := parseEngine(t)

	color := find(t, ns, frontend.KindEnum, "Color")
	values := map[string]int64{}
	for _, c := range color.ChildrenOf(frontend.KindEnumConstant) {
		values[c.Spelling] = c.EnumValue
	}
	assert.Equal(t, map[string]int64{"Red": 0, "Green": 5, "Blue": 6, "Mask": 16}, values)
}

func TestParseTypedefs(t *testing.T) {
	ns := parseEngine(t)

	assert.Equal(t, "int", find(t, ns, frontend.KindTypedef, "EntityId").Type)
	assert.Equal(t, "std::string", find(t, ns, frontend.KindTypedef, "Name").Type)
}

func TestParseClass(t *testing.T) {
	ns := parseEngine(t)

	camera := find(t, ns, frontend.KindClass, "Camera")
	assert.Equal(t, []string{"python"}, camera.AnnotationLiterals())

	ctor := find(t, camera, frontend.KindConstructor, "Camera")
	assert.Equal(t, frontend.AccessPublic, ctor.Access)
	assert.Empty(t, ctor.Parameters())

	zoom := find(t, camera, frontend.KindMethod, "zoom")
	assert.Equal(t, "float", zoom.ResultType)
	assert.Equal(t, "Zoom level.", zoom.Comment)
	assert.False(t, zoom.Static)

	instance := find(t, camera, frontend.KindMethod, "instance")
	assert.True(t, instance.Static)
	assert.Equal(t, "Camera *", instance.ResultType)

	target := find(t, camera, frontend.KindMethod, "set_target")
	require.Len(t, target.Parameters(), 2)
	assert.Equal(t, "const std::string &", target.Parameters()[0].Type)
	assert.Equal(t, "int *", target.Parameters()[1].Type)

	hidden := find(t, camera, frontend.KindMethod, "hidden")
	assert.Equal(t, frontend.AccessPrivate, hidden.Access)
}

func TestParseStruct(t *testing.T) {
	ns := parseEngine(t)

	vec := find(t, ns, frontend.KindStruct, "Vec2")
	fields := vec.ChildrenOf(frontend.KindField)
	require.Len(t, fields, 2)
	assert.Equal(t, "x", fields[0].Spelling)
	assert.Equal(t, "float", fields[0].Type)
	assert.Equal(t, frontend.AccessPublic, fields[0].Access)

	length := find(t, vec, frontend.KindMethod, "length")
	assert.Equal(t, frontend.AccessPublic, length.Access)
}

const trailingHeader = `namespace ntt {

enum class Level {
    Debug, ///< Verbose output.
    Info,  // plain note
    Warn   ///< Something odd.
};

struct Record {
    int line; ///< Source line.
    /// File name.
    const char *file; ///< ignored
    float value;
};

}
`

func TestTrailingMemberComments(t *testing.T) {
	a := open(t, frontend.Options{})
	tu, err := a.Parse("logging.h", []byte(trailingHeader))
	require.NoError(t, err)
	ns := find(t, tu.Root, frontend.KindNamespace, "ntt")

	level := find(t, ns, frontend.KindEnum, "Level")
	comments := map[string]string{}
	for _, c := range level.ChildrenOf(frontend.KindEnumConstant) {
		comments[c.Spelling] = c.Comment
	}
	assert.Equal(t, map[string]string{
		"Debug": "Verbose output.",
		"Info":  "",
		"Warn":  "Something odd.",
	}, comments)

	record := find(t, ns, frontend.KindStruct, "Record")
	assert.Equal(t, "Source line.", find(t, record, frontend.KindField, "line").Comment)
	assert.Equal(t, "File name.", find(t, record, frontend.KindField, "file").Comment)
	assert.Empty(t, find(t, record, frontend.KindField, "value").Comment)
}

func TestClassDefaultAccessIsPrivate(t *testing.T) {
	a := open(t, frontend.Options{})
	tu, err := a.Parse("hidden.h", []byte("class Secret {\n  int value();\n};\n"))
	require.NoError(t, err)

	secret := find(t, tu.Root, frontend.KindClass, "Secret")
	assert.Equal(t, frontend.AccessPrivate, find(t, secret, frontend.KindMethod, "value").Access)
}

func TestDefinesFromQuotedIncludes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros.h"),
		[]byte("#pragma once\n#define EXPORT_PY __attribute__((annotate(\"python\")))\n"), 0o644))
	header := filepath.Join(dir, "api.h")
	require.NoError(t, os.WriteFile(header,
		[]byte("#include \"macros.h\"\nnamespace ntt {\nEXPORT_PY void run();\n}\n"), 0o644))

	tu, err := open(t, frontend.Options{}).Parse(header, nil)
	require.NoError(t, err)

	run := find(t, find(t, tu.Root, frontend.KindNamespace, "ntt"), frontend.KindFunction, "run")
	assert.Equal(t, []string{"python"}, run.AnnotationLiterals())
	assert.Equal(t, "void", run.ResultType)
}

func TestIncludeGuardsAreTransparent(t *testing.T) {
	src := "#ifndef API_H\n#define API_H\nnamespace ntt {\nint answer();\n}\n#endif\n"
	tu, err := open(t, frontend.Options{}).Parse("api.h", []byte(src))
	require.NoError(t, err)

	ns := find(t, tu.Root, frontend.KindNamespace, "ntt")
	find(t, ns, frontend.KindFunction, "answer")
}

func TestSyntaxErrors(t *testing.T) {
	src := []byte("namespace ntt {\nclass Broken {\n  int x\n")

	tu, err := open(t, frontend.Options{}).Parse("broken.h", src)
	require.NoError(t, err)
	assert.NotEmpty(t, tu.Errors())

	_, err = open(t, frontend.Options{Strict: true}).Parse("broken.h", src)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestMissingHeader(t *testing.T) {
	_, err := open(t, frontend.Options{}).Parse(filepath.Join(t.TempDir(), "nope.h"), nil)
	assert.True(t, errors.IsInputNotFoundError(err))
}

func TestParseIntLiteral(t *testing.T) {
	cases := map[string]int64{
		"42":      42,
		"0x1F":    31,
		"0b101":   5,
		"017":     15,
		"1'000":   1000,
		"10u":     10,
		"0xFFull": 255,
		"0":       0,
	}
	for in, want := range cases {
		got, ok := parseIntLiteral(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := parseIntLiteral("1.5f")
	assert.False(t, ok)
}

func TestParseCharLiteral(t *testing.T) {
	v, ok := parseCharLiteral("'A'")
	assert.True(t, ok)
	assert.Equal(t, int64('A'), v)

	v, ok = parseCharLiteral(`'\n'`)
	assert.True(t, ok)
	assert.Equal(t, int64('\n'), v)
}
