package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/autogen/config"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/frontend"
	_ "github.com/teranos/autogen/frontend/treesitter"
	at "github.com/teranos/autogen/internal/testing"
)

const namesTemplate = `{{ range .Functions }}fn {{ .Name }}
{{ end }}{{ range .Classes }}class {{ .Name }}
{{ end }}{{ range .Structs }}struct {{ .Name }}: {{ range .Attributes }}{{ convert .Type }} {{ end }}
{{ end }}`

type fixture struct {
	dir     string
	headers []string
	opts    Options
	fake    *at.FakeAdapter
}

// newFixture writes two headers and a template, and serves canned units
// for the headers through a fake adapter.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	a := at.WriteFile(t, dir, "a.h", "// a\n")
	b := at.WriteFile(t, dir, "b.h", "// b\n")
	tmpl := at.WriteFile(t, dir, "names.tmpl", namesTemplate)

	fake := at.NewFakeAdapter(
		at.Unit(a, at.Namespace("ntt",
			at.Function("first", "void"),
			at.Class("Camera"),
		)),
		at.Unit(b, at.Namespace("ntt",
			at.Function("second", "void"),
			at.Struct("Ray",
				at.Field(frontend.AccessPublic, "origin", "Camera *"),
				at.Field(frontend.AccessPublic, "handle", "Handle"),
			),
		)),
	)

	return &fixture{
		dir:     dir,
		headers: []string{a, b},
		fake:    fake,
		opts: Options{
			Inputs:             []string{a, b},
			Template:           tmpl,
			Output:             filepath.Join(dir, "out", "names.txt"),
			Library:            at.StubLibrary(t),
			Namespace:          "ntt",
			HeaderExtensions:   []string{".h"},
			TemplateExtensions: []string{".tmpl"},
			Types:              map[string]string{"Handle": "int"},
			Adapter:            fake,
		},
	}
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	res, err := New(nil, nil).Run(f.opts)
	require.NoError(t, err)

	want := "fn first\nfn second\nclass Camera\nstruct Ray: \"Camera\" \"int\" \n"
	assert.Equal(t, want, at.ReadFile(t, f.opts.Output))
	assert.Equal(t, len(want), res.Bytes)
	assert.Equal(t, 4, res.Declarations.Count())
	assert.Equal(t, f.headers, f.fake.Parsed())
}

func TestConfiguredTypesOverrideDeclared(t *testing.T) {
	f := newFixture(t)
	f.opts.Types["Camera"] = "CameraHandle"

	_, err := New(nil, nil).Run(f.opts)
	require.NoError(t, err)
	assert.Contains(t, at.ReadFile(t, f.opts.Output), "struct Ray: \"CameraHandle\" \"int\" \n")
}

func TestRunIsByteIdentical(t *testing.T) {
	f := newFixture(t)
	g := New(nil, nil)

	_, err := g.Run(f.opts)
	require.NoError(t, err)
	first := at.ReadFile(t, f.opts.Output)

	_, err = g.Run(f.opts)
	require.NoError(t, err)
	assert.Equal(t, first, at.ReadFile(t, f.opts.Output))
}

func TestRunLeavesOutputOnRenderFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.opts.Output), 0o755))
	require.NoError(t, os.WriteFile(f.opts.Output, []byte("previous"), 0o644))

	f.opts.Template = at.WriteFile(t, f.dir, "bad.tmpl", "{{ range .Functions }}{{ .Missing }}{{ end }}")

	_, err := New(nil, nil).Run(f.opts)
	require.Error(t, err)
	assert.True(t, errors.IsTemplateError(err))
	assert.Equal(t, "previous", at.ReadFile(t, f.opts.Output))

	entries, err := os.ReadDir(filepath.Dir(f.opts.Output))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestRunParseFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.fake.Err = &frontend.ParseError{File: f.headers[0], Err: errors.New("broken")}

	_, err := New(nil, nil).Run(f.opts)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
	assert.NoFileExists(t, f.opts.Output)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Inputs:             []string{filepath.Join(dir, "missing.h"), at.WriteFile(t, dir, "notes.txt", "")},
		Template:           filepath.Join(dir, "missing.tmpl"),
		Output:             filepath.Join(dir, "out.cpp"),
		Library:            filepath.Join(dir, "libclang.so"),
		Namespace:          "ntt",
		HeaderExtensions:   []string{".h"},
		TemplateExtensions: []string{".tmpl"},
	}

	err := opts.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 4)
	assert.True(t, errors.IsInputNotFoundError(merr.Errors[0]))
	assert.True(t, errors.IsConfigurationError(merr.Errors[1]))
	assert.True(t, errors.IsInputNotFoundError(merr.Errors[2]))
	assert.True(t, errors.IsInputNotFoundError(merr.Errors[3]))
	assert.Contains(t, err.Error(), "missing.h")
	assert.Contains(t, err.Error(), "libclang.so")
}

func TestValidateRequiresCoreFlags(t *testing.T) {
	err := (&Options{Namespace: "ntt"}).Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)
	for _, e := range merr.Errors {
		assert.True(t, errors.IsConfigurationError(e))
	}
}

func TestValidationHappensBeforeParsing(t *testing.T) {
	f := newFixture(t)
	f.opts.Template = filepath.Join(f.dir, "gone.tmpl")

	_, err := New(nil, nil).Run(f.opts)
	require.Error(t, err)
	assert.Empty(t, f.fake.Parsed())
}

func TestLibraryIsConfiguredOnce(t *testing.T) {
	f := newFixture(t)
	lib := frontend.NewLibrary()
	g := New(lib, nil)

	_, err := g.Run(f.opts)
	require.NoError(t, err)
	assert.True(t, lib.Configured())

	f.opts.Library = at.StubLibrary(t)
	_, err = g.Run(f.opts)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestCheck(t *testing.T) {
	f := newFixture(t)
	g := New(nil, nil)

	res, err := g.Check(f.opts)
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.True(t, res.Missing)
	assert.True(t, errors.Is(res.Err(), errors.ErrOutOfDate))

	_, err = g.Run(f.opts)
	require.NoError(t, err)

	res, err = g.Check(f.opts)
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Empty(t, res.Diff)
	assert.NoError(t, res.Err())

	require.NoError(t, os.WriteFile(f.opts.Output, []byte("fn first\n"), 0o644))
	res, err = g.Check(f.opts)
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Contains(t, res.Diff, "second")
	assert.Equal(t, "fn first\n", at.ReadFile(t, f.opts.Output))
}

func TestExtract(t *testing.T) {
	f := newFixture(t)

	decls, err := New(nil, nil).Extract(f.opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Camera", "Ray"}, decls.TypeNames())
}

func TestWatchRerunsOnChange(t *testing.T) {
	f := newFixture(t)
	g := New(nil, nil)
	g.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan error, 8)
	done := make(chan error, 1)
	go func() {
		done <- g.Watch(ctx, f.opts, func(_ *Result, err error) { runs <- err })
	}()

	waitRun := func() {
		t.Helper()
		select {
		case err := <-runs:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a run")
		}
	}

	waitRun()
	require.Len(t, f.fake.Parsed(), 2)

	// Give the watcher a moment to settle before touching inputs.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(f.headers[1], []byte("// b changed\n"), 0o644))
	waitRun()
	assert.Len(t, f.fake.Parsed(), 4)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

const e2eHeader = `#pragma once

namespace ntt {

NTT_PYTHON_BINDING void foo();

enum class Foo {
    BAR,
    BAZ = 4,
};

}
`

func TestTreeSitterBinding(t *testing.T) {
	dir := t.TempDir()
	header := at.WriteFile(t, dir, "foo.h", e2eHeader)

	opts := Options{
		Inputs:    []string{header},
		Template:  filepath.Join("..", "templates", "binding.tmpl"),
		Output:    filepath.Join(dir, "binding.cpp"),
		Library:   at.StubLibrary(t),
		Namespace: "ntt",
		Frontend:  frontend.BackendTreeSitter,
		FrontendOptions: frontend.Options{
			Defines: config.DefaultDefines,
		},
	}

	_, err := New(nil, nil).Run(opts)
	require.NoError(t, err)

	out := at.ReadFile(t, opts.Output)
	assert.Contains(t, out, `m.def("foo", &::ntt::foo, "Function foo is not documented");`)
	assert.Contains(t, out, "enum_<::ntt::Foo>(m, \"Foo\")\n"+
		"        .value(\"BAR\", ::ntt::Foo::BAR)\n"+
		"        .value(\"BAZ\", ::ntt::Foo::BAZ)\n"+
		"        .export_values();")

	decls, err := New(nil, nil).Extract(opts)
	require.NoError(t, err)
	require.Len(t, decls.Enums, 1)
	assert.Equal(t, int64(0), decls.Enums[0].Constants[0].Value)
	assert.Equal(t, int64(4), decls.Enums[0].Constants[1].Value)
}
