package testing

import (
	"sync"

	"github.com/teranos/autogen/frontend"
)

// FakeAdapter is a frontend.Adapter serving canned translation units.
type FakeAdapter struct {
	mu     sync.Mutex
	Units  map[string]*frontend.TranslationUnit
	Err    error
	parsed []string
}

// NewFakeAdapter returns an adapter that serves units by path.
func NewFakeAdapter(units ...*frontend.TranslationUnit) *FakeAdapter {
	f := &FakeAdapter{Units: map[string]*frontend.TranslationUnit{}}
	for _, u := range units {
		f.Units[u.File] = u
	}
	return f
}

// Name returns "fake".
func (f *FakeAdapter) Name() string { return "fake" }

// Parse returns the unit registered for path, an empty unit for unknown
// paths, or Err when set.
func (f *FakeAdapter) Parse(path string, _ []byte) (*frontend.TranslationUnit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.parsed = append(f.parsed, path)
	if f.Err != nil {
		return nil, f.Err
	}
	if u, ok := f.Units[path]; ok {
		return u, nil
	}
	return Unit(path), nil
}

// Parsed returns the paths passed to Parse, in call order.
func (f *FakeAdapter) Parsed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.parsed...)
}
