package frontend

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/teranos/autogen/errors"
)

// Library records the native front-end library for a process.
// It is configured exactly once; callers share one instance explicitly.
type Library struct {
	mu   sync.Mutex
	path string
}

// NewLibrary returns an unconfigured Library.
func NewLibrary() *Library {
	return &Library{}
}

// Configure sets the native library path. Repeating the call with the same
// path is a no-op; a different path is a configuration error.
func (l *Library) Configure(path string) error {
	if path == "" {
		return errors.WithHint(
			errors.NewConfigurationError("native library path is empty"),
			"pass the library with -c <path>")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.WrapConfiguration(err, "failed to resolve native library path")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path != "" {
		if l.path == abs {
			return nil
		}
		return errors.NewConfigurationError("native library already configured with %s, cannot switch to %s", l.path, abs)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInputNotFoundError("native library", path)
		}
		return errors.WrapConfiguration(err, "failed to stat native library")
	}
	if info.IsDir() {
		return errors.NewConfigurationError("native library %s is a directory", path)
	}

	l.path = abs
	return nil
}

// Path returns the configured absolute path, or "" before Configure.
func (l *Library) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Configured reports whether Configure has succeeded.
func (l *Library) Configured() bool {
	return l.Path() != ""
}

func (l *Library) require() error {
	if l == nil || !l.Configured() {
		return errors.WithHint(
			errors.NewConfigurationError("native library not configured"),
			"configure the library before parsing")
	}
	return nil
}
