package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Verbosity is the -v count passed to the last Initialize
	Verbosity int
)

func init() {
	// Initialize with a safe no-op logger at package load time
	// This prevents nil pointer panics if logger is used before Initialize() is called
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger for the given -v count.
// Diagnostics always go to stderr so generated output on stdout stays clean.
func Initialize(verbosity int, jsonOutput bool) error {
	l, err := New(os.Stderr, verbosity, jsonOutput)
	if err != nil {
		return err
	}
	Verbosity = verbosity
	Logger = l
	return nil
}

// New builds a logger writing to w without touching the global instance.
func New(w io.Writer, verbosity int, jsonOutput bool) (*zap.SugaredLogger, error) {
	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	if jsonOutput {
		// JSON structured output for machine consumption
		config := zap.NewProductionEncoderConfig()
		config.TimeKey = "ts"
		config.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(config), zapcore.AddSync(w), level)
		return zap.New(core).Sugar(), nil
	}

	// Human-readable console output with minimal, calm formatting
	core := zapcore.NewCore(newMinimalEncoder(isTerminal(w)), zapcore.AddSync(w), level)
	return zap.New(core).Sugar(), nil
}

// isTerminal reports whether w is a character device, which enables colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
