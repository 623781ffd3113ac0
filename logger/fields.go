package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across autogen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldBackend   = "backend"

	// Inputs and outputs
	FieldFile     = "file"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldTemplate = "template"
	FieldOutput   = "output"
	FieldLibrary  = "library"

	// Declarations
	FieldNamespace   = "namespace"
	FieldDeclaration = "declaration"
	FieldKind        = "kind"
	FieldSpelling    = "spelling"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	conv := typeconv.New(logger.ComponentLogger("typeconv"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}
