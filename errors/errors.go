// Package errors provides error handling for autogen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := parse(); err != nil {
//	    return errors.Wrapf(err, "failed to parse %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "pass the header with -i")
//
//	// Check errors
//	if errors.Is(err, errors.ErrParse) {
//	    // handle parse failure
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generator's failure taxonomy.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrConfiguration indicates the native library or the tool configuration is unusable
	ErrConfiguration = New("configuration error")

	// ErrInputNotFound indicates a header, template or library path does not exist
	ErrInputNotFound = New("input not found")

	// ErrParse indicates the front end could not produce a translation unit
	ErrParse = New("parse error")

	// ErrTemplate indicates a template could not be loaded, parsed or executed
	ErrTemplate = New("template render error")

	// ErrOutOfDate indicates a generated file no longer matches its inputs
	ErrOutOfDate = New("generated output is out of date")
)

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsInputNotFoundError checks if an error is or wraps ErrInputNotFound
func IsInputNotFoundError(err error) bool {
	return err != nil && Is(err, ErrInputNotFound)
}

// IsParseError checks if an error is or wraps ErrParse
func IsParseError(err error) bool {
	return err != nil && Is(err, ErrParse)
}

// IsTemplateError checks if an error is or wraps ErrTemplate
func IsTemplateError(err error) bool {
	return err != nil && Is(err, ErrTemplate)
}

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// NewInputNotFoundError reports a missing file of the given kind ("header", "template", ...).
// The returned error carries a hint naming the offending path.
func NewInputNotFoundError(kind, path string) error {
	err := Wrapf(ErrInputNotFound, "%s %s", kind, path)
	return WithHintf(err, "check that the %s path exists and is readable: %s", kind, path)
}

// WrapConfiguration wraps an error as a configuration error with context
func WrapConfiguration(err error, context string) error {
	return Wrap(Mark(err, ErrConfiguration), context)
}
