// Package clang is the libclang front end.
//
// It links against libclang through cgo, so the backend is only compiled
// with the libclang build tag:
//
//	go build -tags libclang ./cmd/autogen
//
// Without the tag only the version checks are built and "auto" resolves to
// the tree-sitter backend.
package clang
