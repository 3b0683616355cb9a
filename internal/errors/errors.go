// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so a validation run can tell a bad profile apart from an
// unreachable server or a failing catalog query.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigurationError indicates a profile that cannot be used, e.g. an unknown connector kind.
	ConfigurationError Kind = "configuration_error"
	// ConnectionError indicates a network or authentication failure opening a database handle.
	ConnectionError Kind = "connection_error"
	// ValidationFailed marks a normal negative verdict: missing table, schema or row count mismatch.
	ValidationFailed Kind = "validation_failed"
	// DriverError indicates any other failure surfaced by a database driver while querying.
	DriverError Kind = "driver_error"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying driver or I/O error.
func (e *E) Unwrap() error { return e.Err }

// Wrap attaches kind and msg to err.
func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }

// New returns an error of the given kind with no underlying cause.
func New(kind Kind, msg string) *E { return &E{Kind: kind, Message: msg} }

// KindOf reports the kind of the first *E in err's chain.
// Errors that carry no kind are treated as driver errors.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return DriverError
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var e *E
	return stderrors.As(err, &e) && e.Kind == kind
}
