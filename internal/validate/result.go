// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validate

import (
	"fmt"

	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/inspect"
)

// Failure reasons with a fixed wording.
const (
	ReasonSchemaMismatch   = "schema mismatch"
	ReasonRowCountMismatch = "row count mismatch"
)

// Result is the single outcome of a validation run.
type Result struct {
	Passed bool `json:"passed"`
	// Reason is empty when Passed.
	Reason string `json:"reason,omitempty"`
	// Kind classifies a failure; empty when Passed.
	Kind        tcerrors.Kind `json:"kind,omitempty"`
	Diagnostics []string      `json:"diagnostics,omitempty"`

	// Populated as far as the run got, for machine-readable output.
	SourceColumns []inspect.Column `json:"source_columns,omitempty"`
	TargetColumns []inspect.Column `json:"target_columns,omitempty"`
	SourceRows    *int64           `json:"source_rows,omitempty"`
	TargetRows    *int64           `json:"target_rows,omitempty"`
}

func failed(kind tcerrors.Kind, reason string, diagnostics ...string) Result {
	return Result{Kind: kind, Reason: reason, Diagnostics: diagnostics}
}

// EqualColumns reports whether a and b list the same (name, type) pairs in the same order.
func EqualColumns(a, b []inspect.Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// firstDifference describes the first position where a and b disagree.
func firstDifference(a, b []inspect.Column) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return fmt.Sprintf("first difference at position %d: %s vs %s", i+1, a[i], b[i])
		}
	}
	return fmt.Sprintf("column counts differ: %d vs %d", len(a), len(b))
}
