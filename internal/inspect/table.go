// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package inspect

import (
	"fmt"
	"regexp"
	"strings"
)

// reIdentifier is the allow-list applied to every part of a table name before it
// may appear in query text.
var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// TableName is a table reference, optionally qualified by schema.
// An empty Schema means the connection's current schema.
type TableName struct {
	Schema string
	Name   string
}

// ParseTableName splits "table" or "schema.table" and checks both parts
// against the identifier allow-list.
func ParseTableName(s string) (TableName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TableName{}, fmt.Errorf("table name is required")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return TableName{}, fmt.Errorf("invalid table name %q: use table or schema.table", s)
	}
	for _, p := range parts {
		if !reIdentifier.MatchString(p) {
			return TableName{}, fmt.Errorf("invalid table name %q: only letters, digits, '_' and '$' are allowed", s)
		}
	}
	if len(parts) == 2 {
		return TableName{Schema: parts[0], Name: parts[1]}, nil
	}
	return TableName{Name: parts[0]}, nil
}

func (t TableName) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

func (t TableName) parts() []string {
	if t.Schema == "" {
		return []string{t.Name}
	}
	return []string{t.Schema, t.Name}
}
