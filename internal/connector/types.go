// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package connector maps a connector kind to a database driver and opens the
// connections tablecheck compares. Each supported engine is an adapter behind the
// Driver and Conn interfaces, selected from a closed set of kinds.
package connector

import (
	"context"
	"strings"
)

// Kind identifies a supported database engine.
type Kind string

const (
	KindMariaDB  Kind = "mariadb"
	KindPostgres Kind = "postgres"
)

// Kinds lists the supported connector kinds in display order.
var Kinds = []Kind{KindMariaDB, KindPostgres}

// ParseKind maps user input to a Kind. It accepts the canonical names and a few
// common aliases, ignoring case and surrounding space.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mariadb", "mysql":
		return KindMariaDB, true
	case "postgres", "postgresql", "pg":
		return KindPostgres, true
	default:
		return "", false
	}
}

// Profile holds the credentials and coordinates needed to open one connection.
// Field names match the persisted profile record.
type Profile struct {
	Kind     Kind   `json:"connector_type" yaml:"connector_type"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database string `json:"db" yaml:"db"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	// Params holds URL-encoded driver parameters such as tls=true or sslmode=require.
	Params string `json:"params,omitempty" yaml:"params,omitempty"`
}

// IsEmpty reports whether no field has been set, e.g. a profile loaded from a missing file.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Driver opens connections for one engine.
type Driver interface {
	Kind() Kind
	// Open connects and verifies the server answers. Failures are ConnectionErrors.
	Open(ctx context.Context, p Profile) (Conn, error)
}

// Row is a single-row query result.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a multi-row query result. Close must be called when done.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Conn is an open connection owned by a single validation run.
type Conn interface {
	Dialect() Dialect
	// QueryRow runs query with bound args; errors surface from Scan.
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	// Close releases the connection. It is safe to call more than once.
	Close() error
}
