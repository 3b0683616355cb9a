// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package connector

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect covers the SQL differences the catalog queries care about.
type Dialect interface {
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder(n int) string
	// QuoteIdentifier quotes each part of a possibly schema-qualified name.
	QuoteIdentifier(parts ...string) string
	// CurrentSchema is an SQL expression naming the connection's default schema.
	CurrentSchema() string
}

type mariadbDialect struct{}

func (mariadbDialect) Name() string { return "mariadb" }

func (mariadbDialect) Placeholder(int) string { return "?" }

func (mariadbDialect) QuoteIdentifier(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(quoted, ".")
}

func (mariadbDialect) CurrentSchema() string { return "DATABASE()" }

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) QuoteIdentifier(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

func (postgresDialect) CurrentSchema() string { return "current_schema()" }

// Dialects used by the built-in adapters.
var (
	MariaDBDialect  Dialect = mariadbDialect{}
	PostgresDialect Dialect = postgresDialect{}
)
