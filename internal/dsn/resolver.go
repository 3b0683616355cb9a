// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)

	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgreSQL
	}
	if strings.HasPrefix(lower, "mysql://") || strings.HasPrefix(lower, "mariadb://") {
		return DBTypeMySQL
	}

	return DBTypeUnknown
}

// ResolverFor returns the resolver for a database type, or nil if unsupported.
func ResolverFor(t DBType) Resolver {
	switch t {
	case DBTypePostgreSQL:
		return NewPostgreSQLResolver()
	case DBTypeMySQL:
		return NewMySQLResolver()
	default:
		return nil
	}
}

func resolverForDSN(dsn string) (Resolver, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid database connection string")
	}
	r := ResolverFor(DetectDBType(dsn))
	if r == nil {
		return nil, NewParseError(dsn, "unknown database type", "use postgres:// or mysql://")
	}
	return r, nil
}

// Validate checks a DSN, including its query parameters, without connecting.
func Validate(dsn string) error {
	resolver, err := resolverForDSN(dsn)
	if err != nil {
		return err
	}
	return resolver.Validate(dsn)
}

// ParseInfo parses a DSN string and returns detailed DSN info
// Useful for filling a connection profile from a URL
func ParseInfo(dsn string) (*DSNInfo, error) {
	resolver, err := resolverForDSN(dsn)
	if err != nil {
		return nil, err
	}
	return resolver.Parse(dsn)
}

// Normalize renders info as the connection string for its database type.
func Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	r := ResolverFor(info.Type)
	if r == nil {
		return "", NewParseError(info.Original, "unknown database type", "use postgres:// or mysql://")
	}
	return r.Normalize(info)
}
