// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package inspect reads table metadata and row counts over a connector.Conn.
// Catalog lookups go through information_schema with the table name bound as a
// parameter; only the row count interpolates the (allow-listed, quoted) identifier.
package inspect

import (
	"context"
	"fmt"
	"time"

	"tablecheck/cli/internal/connector"
	"tablecheck/cli/internal/logging"
)

// Column describes one column as reported by the catalog.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

func (c Column) String() string {
	return fmt.Sprintf("(%s, %s)", c.Name, c.DataType)
}

// Inspector issues catalog and count queries on one connection.
type Inspector struct {
	conn    connector.Conn
	timeout time.Duration
	// confirmed holds tables TableExists has seen; CountRows refuses anything else.
	confirmed map[TableName]bool
}

// New creates an Inspector. A zero queryTimeout leaves queries unbounded.
func New(conn connector.Conn, queryTimeout time.Duration) *Inspector {
	return &Inspector{
		conn:      conn,
		timeout:   queryTimeout,
		confirmed: make(map[TableName]bool),
	}
}

func (i *Inspector) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.timeout > 0 {
		return context.WithTimeout(ctx, i.timeout)
	}
	return context.WithCancel(ctx)
}

// scope returns the table_schema / table_name predicate and its arguments.
func (i *Inspector) scope(t TableName) (string, []any) {
	d := i.conn.Dialect()
	if t.Schema == "" {
		return fmt.Sprintf("table_schema = %s AND table_name = %s", d.CurrentSchema(), d.Placeholder(1)),
			[]any{t.Name}
	}
	return fmt.Sprintf("table_schema = %s AND table_name = %s", d.Placeholder(1), d.Placeholder(2)),
		[]any{t.Schema, t.Name}
}

// TableExists reports whether the catalog lists the table.
func (i *Inspector) TableExists(ctx context.Context, t TableName) (bool, error) {
	ctx, cancel := i.withTimeout(ctx)
	defer cancel()

	where, args := i.scope(t)
	query := "SELECT 1 FROM information_schema.tables WHERE " + where
	logging.Debugf("%s: %s %v", i.conn.Dialect().Name(), query, args)

	rows, err := i.conn.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	if found {
		i.confirmed[t] = true
	}
	return found, nil
}

// Columns returns the table's columns ordered by ordinal position.
func (i *Inspector) Columns(ctx context.Context, t TableName) ([]Column, error) {
	ctx, cancel := i.withTimeout(ctx)
	defer cancel()

	where, args := i.scope(t)
	query := "SELECT column_name, data_type FROM information_schema.columns WHERE " + where +
		" ORDER BY ordinal_position"
	logging.Debugf("%s: %s %v", i.conn.Dialect().Name(), query, args)

	rows, err := i.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// CountRows runs SELECT COUNT(*) on a table already confirmed by TableExists.
func (i *Inspector) CountRows(ctx context.Context, t TableName) (int64, error) {
	if !i.confirmed[t] {
		return 0, fmt.Errorf("refusing to count rows of %s: table existence not confirmed", t)
	}
	for _, p := range t.parts() {
		if !reIdentifier.MatchString(p) {
			return 0, fmt.Errorf("invalid table name %q", t)
		}
	}

	ctx, cancel := i.withTimeout(ctx)
	defer cancel()

	query := "SELECT COUNT(*) FROM " + i.conn.Dialect().QuoteIdentifier(t.parts()...)
	logging.Debugf("%s: %s", i.conn.Dialect().Name(), query)

	var count int64
	if err := i.conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
