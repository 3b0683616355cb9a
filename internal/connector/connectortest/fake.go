// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package connectortest provides an in-memory connector.Driver for tests.
// The fake understands exactly the catalog and count queries tablecheck issues
// and records every statement so tests can assert which ones ran.
package connectortest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tablecheck/cli/internal/connector"
)

// Column is a (name, data type) pair of a fake table.
type Column struct {
	Name string
	Type string
}

// Table is a fake table.
type Table struct {
	Columns []Column
	Rows    int64
}

// Query kinds used as keys in DB.Fail.
const (
	QueryTables  = "tables"
	QueryColumns = "columns"
	QueryCount   = "count"
)

// DB is an in-memory database. Keys of Tables are "name" for the current schema
// or "schema.name".
type DB struct {
	Tables map[string]Table
	// Fail makes the given query kind return the error.
	Fail map[string]error
	// Panic makes the given query kind panic with the value.
	Panic map[string]any
}

// Driver is a fake connector.Driver backed by a DB.
type Driver struct {
	K       connector.Kind
	DB      *DB
	OpenErr error

	mu    sync.Mutex
	Conns []*Conn
}

// NewDriver returns a driver of kind k serving db.
func NewDriver(k connector.Kind, db *DB) *Driver {
	return &Driver{K: k, DB: db}
}

func (d *Driver) Kind() connector.Kind { return d.K }

func (d *Driver) Open(ctx context.Context, p connector.Profile) (connector.Conn, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	c := &Conn{db: d.DB, dialect: connector.PostgresDialect}
	if d.K == connector.KindMariaDB {
		c.dialect = connector.MariaDBDialect
	}
	d.mu.Lock()
	d.Conns = append(d.Conns, c)
	d.mu.Unlock()
	return c, nil
}

// Opened reports how many connections were handed out.
func (d *Driver) Opened() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Conns)
}

// AllClosed reports whether every handed-out connection was closed.
func (d *Driver) AllClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.Conns {
		if !c.Closed() {
			return false
		}
	}
	return true
}

// Queries returns the statements run on all connections, in order.
func (d *Driver) Queries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, c := range d.Conns {
		out = append(out, c.Queries()...)
	}
	return out
}

// Conn is a fake connection.
type Conn struct {
	db      *DB
	dialect connector.Dialect

	mu      sync.Mutex
	queries []string
	closed  bool
}

// NewConn returns a standalone connection using the given dialect.
func NewConn(db *DB, d connector.Dialect) *Conn {
	return &Conn{db: db, dialect: d}
}

func (c *Conn) Dialect() connector.Dialect { return c.dialect }

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Queries returns the statements run on this connection.
func (c *Conn) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *Conn) record(q string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection is closed")
	}
	c.queries = append(c.queries, q)
	return nil
}

func (c *Conn) inject(kind string) error {
	if v, ok := c.db.Panic[kind]; ok {
		panic(v)
	}
	return c.db.Fail[kind]
}

func lookupKey(args []any) string {
	switch len(args) {
	case 1:
		return fmt.Sprint(args[0])
	case 2:
		return fmt.Sprintf("%v.%v", args[0], args[1])
	default:
		return ""
	}
}

func (c *Conn) Query(ctx context.Context, query string, args ...any) (connector.Rows, error) {
	if err := c.record(query); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case strings.Contains(query, "information_schema.tables"):
		if err := c.inject(QueryTables); err != nil {
			return nil, err
		}
		if _, ok := c.db.Tables[lookupKey(args)]; ok {
			return &rows{data: [][]any{{int64(1)}}}, nil
		}
		return &rows{}, nil
	case strings.Contains(query, "information_schema.columns"):
		if err := c.inject(QueryColumns); err != nil {
			return nil, err
		}
		t := c.db.Tables[lookupKey(args)]
		r := &rows{}
		for _, col := range t.Columns {
			r.data = append(r.data, []any{col.Name, col.Type})
		}
		return r, nil
	}
	return nil, fmt.Errorf("fake: unsupported query %q", query)
}

func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) connector.Row {
	if err := c.record(query); err != nil {
		return row{err: err}
	}
	if !strings.HasPrefix(query, "SELECT COUNT(*) FROM ") {
		return row{err: fmt.Errorf("fake: unsupported query %q", query)}
	}
	if err := c.inject(QueryCount); err != nil {
		return row{err: err}
	}
	ident := strings.TrimPrefix(query, "SELECT COUNT(*) FROM ")
	key := strings.NewReplacer("`", "", `"`, "").Replace(ident)
	t, ok := c.db.Tables[key]
	if !ok {
		return row{err: fmt.Errorf("fake: relation %s does not exist", ident)}
	}
	return row{vals: []any{t.Rows}}
}

type rows struct {
	data [][]any
	pos  int
}

func (r *rows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *rows) Scan(dest ...any) error {
	return assign(r.data[r.pos-1], dest)
}

func (r *rows) Err() error { return nil }
func (r *rows) Close()     {}

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(src []any, dest []any) error {
	if len(src) != len(dest) {
		return fmt.Errorf("fake: scan %d values into %d targets", len(src), len(dest))
	}
	for i, v := range src {
		switch d := dest[i].(type) {
		case *string:
			*d = fmt.Sprint(v)
		case *int64:
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("fake: cannot scan %T into *int64", v)
			}
			*d = n
		case *int:
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("fake: cannot scan %T into *int", v)
			}
			*d = int(n)
		default:
			return fmt.Errorf("fake: unsupported scan target %T", dest[i])
		}
	}
	return nil
}
