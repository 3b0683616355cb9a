// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package inspect

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tablecheck/cli/internal/connector"
	"tablecheck/cli/internal/connector/connectortest"
)

func newDB() *connectortest.DB {
	return &connectortest.DB{
		Tables: map[string]connectortest.Table{
			"users": {
				Columns: []connectortest.Column{{Name: "id", Type: "integer"}, {Name: "name", Type: "text"}},
				Rows:    10,
			},
			"audit.events": {
				Columns: []connectortest.Column{{Name: "id", Type: "bigint"}},
				Rows:    3,
			},
		},
	}
}

func TestParseTableName(t *testing.T) {
	tests := []struct {
		in      string
		want    TableName
		wantErr bool
	}{
		{in: "users", want: TableName{Name: "users"}},
		{in: " audit.events ", want: TableName{Schema: "audit", Name: "events"}},
		{in: "_tmp$1", want: TableName{Name: "_tmp$1"}},
		{in: "", wantErr: true},
		{in: "a.b.c", wantErr: true},
		{in: "users; DROP TABLE users", wantErr: true},
		{in: "1users", wantErr: true},
		{in: "\"users\"", wantErr: true},
		{in: "audit.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTableName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTableName() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInspector_TableExists(t *testing.T) {
	for _, d := range []connector.Dialect{connector.PostgresDialect, connector.MariaDBDialect} {
		t.Run(d.Name(), func(t *testing.T) {
			conn := connectortest.NewConn(newDB(), d)
			in := New(conn, 0)
			ctx := context.Background()

			ok, err := in.TableExists(ctx, TableName{Name: "users"})
			if err != nil || !ok {
				t.Fatalf("TableExists(users) = %v, %v", ok, err)
			}
			ok, err = in.TableExists(ctx, TableName{Schema: "audit", Name: "events"})
			if err != nil || !ok {
				t.Fatalf("TableExists(audit.events) = %v, %v", ok, err)
			}
			ok, err = in.TableExists(ctx, TableName{Name: "missing"})
			if err != nil || ok {
				t.Fatalf("TableExists(missing) = %v, %v", ok, err)
			}

			q := conn.Queries()[0]
			if strings.Contains(q, "users") {
				t.Errorf("table name must be bound, not interpolated: %s", q)
			}
			if !strings.Contains(q, d.CurrentSchema()) {
				t.Errorf("unqualified lookup should scope to %s: %s", d.CurrentSchema(), q)
			}
		})
	}
}

func TestInspector_Columns(t *testing.T) {
	conn := connectortest.NewConn(newDB(), connector.PostgresDialect)
	in := New(conn, time.Second)

	cols, err := in.Columns(context.Background(), TableName{Name: "users"})
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	want := []Column{{Name: "id", DataType: "integer"}, {Name: "name", DataType: "text"}}
	if len(cols) != len(want) {
		t.Fatalf("Columns() = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, cols[i], want[i])
		}
	}
	if got := cols[0].String(); got != "(id, integer)" {
		t.Errorf("String() = %q", got)
	}
	if q := conn.Queries()[0]; !strings.HasSuffix(q, "ORDER BY ordinal_position") {
		t.Errorf("columns query must order by ordinal position: %s", q)
	}
}

func TestInspector_CountRows(t *testing.T) {
	tests := []struct {
		name    string
		dialect connector.Dialect
		table   TableName
		want    int64
		query   string
	}{
		{
			name:    "postgres",
			dialect: connector.PostgresDialect,
			table:   TableName{Name: "users"},
			want:    10,
			query:   `SELECT COUNT(*) FROM "users"`,
		},
		{
			name:    "mariadb qualified",
			dialect: connector.MariaDBDialect,
			table:   TableName{Schema: "audit", Name: "events"},
			want:    3,
			query:   "SELECT COUNT(*) FROM `audit`.`events`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := connectortest.NewConn(newDB(), tt.dialect)
			in := New(conn, 0)
			ctx := context.Background()

			if _, err := in.CountRows(ctx, tt.table); err == nil {
				t.Fatal("CountRows before TableExists should fail")
			}
			if ok, err := in.TableExists(ctx, tt.table); err != nil || !ok {
				t.Fatalf("TableExists() = %v, %v", ok, err)
			}
			got, err := in.CountRows(ctx, tt.table)
			if err != nil {
				t.Fatalf("CountRows() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CountRows() = %d, want %d", got, tt.want)
			}
			qs := conn.Queries()
			if last := qs[len(qs)-1]; last != tt.query {
				t.Errorf("query = %s, want %s", last, tt.query)
			}
		})
	}
}

func TestInspector_DriverErrors(t *testing.T) {
	boom := errors.New("boom")
	db := newDB()
	db.Fail = map[string]error{connectortest.QueryColumns: boom}
	in := New(connectortest.NewConn(db, connector.PostgresDialect), 0)

	if _, err := in.Columns(context.Background(), TableName{Name: "users"}); !errors.Is(err, boom) {
		t.Errorf("Columns() error = %v, want %v", err, boom)
	}
}
