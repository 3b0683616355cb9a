// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"errors"
	"testing"
)

func TestDetectDBType(t *testing.T) {
	tests := map[string]DBType{
		"postgres://u:p@h/db":   DBTypePostgreSQL,
		"postgresql://u:p@h/db": DBTypePostgreSQL,
		"POSTGRES://u:p@h/db":   DBTypePostgreSQL,
		"mysql://u:p@h/db":      DBTypeMySQL,
		"MariaDB://u:p@h/db":    DBTypeMySQL,
		"oracle://u:p@h/db":     DBTypeUnknown,
		"sqlserver://u:p@h/db":  DBTypeUnknown,
		"u:p@tcp(h:3306)/db":    DBTypeUnknown,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := DetectDBType(in); got != want {
				t.Errorf("DetectDBType(%q) = %v, want %v", in, got, want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr bool
	}{
		{"postgres", "postgres://etl:pw@replica:5432/warehouse", false},
		{"postgres with sslmode", "postgresql://etl:pw@replica/warehouse?sslmode=require", false},
		{"postgres bad sslmode", "postgres://etl:pw@replica/warehouse?sslmode=bogus", true},
		{"mariadb with tls", "mariadb://app:pw@db/shop?tls=preferred", false},
		{"mariadb bad tls", "mariadb://app:pw@db/shop?tls=bogus", true},
		{"missing database", "postgres://etl:pw@replica", true},
		{"unsupported engine", "oracle://scott:tiger@db/orcl", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var pe *ParseError
			if err != nil && !errors.As(err, &pe) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	info, err := ParseInfo("mariadb://app:pw@db.internal:3307/shop?tls=true")
	if err != nil {
		t.Fatalf("ParseInfo() error = %v", err)
	}
	if info.Type != DBTypeMySQL || info.Host != "db.internal" || info.Port != "3307" ||
		info.User != "app" || info.Password != "pw" || info.Database != "shop" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Params["tls"] != "true" {
		t.Errorf("Params[tls] = %q, want true", info.Params["tls"])
	}
	if info.String() != "mariadb://app:pw@db.internal:3307/shop?tls=true" {
		t.Errorf("String() = %q", info.String())
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(&DSNInfo{Type: DBTypeMySQL, Host: "db", User: "app", Password: "pw", Database: "shop",
		Params: map[string]string{"tls": "true"}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got != "app:pw@tcp(db:3306)/shop?tls=true" {
		t.Errorf("Normalize() = %q", got)
	}

	if _, err := Normalize(&DSNInfo{Type: DBTypeMySQL, Host: "db", Database: "shop",
		Params: map[string]string{"tls": "bogus"}}); err == nil {
		t.Error("expected error for unknown tls config")
	}
	if _, err := Normalize(&DSNInfo{Type: DBTypeUnknown}); err == nil {
		t.Error("expected error for unknown type")
	}
	if _, err := Normalize(nil); err == nil {
		t.Error("expected error for nil info")
	}
}
