// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"tablecheck/cli/internal/connector"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/terminal"
	"tablecheck/cli/internal/validate"
)

func TestParseMenuChoice(t *testing.T) {
	tests := []struct {
		in   string
		want menuChoice
	}{
		{"1", menuConnect},
		{" 1\n", menuConnect},
		{"0", menuConnect},
		{"2", menuValidate},
		{"3", menuInvalid},
		{"", menuInvalid},
		{"validate", menuInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseMenuChoice(tt.in); got != tt.want {
				t.Errorf("parseMenuChoice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptProfile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current connector.Profile
		want    connector.Profile
	}{
		{
			name:  "all fields",
			input: "postgresql\ndb.local\n6543\nshop\napp\ns3cret\n",
			want: connector.Profile{Kind: connector.KindPostgres, Host: "db.local", Port: 6543,
				Database: "shop", User: "app", Password: "s3cret"},
		},
		{
			name:  "retries unknown type and bad port",
			input: "oracle\nmysql\nh\n99999\n\nd\nu\npw\n",
			want:  connector.Profile{Kind: connector.KindMariaDB, Host: "h", Database: "d", User: "u", Password: "pw"},
		},
		{
			name:  "empty answers keep current values",
			input: "\n\n\n\n\n\n",
			current: connector.Profile{Kind: connector.KindMariaDB, Host: "old", Port: 3307,
				Database: "db", User: "u", Password: "keep"},
			want: connector.Profile{Kind: connector.KindMariaDB, Host: "old", Port: 3307,
				Database: "db", User: "u", Password: "keep"},
		},
		{
			name:  "zero resets a custom port",
			input: "\n\n0\n\n\n\n",
			current: connector.Profile{Kind: connector.KindMariaDB, Host: "old", Port: 3307,
				Database: "db", User: "u", Password: "keep"},
			want: connector.Profile{Kind: connector.KindMariaDB, Host: "old",
				Database: "db", User: "u", Password: "keep"},
		},
		{
			name:  "dash resets a custom port and params survive",
			input: "\n\n-\n\n\n\n",
			current: connector.Profile{Kind: connector.KindPostgres, Host: "old", Port: 6543,
				Database: "db", User: "u", Password: "keep", Params: "sslmode=require"},
			want: connector.Profile{Kind: connector.KindPostgres, Host: "old",
				Database: "db", User: "u", Password: "keep", Params: "sslmode=require"},
		},
		{
			name:  "changing type drops params",
			input: "mariadb\n\n\n\n\n\n",
			current: connector.Profile{Kind: connector.KindPostgres, Host: "old",
				Database: "db", User: "u", Password: "keep", Params: "sslmode=require"},
			want: connector.Profile{Kind: connector.KindMariaDB, Host: "old",
				Database: "db", User: "u", Password: "keep"},
		},
		{
			name:  "connection url",
			input: "mariadb://app:pw@db.local:3307/shop\n",
			want: connector.Profile{Kind: connector.KindMariaDB, Host: "db.local", Port: 3307,
				Database: "shop", User: "app", Password: "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := terminal.NewPrompterFrom(strings.NewReader(tt.input), io.Discard)
			got, err := promptProfile(p, "source", tt.current)
			if err != nil {
				t.Fatalf("promptProfile: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPromptProfile_EOF(t *testing.T) {
	p := terminal.NewPrompterFrom(strings.NewReader("mariadb\n"), io.Discard)
	if _, err := promptProfile(p, "target", connector.Profile{}); err == nil {
		t.Error("expected an error when input ends early")
	}
}

func TestDescribeProfile(t *testing.T) {
	p := connector.Profile{Kind: connector.KindPostgres, Host: "h", Database: "d", User: "u", Password: "s3cret"}
	lines := strings.Join(describeProfile(p, "/tmp/source.json", false), "\n")
	if strings.Contains(lines, "s3cret") {
		t.Fatalf("password shown:\n%s", lines)
	}
	p.Params = "sslmode=require"
	lines = strings.Join(describeProfile(p, "/tmp/source.json", false), "\n")
	for _, want := range []string{"type:     postgres", "port:     default", "password: ***", "params:   sslmode=require", "file:     /tmp/source.json"} {
		if !strings.Contains(lines, want) {
			t.Errorf("missing %q in:\n%s", want, lines)
		}
	}

	if got := describeProfile(connector.Profile{}, "x.json", false)[0]; got != "not configured" {
		t.Errorf("empty profile rendered as %q", got)
	}
	if got := maskPassword("pw", true); got != "*** (keychain)" {
		t.Errorf("maskPassword keychain = %q", got)
	}
	if got := maskPassword("", false); got != "(not set)" {
		t.Errorf("maskPassword empty = %q", got)
	}
}

func TestDiagnosticItem(t *testing.T) {
	if it := diagnosticItem("  (id, int)"); it.Level != 1 || it.Text != "(id, int)" {
		t.Errorf("column entry = %+v", it)
	}
	if it := diagnosticItem("Columns in source table users:"); it.Level != 0 {
		t.Errorf("heading = %+v", it)
	}
}

func TestWriteResultJSON(t *testing.T) {
	five, seven := int64(5), int64(7)
	res := validate.Result{
		Kind:        tcerrors.ValidationFailed,
		Reason:      validate.ReasonRowCountMismatch,
		Diagnostics: []string{"a", "b"},
		SourceRows:  &five,
		TargetRows:  &seven,
	}
	var buf bytes.Buffer
	if err := writeResultJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got["passed"] != false || got["reason"] != "row count mismatch" || got["kind"] != "validation_failed" {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
	if got["source_rows"] != float64(5) || got["target_rows"] != float64(7) {
		t.Errorf("row counts missing: %s", buf.String())
	}
}

func TestErrorHint(t *testing.T) {
	cfgErr := tcerrors.Wrap(tcerrors.ConfigurationError, "load settings", io.ErrUnexpectedEOF)
	if got := errorHint(cfgErr); !strings.Contains(got, "tablecheck config") {
		t.Errorf("errorHint(configuration) = %q", got)
	}
	if got := errorHint(tcerrors.New(tcerrors.ConnectionError, "refused")); got != "" {
		t.Errorf("errorHint(connection) = %q, want empty", got)
	}
	if got := errorHint(io.EOF); got != "" {
		t.Errorf("errorHint(plain) = %q, want empty", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("got %q", got)
	}
}
