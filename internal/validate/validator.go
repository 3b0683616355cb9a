// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validate compares two tables, possibly on different engines, and
// decides whether they have the same columns and the same number of rows.
//
// A run checks, in order and stopping at the first failure: connector kinds,
// table names, both connections, table existence, column lists, row counts.
// Every outcome, including driver errors and panics, is folded into a Result;
// both connections are closed before Validate returns.
package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tablecheck/cli/internal/connector"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/inspect"
	"tablecheck/cli/internal/logging"
)

// Side is one half of a comparison.
type Side struct {
	// Label names the side in messages, e.g. "source".
	Label   string
	Profile connector.Profile
	Table   string
}

// DriverResolver maps a connector kind to a driver; nil means unsupported.
type DriverResolver interface {
	Resolve(kind connector.Kind) connector.Driver
}

// Reporter receives progress messages as a run advances.
type Reporter interface {
	Progress(msg string)
	Success(msg string)
}

type nopReporter struct{}

func (nopReporter) Progress(string) {}
func (nopReporter) Success(string)  {}

// Validator runs table comparisons.
type Validator struct {
	Drivers DriverResolver
	// QueryTimeout bounds each catalog or count query; zero means none.
	QueryTimeout time.Duration
	Reporter     Reporter
}

// New creates a Validator. A nil reporter discards progress messages.
func New(drivers DriverResolver, queryTimeout time.Duration, r Reporter) *Validator {
	if r == nil {
		r = nopReporter{}
	}
	return &Validator{Drivers: drivers, QueryTimeout: queryTimeout, Reporter: r}
}

type side struct {
	Side
	driver  connector.Driver
	table   inspect.TableName
	conn    connector.Conn
	inspect *inspect.Inspector
}

func (s *side) label() string {
	if s.Label == "" {
		return "database"
	}
	return s.Label
}

func (s *side) close() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		logging.Debugf("close %s connection: %v", s.label(), err)
	}
	s.conn = nil
}

// Validate compares source and target. It never panics and never returns an error;
// every failure is described by the Result.
func (v *Validator) Validate(ctx context.Context, source, target Side) (res Result) {
	rep := v.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	sides := []*side{{Side: source}, {Side: target}}

	if r, ok := v.resolve(sides); !ok {
		return r
	}

	defer func() {
		for _, s := range sides {
			s.close()
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			res = failed(tcerrors.DriverError, logging.Mask(fmt.Sprint(p)))
		}
	}()

	rep.Progress("Connecting to databases...")
	for _, s := range sides {
		conn, err := s.driver.Open(ctx, s.Profile)
		if err != nil {
			msg := logging.Mask(err.Error())
			diags := []string{fmt.Sprintf("%s: %s (%s)", s.label(), s.Profile.Address(), s.Profile.Kind)}
			if hint := logging.ConnErrorHint(msg); hint != "" {
				diags = append(diags, hint)
			}
			return failed(tcerrors.ConnectionError,
				fmt.Sprintf("connection to %s database failed: %s", s.label(), msg), diags...)
		}
		s.conn = conn
		s.inspect = inspect.New(conn, v.QueryTimeout)
	}
	rep.Success("Databases connected successfully.")

	rep.Progress("Validating tables...")
	var missing []string
	for _, s := range sides {
		ok, err := s.inspect.TableExists(ctx, s.table)
		if err != nil {
			return driverFailure(s, "check table existence", err)
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("table %q does not exist in %s database", s.table.String(), s.label()))
		}
	}
	if len(missing) > 0 {
		return failed(tcerrors.ValidationFailed, strings.Join(missing, "; "))
	}
	rep.Success("Tables validated successfully.")

	rep.Progress("Comparing columns...")
	cols := make([][]inspect.Column, len(sides))
	for i, s := range sides {
		c, err := s.inspect.Columns(ctx, s.table)
		if err != nil {
			return driverFailure(s, "read columns", err)
		}
		cols[i] = c
	}
	res.SourceColumns, res.TargetColumns = cols[0], cols[1]
	if !EqualColumns(cols[0], cols[1]) {
		res.Kind = tcerrors.ValidationFailed
		res.Reason = ReasonSchemaMismatch
		res.Diagnostics = append(res.Diagnostics, firstDifference(cols[0], cols[1]))
		for i, s := range sides {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Columns in %s table %s:", s.label(), s.table))
			for _, c := range cols[i] {
				res.Diagnostics = append(res.Diagnostics, "  "+c.String())
			}
		}
		return res
	}
	rep.Success("Columns match.")

	rep.Progress("Counting rows...")
	counts := make([]int64, len(sides))
	for i, s := range sides {
		n, err := s.inspect.CountRows(ctx, s.table)
		if err != nil {
			return driverFailure(s, "count rows", err)
		}
		counts[i] = n
	}
	res.SourceRows, res.TargetRows = &counts[0], &counts[1]
	if counts[0] != counts[1] {
		res.Kind = tcerrors.ValidationFailed
		res.Reason = ReasonRowCountMismatch
		for i, s := range sides {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("Number of records in %s table %s: %d", s.label(), s.table, counts[i]))
		}
		return res
	}

	res.Passed = true
	rep.Success("Validation successful: tables are identical.")
	return res
}

// resolve checks connector kinds and table names before any network access.
func (v *Validator) resolve(sides []*side) (Result, bool) {
	var problems []string
	for _, s := range sides {
		if v.Drivers != nil {
			s.driver = v.Drivers.Resolve(s.Profile.Kind)
		}
		if s.driver == nil {
			problems = append(problems, fmt.Sprintf("unknown connector kind %q for %s profile", s.Profile.Kind, s.label()))
		}
	}
	for _, s := range sides {
		t, err := inspect.ParseTableName(s.Table)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", s.label(), err))
			continue
		}
		s.table = t
	}
	if len(problems) > 0 {
		return failed(tcerrors.ConfigurationError, strings.Join(problems, "; ")), false
	}
	return Result{}, true
}

func driverFailure(s *side, op string, err error) Result {
	return failed(tcerrors.DriverError, logging.Mask(err.Error()),
		fmt.Sprintf("%s: %s on %s failed", s.label(), op, s.table))
}
