// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package connector

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"

	"tablecheck/cli/internal/dsn"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/logging"
)

// MariaDBDriver connects to MariaDB and MySQL servers through database/sql.
type MariaDBDriver struct {
	opts Options
}

func (d *MariaDBDriver) Kind() Kind { return KindMariaDB }

// Open builds a go-sql-driver config from the profile and pings the server.
// The pool is limited to one connection so a run holds exactly one session.
func (d *MariaDBDriver) Open(ctx context.Context, p Profile) (Conn, error) {
	connStr, err := connString(dsn.DBTypeMySQL, p)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "build mariadb connection string", err)
	}
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "build mariadb connection string", err)
	}
	cfg.Timeout = d.opts.ConnectTimeout

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "build mariadb connector", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx := ctx
	if d.opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, d.opts.ConnectTimeout)
		defer cancel()
	}
	logging.Debugf("mariadb: connecting to %s as %s", p.Address(), p.User)
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, tcerrors.Wrap(tcerrors.ConnectionError,
			fmt.Sprintf("connect to mariadb at %s", p.Address()), err)
	}
	return &mariadbConn{db: db}, nil
}

type mariadbConn struct {
	db   *sql.DB
	once sync.Once
	err  error
}

func (c *mariadbConn) Dialect() Dialect { return MariaDBDialect }

func (c *mariadbConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

func (c *mariadbConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (c *mariadbConn) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	c.once.Do(func() { c.err = c.db.Close() })
	return c.err
}

// sqlRows adapts *sql.Rows, whose Close returns an error, to Rows.
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }
