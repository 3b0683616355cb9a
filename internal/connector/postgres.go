// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package connector

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablecheck/cli/internal/dsn"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/logging"
)

// PostgresDriver connects to PostgreSQL through a single-connection pgx pool.
type PostgresDriver struct {
	opts Options
}

func (d *PostgresDriver) Kind() Kind { return KindPostgres }

// Open normalizes the profile into a postgresql:// URL, dials and pings.
func (d *PostgresDriver) Open(ctx context.Context, p Profile) (Conn, error) {
	connStr, err := connString(dsn.DBTypePostgreSQL, p)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "build postgres connection string", err)
	}
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "parse postgres connection string", err)
	}
	cfg.MaxConns = 1
	cfg.MinConns = 0
	if d.opts.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = d.opts.ConnectTimeout
	}

	pingCtx := ctx
	if d.opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, d.opts.ConnectTimeout)
		defer cancel()
	}
	logging.Debugf("postgres: connecting to %s as %s", p.Address(), p.User)
	pool, err := pgxpool.NewWithConfig(pingCtx, cfg)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConnectionError,
			fmt.Sprintf("connect to postgres at %s", p.Address()), err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, tcerrors.Wrap(tcerrors.ConnectionError,
			fmt.Sprintf("connect to postgres at %s", p.Address()), err)
	}
	return &postgresConn{pool: pool}, nil
}

type postgresConn struct {
	pool *pgxpool.Pool
	once sync.Once
}

func (c *postgresConn) Dialect() Dialect { return PostgresDialect }

func (c *postgresConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.pool.QueryRow(ctx, query, args...)
}

func (c *postgresConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *postgresConn) Close() error {
	if c == nil || c.pool == nil {
		return nil
	}
	c.once.Do(c.pool.Close)
	return nil
}
