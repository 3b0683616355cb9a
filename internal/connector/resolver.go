// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package connector

import (
	"net/url"
	"strconv"
	"time"

	"tablecheck/cli/internal/dsn"
)

// Options tune how adapters open connections.
type Options struct {
	// ConnectTimeout bounds dial, handshake and the verifying ping. Zero means no limit.
	ConnectTimeout time.Duration
}

// Resolver maps connector kinds to drivers configured with shared options.
type Resolver struct {
	Options Options
}

// Resolve returns the driver for kind, or nil when the kind is not supported.
// A nil driver is a configuration error; callers must not attempt to connect.
func (r Resolver) Resolve(kind Kind) Driver {
	switch kind {
	case KindMariaDB:
		return &MariaDBDriver{opts: r.Options}
	case KindPostgres:
		return &PostgresDriver{opts: r.Options}
	default:
		return nil
	}
}

// Resolve uses default options.
func Resolve(kind Kind) Driver {
	return Resolver{}.Resolve(kind)
}

// dsnInfo converts a profile into the DSN form understood by the dsn package.
func dsnInfo(t dsn.DBType, p Profile) (*dsn.DSNInfo, error) {
	port := t.DefaultPort()
	if p.Port > 0 {
		port = strconv.Itoa(p.Port)
	}
	params := map[string]string{}
	if p.Params != "" {
		q, err := url.ParseQuery(p.Params)
		if err != nil {
			return nil, dsn.NewParseError("", "invalid connection parameters: "+err.Error(),
				"use key=value pairs joined by '&', e.g. tls=true")
		}
		for k := range q {
			params[k] = q.Get(k)
		}
	}
	return &dsn.DSNInfo{
		Type:     t,
		Host:     p.Host,
		Port:     port,
		User:     p.User,
		Password: p.Password,
		Database: p.Database,
		Params:   params,
	}, nil
}

// connString renders the driver connection string for a profile.
func connString(t dsn.DBType, p Profile) (string, error) {
	info, err := dsnInfo(t, p)
	if err != nil {
		return "", err
	}
	return dsn.Normalize(info)
}

// FromDSN builds a profile from a postgres:// or mysql:// URL. Query parameters are
// checked by the driver and kept in Params.
func FromDSN(raw string) (Profile, error) {
	if err := dsn.Validate(raw); err != nil {
		return Profile{}, err
	}
	info, err := dsn.ParseInfo(raw)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		Host:     info.Host,
		Database: info.Database,
		User:     info.User,
		Password: info.Password,
	}
	switch info.Type {
	case dsn.DBTypeMySQL:
		p.Kind = KindMariaDB
	case dsn.DBTypePostgreSQL:
		p.Kind = KindPostgres
	}
	if info.Port != "" && info.Port != info.Type.DefaultPort() {
		port, err := strconv.Atoi(info.Port)
		if err != nil {
			return Profile{}, dsn.NewParseError(raw, "invalid port number: "+info.Port, "port must be numeric")
		}
		p.Port = port
	}
	if len(info.Params) > 0 {
		q := url.Values{}
		for k, v := range info.Params {
			q.Set(k, v)
		}
		p.Params = q.Encode()
	}
	return p, nil
}

// Address returns host:port for display.
func (p Profile) Address() string {
	port := p.Port
	if port == 0 {
		switch p.Kind {
		case KindMariaDB:
			port = 3306
		case KindPostgres:
			port = 5432
		}
	}
	if port == 0 {
		return p.Host
	}
	return p.Host + ":" + strconv.Itoa(port)
}
