// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"regexp"
	"strings"
)

var reNumeric = regexp.MustCompile(`^\d+$`)

// splitScheme strips one of the accepted schemes from raw.
// It returns the remainder and false when none matches.
func splitScheme(raw string, schemes ...string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, s := range schemes {
		prefix := s + "://"
		if strings.HasPrefix(lower, prefix) {
			return raw[len(prefix):], true
		}
	}
	return "", false
}

// parseURL extracts connection fields from a URL-shaped DSN.
// Standard URL parsing is tried first; when it fails (typically because a password
// contains unescaped reserved characters) the DSN is split by hand.
func parseURL(dbType DBType, raw, remainder, example string) (*DSNInfo, error) {
	info := &DSNInfo{
		Type:     dbType,
		Params:   make(map[string]string),
		Original: raw,
	}

	if parsed, err := url.Parse(raw); err == nil && parsed.User != nil {
		info.Host = parsed.Hostname()
		info.Port = parsed.Port()
		info.User = parsed.User.Username()
		info.Password, _ = parsed.User.Password()
		info.Database = strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		for key, values := range parsed.Query() {
			if len(values) > 0 {
				info.Params[key] = values[0]
			}
		}
	} else if err := splitManual(info, remainder, example); err != nil {
		return nil, err
	}

	if info.Port == "" {
		info.Port = dbType.DefaultPort()
	}
	if err := requireFields(info, example); err != nil {
		return nil, err
	}
	return info, nil
}

// splitManual handles [user[:password]@]host[:port]/database[?params] where the
// password may contain '@' or ':' characters.
func splitManual(info *DSNInfo, remainder, example string) error {
	atIndex := strings.LastIndex(remainder, "@")
	if atIndex == -1 {
		return NewParseError(info.Original, "missing @ separator", "format should be "+example)
	}
	authPart := remainder[:atIndex]
	hostAndDB := remainder[atIndex+1:]

	if user, pass, ok := strings.Cut(authPart, ":"); ok {
		info.User = user
		info.Password = pass
	} else {
		info.User = authPart
	}

	hostPart, dbAndParams, ok := strings.Cut(hostAndDB, "/")
	if !ok {
		return NewParseError(info.Original, "missing / before database name", "format should be "+example)
	}
	if host, port, ok := strings.Cut(hostPart, ":"); ok {
		info.Host = host
		info.Port = port
	} else {
		info.Host = hostPart
	}

	db, params, _ := strings.Cut(dbAndParams, "?")
	info.Database = strings.TrimSpace(db)
	for _, param := range strings.Split(params, "&") {
		if k, v, ok := strings.Cut(param, "="); ok {
			info.Params[k] = v
		}
	}
	return nil
}

func requireFields(info *DSNInfo, example string) error {
	if strings.TrimSpace(info.User) == "" {
		return NewParseError(info.Original, "missing username", "provide username in format "+example)
	}
	if strings.TrimSpace(info.Host) == "" {
		return NewParseError(info.Original, "missing host", "provide host in format "+example)
	}
	if strings.TrimSpace(info.Database) == "" {
		return NewParseError(info.Original, "missing database name", "provide database in format "+example)
	}
	return nil
}

func validatePort(info *DSNInfo) error {
	if info.Port != "" && !reNumeric.MatchString(info.Port) {
		return NewParseError(info.Original, "invalid port number: "+info.Port, "port must be numeric")
	}
	return nil
}
