// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package profile persists the source and target connection profiles.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tablecheck/cli/internal/connector"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/keychain"
	"tablecheck/cli/internal/xdg"
)

// Default file names inside the config dir.
const (
	SourceFile = "source_connection.json"
	TargetFile = "target_connection.json"
)

// SecretStore keeps passwords outside the profile file.
type SecretStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Store reads and writes one profile file.
type Store struct {
	Path string
	// Secrets, when set, receives the password under SecretKey instead of the file.
	Secrets   SecretStore
	SecretKey string
}

// DefaultPaths returns the source and target profile paths in the config dir.
func DefaultPaths() (source, target string, err error) {
	if source, err = xdg.ConfigFile(SourceFile); err != nil {
		return "", "", err
	}
	if target, err = xdg.ConfigFile(TargetFile); err != nil {
		return "", "", err
	}
	return source, target, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the profile. A missing file yields the empty profile.
func (s Store) Load() (connector.Profile, error) {
	var p connector.Profile
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, tcerrors.Wrap(tcerrors.ConfigurationError, "read profile "+s.Path, err)
	}

	if isYAML(s.Path) {
		err = yaml.Unmarshal(b, &p)
	} else {
		err = json.Unmarshal(b, &p)
	}
	if err != nil {
		return connector.Profile{}, tcerrors.Wrap(tcerrors.ConfigurationError, "decode profile "+s.Path, err)
	}

	if p.Kind != "" {
		if k, ok := connector.ParseKind(string(p.Kind)); ok {
			p.Kind = k
		}
	}

	if p.Password == "" && s.Secrets != nil && !p.IsEmpty() {
		pw, err := s.Secrets.Get(s.SecretKey)
		switch {
		case err == nil:
			p.Password = pw
		case !errors.Is(err, keychain.ErrNotFound):
			return p, tcerrors.Wrap(tcerrors.ConfigurationError, "read password from keychain", err)
		}
	}
	return p, nil
}

// Save overwrites the profile file atomically with mode 0600.
func (s Store) Save(p connector.Profile) error {
	if s.Secrets != nil {
		if p.Password != "" {
			if err := s.Secrets.Set(s.SecretKey, p.Password); err != nil {
				return tcerrors.Wrap(tcerrors.ConfigurationError, "store password in keychain", err)
			}
		}
		p.Password = ""
	}

	var (
		b   []byte
		err error
	)
	if isYAML(s.Path) {
		b, err = yaml.Marshal(p)
	} else {
		b, err = json.MarshalIndent(p, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return tcerrors.Wrap(tcerrors.ConfigurationError, "encode profile", err)
	}
	if err := writeAtomic(s.Path, b); err != nil {
		return tcerrors.Wrap(tcerrors.ConfigurationError, "write profile "+s.Path, err)
	}
	return nil
}

// Remove deletes the profile file and its keychain entry. Missing entries are ignored.
func (s Store) Remove() error {
	var errs []error
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	if s.Secrets != nil {
		if err := s.Secrets.Delete(s.SecretKey); err != nil && !errors.Is(err, keychain.ErrNotFound) {
			errs = append(errs, fmt.Errorf("keychain: %w", err))
		}
	}
	return errors.Join(errs...)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
