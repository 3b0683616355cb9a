// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd implements the tablecheck command line: storing the two
// connection profiles and validating that a source and a target table match.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"tablecheck/cli/internal/config"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/keychain"
	"tablecheck/cli/internal/logging"
	"tablecheck/cli/internal/profile"
	"tablecheck/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion     bool
	verbose         bool
	useKeychainFlag bool
	sourceProfile   string
	targetProfile   string
)

// exitError ends the process with code without printing anything more.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// rootCmd without a subcommand shows the interactive menu.
var rootCmd = &cobra.Command{
	Use:   "tablecheck",
	Short: "Verify that two tables on MariaDB or Postgres are identical",
	Long: `tablecheck compares a source table and a target table, possibly on different
database engines, and reports whether they have the same columns (name and type,
in ordinal order) and the same number of rows.

Connection profiles are stored in the config directory; run 'tablecheck connect'
to set them up, then 'tablecheck validate'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose || logging.IsVerbose() {
			logging.EnableVerbose()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("tablecheck %s\n", Version)
			return nil
		}
		if !terminal.IsInteractive() {
			return cmd.Help()
		}
		return runMenu(cmd, terminal.NewPrompter())
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		pterm.Error.Println(logging.PresentError(string(tcerrors.KindOf(err)), err))
		if hint := errorHint(err); hint != "" {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests the next command for errors the user can fix locally.
func errorHint(err error) string {
	if tcerrors.Is(err, tcerrors.ConfigurationError) {
		return "Check the settings with 'tablecheck config' and the profiles with 'tablecheck profiles'."
	}
	return ""
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&useKeychainFlag, "keychain", false, "Keep passwords in the OS keychain instead of the profile files")
	rootCmd.PersistentFlags().StringVar(&sourceProfile, "source-profile", "", "Path of the source connection profile (.json or .yaml)")
	rootCmd.PersistentFlags().StringVar(&targetProfile, "target-profile", "", "Path of the target connection profile (.json or .yaml)")
}

// session is the state every command starts from.
type session struct {
	cfg    config.Config
	source profile.Store
	target profile.Store
}

// loadSession reads settings and resolves both profile stores. Flags win over
// config file entries, which win over the default paths.
func loadSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "load settings", err)
	}
	if cfg.LogLevel == "debug" {
		logging.EnableVerbose()
	}
	srcPath, dstPath, err := profile.DefaultPaths()
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "resolve config dir", err)
	}
	srcPath = firstNonEmpty(sourceProfile, cfg.SourceProfile, srcPath)
	dstPath = firstNonEmpty(targetProfile, cfg.TargetProfile, dstPath)

	s := &session{
		cfg:    cfg,
		source: profile.Store{Path: srcPath, SecretKey: keychain.KeySourcePassword},
		target: profile.Store{Path: dstPath, SecretKey: keychain.KeyTargetPassword},
	}
	if useKeychainFlag || cfg.UseKeychain {
		km, err := keychain.GetManager()
		if err != nil {
			return nil, tcerrors.Wrap(tcerrors.ConfigurationError, "keychain unavailable", err)
		}
		s.source.Secrets = km
		s.target.Secrets = km
	}
	logging.Debugf("profiles: source=%s target=%s keychain=%v", srcPath, dstPath, s.source.Secrets != nil)
	return s, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
