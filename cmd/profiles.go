// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"tablecheck/cli/internal/connector"
	"tablecheck/cli/internal/profile"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// profilesCmd shows both stored profiles with the password masked.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the saved source and target connection profiles",
	Long: `The profiles command prints the saved source and target connection profiles.
Passwords are never shown; only whether one is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		for _, side := range []struct {
			label string
			store profile.Store
		}{{"Source", s.source}, {"Target", s.target}} {
			p, err := side.store.Load()
			if err != nil {
				return err
			}
			title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(side.label + " connection")
			pterm.DefaultBox.
				WithTitle(title).
				WithPadding(1).
				Println(strings.Join(describeProfile(p, side.store.Path, side.store.Secrets != nil), "\n"))
		}
		pterm.Println("To update the profiles, run: tablecheck connect")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

// describeProfile renders a profile for display. The password is replaced by a marker.
func describeProfile(p connector.Profile, path string, keychain bool) []string {
	if p.IsEmpty() {
		return []string{"not configured", "file: " + path}
	}
	port := "default"
	if p.Port != 0 {
		port = strconv.Itoa(p.Port)
	}
	lines := []string{
		fmt.Sprintf("type:     %s", p.Kind),
		fmt.Sprintf("host:     %s", p.Host),
		fmt.Sprintf("port:     %s", port),
		fmt.Sprintf("database: %s", p.Database),
		fmt.Sprintf("user:     %s", p.User),
		fmt.Sprintf("password: %s", maskPassword(p.Password, keychain)),
	}
	if p.Params != "" {
		lines = append(lines, fmt.Sprintf("params:   %s", p.Params))
	}
	return append(lines, fmt.Sprintf("file:     %s", path))
}

func maskPassword(pw string, keychain bool) string {
	switch {
	case pw == "":
		return "(not set)"
	case keychain:
		return "*** (keychain)"
	default:
		return "***"
	}
}
