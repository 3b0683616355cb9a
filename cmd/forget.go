// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"

	"tablecheck/cli/internal/keychain"
	"tablecheck/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// forgetCmd removes both profiles and any keychain entries.
var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Remove the saved connection profiles and stored passwords",
	Long: `The forget command deletes the source and target profile files and, if the OS
keychain is reachable, the passwords stored there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		errs := []error{s.source.Remove(), s.target.Remove()}

		// Entries may exist from an earlier run with --keychain.
		if s.source.Secrets == nil {
			if km, err := keychain.GetManager(); err == nil {
				errs = append(errs, km.ClearAll())
			} else {
				logging.Debugf("keychain not available: %v", err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		pterm.Success.Println("Connection profiles removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}
