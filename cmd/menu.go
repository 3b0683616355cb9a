// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"tablecheck/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type menuChoice int

const (
	menuInvalid menuChoice = iota
	menuConnect
	menuValidate
)

// parseMenuChoice maps an answer to a menu entry. "0" is accepted for the
// connection entry as well, matching the numbering older builds printed.
func parseMenuChoice(s string) menuChoice {
	switch strings.TrimSpace(s) {
	case "1", "0":
		return menuConnect
	case "2":
		return menuValidate
	default:
		return menuInvalid
	}
}

func runMenu(cmd *cobra.Command, p *terminal.Prompter) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	pterm.Println("1. Enter database connection data")
	pterm.Println("2. Validate")
	answer, err := p.Line("Choose an option: ")
	if err != nil {
		return err
	}

	switch parseMenuChoice(answer) {
	case menuConnect:
		return runConnect(cmd, s, p, connectOptions{verify: true})
	case menuValidate:
		return runValidate(cmd, s, p, validateOptions{})
	default:
		pterm.Warning.Println("Invalid option")
		return nil
	}
}
