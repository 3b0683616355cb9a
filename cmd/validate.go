// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tablecheck/cli/internal/connector"
	tcerrors "tablecheck/cli/internal/errors"
	"tablecheck/cli/internal/terminal"
	"tablecheck/cli/internal/validate"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	sourceTable string
	targetTable string
	json        bool
}

var validateOpts validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compare the source table with the target table",
	Long: `The validate command connects to the source and target databases from the saved
profiles and checks, in order, that:

  1. both tables exist,
  2. they have the same columns (name and data type, in ordinal order),
  3. they have the same number of rows.

It stops at the first failure and exits with status 1 when the tables differ.
Table names may be qualified with a schema (schema.table). Missing names are
prompted for on a terminal.`,
	Example: `  tablecheck validate --source-table users --target-table public.users
  tablecheck validate --source-table orders --target-table orders --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		return runValidate(cmd, s, terminal.NewPrompter(), validateOpts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateOpts.sourceTable, "source-table", "", "Table in the source database (table or schema.table)")
	validateCmd.Flags().StringVar(&validateOpts.targetTable, "target-table", "", "Table in the target database (table or schema.table)")
	validateCmd.Flags().BoolVar(&validateOpts.json, "json", false, "Print the result as JSON")
}

func runValidate(cmd *cobra.Command, s *session, p *terminal.Prompter, opts validateOptions) error {
	src, err := s.source.Load()
	if err != nil {
		return err
	}
	dst, err := s.target.Load()
	if err != nil {
		return err
	}
	if src.IsEmpty() || dst.IsEmpty() {
		return tcerrors.New(tcerrors.ConfigurationError,
			"connection data is missing; run 'tablecheck connect' first")
	}

	interactive := terminal.IsInteractive()
	if opts.sourceTable == "" || opts.targetTable == "" {
		if !interactive {
			return tcerrors.New(tcerrors.ConfigurationError, "--source-table and --target-table are required")
		}
		if opts.sourceTable == "" {
			if opts.sourceTable, err = p.Line("Enter the source table name: "); err != nil {
				return err
			}
		}
		if opts.targetTable == "" {
			if opts.targetTable, err = p.Line("Enter the target table name: "); err != nil {
				return err
			}
		}
	}

	var rep validate.Reporter = quietReporter{}
	if !opts.json {
		sr := newStatusReporter(os.Stdout, interactive)
		defer sr.finish()
		rep = sr
	}

	drivers := connector.Resolver{Options: connector.Options{ConnectTimeout: s.cfg.ConnectTimeout.Std()}}
	v := validate.New(drivers, s.cfg.QueryTimeout.Std(), rep)
	res := v.Validate(cmd.Context(),
		validate.Side{Label: "source", Profile: src, Table: opts.sourceTable},
		validate.Side{Label: "target", Profile: dst, Table: opts.targetTable},
	)
	if sr, ok := rep.(*statusReporter); ok {
		sr.finish()
	}

	if opts.json {
		if err := writeResultJSON(os.Stdout, res); err != nil {
			return err
		}
	} else {
		printResult(res)
	}
	if !res.Passed {
		return exitError{code: 1}
	}
	return nil
}

func writeResultJSON(w io.Writer, res validate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printResult(res validate.Result) {
	if res.Passed {
		pterm.Println()
		title := pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("Validation successful")
		pterm.Println(pterm.DefaultBox.WithTitle(title).WithPadding(1).Sprint(resultSummary(res)))
		return
	}

	pterm.Error.Printfln("Validation failed: %s", res.Reason)
	if len(res.Diagnostics) == 0 {
		return
	}
	var items []pterm.BulletListItem
	for _, d := range res.Diagnostics {
		items = append(items, diagnosticItem(d))
	}
	_ = pterm.DefaultBulletList.WithItems(items).Render()
}

// diagnosticItem indents column entries under their heading.
func diagnosticItem(d string) pterm.BulletListItem {
	if len(d) > 2 && d[:2] == "  " {
		return pterm.BulletListItem{Level: 1, Text: d[2:]}
	}
	return pterm.BulletListItem{Level: 0, Text: d}
}

func resultSummary(res validate.Result) string {
	rows := int64(0)
	if res.SourceRows != nil {
		rows = *res.SourceRows
	}
	return fmt.Sprintf("Columns: %d\nRows:    %d\n\nThe tables are identical.", len(res.SourceColumns), rows)
}
