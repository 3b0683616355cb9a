// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"tablecheck/cli/internal/config"
	tcerrors "tablecheck/cli/internal/errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Without arguments, config prints every setting and its value.

Settings:
  log_level        debug, info, warn or error (debug enables verbose output)
  connect_timeout  time allowed to open a connection, e.g. 10s
  query_timeout    limit per catalog or count query, 0 for none
  use_keychain     keep passwords in the OS keychain (true/false)
  source_profile   path of the source profile file
  target_profile   path of the target profile file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "load settings", err)
		}
		data := pterm.TableData{{"setting", "value"}}
		for _, k := range config.Keys {
			v, _ := cfg.Get(k)
			data = append(data, []string{k, v})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "load settings", err)
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "config set", err)
		}
		if err := config.Save(cfg); err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "save settings", err)
		}
		v, _ := cfg.Get(args[0])
		pterm.Success.Printfln("%s = %s", args[0], v)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "load settings", err)
		}
		v, err := cfg.Get(args[0])
		if err != nil {
			return tcerrors.Wrap(tcerrors.ConfigurationError, "config get", err)
		}
		pterm.Println(v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)
}
