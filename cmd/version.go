// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version is set at build time with -ldflags "-X tablecheck/cli/cmd.Version=...".
	Version = "0.0.0-dev"
)
