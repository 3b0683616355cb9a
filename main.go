// Package main is the entry point for tablecheck, a tool that verifies a table
// was copied intact between MariaDB and Postgres databases.
package main

import (
	"tablecheck/cli/cmd"
)

func main() {
	cmd.Execute()
}
