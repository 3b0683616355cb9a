// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// VerboseEnv enables debug output when set to "1".
const VerboseEnv = "TABLECHECK_VERBOSE"

// EnableVerbose turns on pterm debug messages for the rest of the process.
func EnableVerbose() {
	os.Setenv(VerboseEnv, "1")
	pterm.EnableDebugMessages()
}

// IsVerbose checks if verbose mode is enabled dynamically
func IsVerbose() bool {
	return os.Getenv(VerboseEnv) == "1"
}

// Debugf prints a masked debug line when verbose mode is on.
func Debugf(format string, args ...any) {
	if !IsVerbose() {
		return
	}
	pterm.Debug.Println(Mask(fmt.Sprintf(format, args...)))
}

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// ConnErrorType represents the category of a connection failure
type ConnErrorType int

const (
	ConnErrorUnknown ConnErrorType = iota
	ConnErrorNetwork
	ConnErrorAuth
	ConnErrorTimeout
	ConnErrorHost
	ConnErrorDatabase
)

// ParseConnError categorizes a driver connection error message
func ParseConnError(errMsg string) ConnErrorType {
	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "no such host") || strings.Contains(lower, "server misbehaving"):
		return ConnErrorHost
	case strings.Contains(lower, "password authentication failed") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "28p01") || strings.Contains(lower, "error 1045"):
		return ConnErrorAuth
	case strings.Contains(lower, "unknown database") ||
		(strings.Contains(lower, "database") && strings.Contains(lower, "does not exist")):
		return ConnErrorDatabase
	case strings.Contains(lower, "deadline") || strings.Contains(lower, "timeout") || strings.Contains(lower, "i/o timeout"):
		return ConnErrorTimeout
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "network is unreachable"):
		return ConnErrorNetwork
	}
	return ConnErrorUnknown
}

// ConnErrorHint returns a one-line suggestion for a connection failure.
func ConnErrorHint(errMsg string) string {
	switch ParseConnError(errMsg) {
	case ConnErrorHost:
		return "The host name could not be resolved. Check the host in the connection profile."
	case ConnErrorAuth:
		return "The server rejected the credentials. Check the user and password."
	case ConnErrorDatabase:
		return "The server is reachable but the database does not exist."
	case ConnErrorTimeout:
		return "The server did not answer in time. Check the network path or raise connect_timeout."
	case ConnErrorNetwork:
		return "The server refused the connection. Check that it is running and the port is correct."
	default:
		return ""
	}
}
