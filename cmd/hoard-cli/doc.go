// Package main provides the entry point for hoard-cli, the command-line
// client for Hoard. Run without a command for help, or use "shell" for an
// interactive session.
package main
