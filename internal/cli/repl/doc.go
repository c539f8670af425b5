// Package repl implements the interactive shell of hoard-cli.
//
// Each input line is sent to the server as one request over a fresh
// connection and the raw reply is printed. Lines starting with a dot are
// local commands (.help, .history, .exit).
package repl
