package repl

import "strings"

// Completer suggests command names.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{"DELETE", "FLUSH", "GET", "MGET", "MSET", "SET"},
	}
}

// Commands returns the known server commands.
func (c *Completer) Commands() []string {
	return append([]string(nil), c.commands...)
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
