package hoardserver

import "strings"

// Parse splits a request on runs of whitespace. The command name is
// upper-cased; arguments are returned verbatim. ok is false for an empty or
// whitespace-only request.
func Parse(line string) (name string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToUpper(fields[0]), fields[1:], true
}
