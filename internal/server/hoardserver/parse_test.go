package hoardserver

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"simple", "GET key", "GET", []string{"key"}, true},
		{"lower case command", "get key", "GET", []string{"key"}, true},
		{"mixed case", "mSeT a CAA b CAA", "MSET", []string{"a", "CAA", "b", "CAA"}, true},
		{"runs of whitespace", "  SET\t k \n  v  ", "SET", []string{"k", "v"}, true},
		{"keys keep case", "GET UserKey", "GET", []string{"UserKey"}, true},
		{"no args", "FLUSH", "FLUSH", []string{}, true},
		{"trailing newline", "FLUSH\r\n", "FLUSH", []string{}, true},
		{"empty", "", "", nil, false},
		{"whitespace only", " \t\r\n ", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := Parse(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}
