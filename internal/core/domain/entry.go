// Package domain defines Hoard's domain rules and errors.
package domain

import "github.com/yndnr/hoard-go/pkg/value"

// Entry is a key with its decoded value and the value's canonical wire
// encoding. Encoded is produced once when the entry is built so readers
// never run the codec.
type Entry struct {
	Key     string
	Value   value.Value
	Encoded []byte
}

// Lookup is the result of reading one key.
type Lookup struct {
	Entry Entry
	Found bool
}
