// Package domain defines Hoard's domain rules and errors.
package domain

import "strconv"

// Protocol-visible limits.
const (
	// MaxKeyLength is the maximum key length in bytes.
	MaxKeyLength = 1024

	// MaxValueLength is the maximum size of a value's encoded form in bytes.
	MaxValueLength = 1 << 20
)

// ValidateKey checks key against maxLen bytes. A maxLen <= 0 means MaxKeyLength.
// Keys are otherwise opaque: no trimming, no case folding.
func ValidateKey(key string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = MaxKeyLength
	}
	if len(key) > maxLen {
		return ErrKeyTooLong.WithDetails(strconv.Itoa(len(key)) + " bytes")
	}
	return nil
}
