package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("HD-TEST-1000", "test message"),
			expected: "[HD-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("HD-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[HD-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("HD-TEST-1000", "message 1")
	err2 := NewDomainError("HD-TEST-1000", "message 2")
	err3 := NewDomainError("HD-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Wrapped(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrInvalidDataFormat.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	wrapped := fmt.Errorf("set %q: %w", "k", err)
	if !errors.Is(wrapped, ErrInvalidDataFormat) {
		t.Error("errors.Is should see through fmt wrapping")
	}
	if GetErrorCode(wrapped) != "HD-CODC-4000" {
		t.Errorf("GetErrorCode() = %q", GetErrorCode(wrapped))
	}
	if GetErrorCode(cause) != "" {
		t.Error("GetErrorCode(non-domain) should be empty")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		maxLen  int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"at limit", strings.Repeat("k", MaxKeyLength), 0, false},
		{"over limit", strings.Repeat("k", MaxKeyLength+1), 0, true},
		{"custom limit ok", "abcd", 4, false},
		{"custom limit over", "abcde", 4, true},
		// Limit counts bytes, not runes.
		{"multibyte", strings.Repeat("é", 3), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key, tt.maxLen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrKeyTooLong) {
				t.Errorf("error %v should match ErrKeyTooLong", err)
			}
		})
	}
}
