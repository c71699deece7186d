package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

// TestValidateKey tests key validation rules.
func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", ErrInvalidKey},
		{"valid key", `{"0.id":1}`, nil},
		{"too long", strings.Repeat("x", MaxKeyLength+1), ErrKeyTooLong},
		{"contains newline", "key\nwith\nnewlines", ErrInvalidKey},
		{"contains carriage return", "key\rwith\rreturns", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"max length exactly", strings.Repeat("x", MaxKeyLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

// mockStore implements Store to verify the interface contract at compile time.
type mockStore struct{}

func (m *mockStore) Get(ctx context.Context, key string) (any, bool, error) {
	return nil, false, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return nil
}

var _ Store = (*mockStore)(nil)

// TestSentinelErrors verifies sentinel errors are distinct and have expected messages.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrNilStore", ErrNilStore, "cache: store is nil"},
		{"ErrInvalidKey", ErrInvalidKey, "cache: key is invalid"},
		{"ErrKeyTooLong", ErrKeyTooLong, "cache: key exceeds max length"},
		{"ErrTypeMismatch", ErrTypeMismatch, "cache: stored value has unexpected type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}

	if ErrInvalidKey == ErrKeyTooLong {
		t.Error("ErrInvalidKey and ErrKeyTooLong should be distinct")
	}
}
