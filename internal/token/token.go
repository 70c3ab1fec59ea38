// Package token issues the opaque account hashes handed out at sign-up.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Size is the number of random bytes in a token. The hex form is twice as long.
const Size = 16

// New returns a fresh token of Size random bytes, hex encoded.
func New() (string, error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// WellFormed reports whether s looks like a token produced by New.
// Lookups never depend on it; unknown hashes are simply not found.
func WellFormed(s string) bool {
	if len(s) != 2*Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
