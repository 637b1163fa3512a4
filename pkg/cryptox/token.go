package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// InviteTokenBytes is the entropy of an invitation token. Encoded with
// base64url and no padding it is InviteTokenLen characters long.
const (
	InviteTokenBytes = 32
	InviteTokenLen   = 43
)

// NewToken returns size random bytes encoded as unpadded base64url.
func NewToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewInviteToken returns a fresh 256-bit invitation token.
func NewInviteToken() (string, error) {
	return NewToken(InviteTokenBytes)
}

// IsInviteToken reports whether s has the shape of a token minted by
// NewInviteToken. It says nothing about whether the token exists.
func IsInviteToken(s string) bool {
	if len(s) != InviteTokenLen {
		return false
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil && len(b) == InviteTokenBytes
}

// FingerprintToken returns the base64url SHA-256 of token. Logs carry the
// fingerprint, never the token.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// EqualTokens compares two tokens in constant time.
func EqualTokens(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
