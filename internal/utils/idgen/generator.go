package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Prefixes for every entity family issued by this service.
const (
	PrefixWorkspace    = "ws"
	PrefixUser         = "user"
	PrefixConversation = "conv"
	PrefixMessage      = "msg"
	PrefixPreset       = "pre"
)

// DefaultLength is the random suffix length used for all entity IDs.
const DefaultLength = 16

const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID generates a cryptographically secure ID with the given prefix and length.
// Uses only alphanumeric characters (0-9, a-z) - no dashes or special characters.
func GenerateSecureID(prefix string, length int) (string, error) {
	bytes := make([]byte, length*2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := make([]byte, length)
	for i := 0; i < length; i++ {
		encoded[i] = charset[bytes[i]%36] // 36 = len(charset)
	}

	return fmt.Sprintf("%s_%s", prefix, string(encoded)), nil
}

// ValidateIDFormat reports whether id is a well-formed entity ID carrying the
// expected prefix: "<prefix>_<suffix>" with a non-empty suffix drawn from the
// generation charset.
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}
	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}
