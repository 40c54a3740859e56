package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the content identity of data: its SHA-256 digest as 64
// lowercase hex characters. Identical bytes always produce the identical
// fingerprint, including the empty input.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
