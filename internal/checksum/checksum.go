// Package checksum computes content digests used as catalog versions and ETags.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Combine folds several digests into one, order-sensitive.
func Combine(sums ...string) string {
	return Sum([]byte(strings.Join(sums, "\n")))
}

// ETag returns a strong HTTP entity tag for data.
func ETag(data []byte) string {
	return `"` + Sum(data)[:16] + `"`
}
