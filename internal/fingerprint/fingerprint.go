// Package fingerprint provides short content-identity hashes for units.
//
// Fingerprints are truncated BLAKE3 digests used purely as exact-equality
// signals, never as security primitives. Collisions at realistic corpus
// sizes are assumed negligible.
package fingerprint

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Length is the number of hex characters in a fingerprint.
const Length = 12

// Hash computes the truncated hex digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])[:Length]
}

// HashString is Hash over a string.
func HashString(s string) string {
	return Hash([]byte(s))
}
