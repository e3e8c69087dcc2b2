package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortDigestLen is the display length of a digest in logs
const shortDigestLen = 12

// Digest returns the hex SHA-256 of data
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns a prefix of the digest for display
func ShortDigest(data []byte) string {
	return Digest(data)[:shortDigestLen]
}

// SameContent reports whether two payloads hash identically
func SameContent(a, b []byte) bool {
	return Digest(a) == Digest(b)
}
