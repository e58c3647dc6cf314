package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}

// ShortDigest is the first 12 hex chars of the SHA-256 of b, used to label uploads in logs.
func ShortDigest(b []byte) string {
	return SHA256Hex(b)[:12]
}
