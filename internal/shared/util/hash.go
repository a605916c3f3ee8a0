package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user ID to a stable, filesystem-safe directory name.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
