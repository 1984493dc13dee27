package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// OwnerDigest is the hex sha256 of an owner id, used as a path segment
// wherever the raw id should not appear.
func OwnerDigest(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}
