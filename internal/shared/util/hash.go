package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashUserKey maps a caller identity such as "guest:<id>" to the hex
// SHA-256 used as the owner directory of every storage key. Surrounding
// whitespace is ignored.
func HashUserKey(identity string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(identity)))
	return hex.EncodeToString(sum[:])
}
