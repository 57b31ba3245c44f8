package script

import (
	"crypto/sha1"
	"encoding/hex"
)

// Digest is the SHA1 hex digest the store caches scripts under.
func Digest(source string) string {
	sum := sha1.Sum([]byte(source))
	return hex.EncodeToString(sum[:])
}
