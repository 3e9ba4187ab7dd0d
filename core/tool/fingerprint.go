package tool

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of an exported document.
// Two exports of an unchanged tool have the same fingerprint.
func Fingerprint(doc string) string {
	sum := blake3.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}
