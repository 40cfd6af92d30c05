package store

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint computes a stable content token for change detection.
//
// The token is a hex-encoded BLAKE3 digest. It is used purely as an
// equality check between the persisted config and a freshly rendered one;
// no security property is required of it, only stability and a collision
// rate low enough that content equality can be assumed from token
// equality.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
