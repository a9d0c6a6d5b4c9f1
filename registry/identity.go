package registry

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// IdentityFor derives the content-addressed identifier for raw module bytes.
//
// The SHA-256 digest of the bytes, rendered as lowercase hex, is fed as the
// name into a version-5 UUID under the OID namespace and the UUID is
// returned in canonical hyphenated form. Identical bytes always yield the
// same identifier; distinct bytes collide with negligible probability.
func IdentityFor(wasmBytes []byte) string {
	digest := sha256.Sum256(wasmBytes)
	name := hex.EncodeToString(digest[:])
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
