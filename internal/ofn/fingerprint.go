package ofn

import "github.com/minio/highwayhash"

// fingerprintKey is fixed so fingerprints are stable across processes
var fingerprintKey = []byte("wiring/ofn fingerprint key v1...")

// Fingerprint returns a 64-bit HighwayHash of the canonical serialization.
// Equal trees have equal fingerprints.
func Fingerprint(e Expr) uint64 {
	return highwayhash.Sum64([]byte(Serialize(e)), fingerprintKey)
}
