// Package integrity offers an optional content fingerprint for a chunk's
// encoded terrain bytes, so a caller can detect silent corruption between a
// save and a later reload without re-running the full codec. It never runs
// implicitly — nothing in package world calls it; a host engine opts in.
package integrity

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint is a blake2b-256 digest of a chunk's encoded terrain bytes,
// hex-encoded for storage alongside the chunk or in a report.
type Fingerprint string

// FingerprintTerrain hashes terrain bytes, typically the first return value
// of chunk.Chunk.Encode.
func FingerprintTerrain(terrainBytes []byte) Fingerprint {
	sum := blake2b.Sum256(terrainBytes)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Verify reports whether terrainBytes still matches want.
func Verify(want Fingerprint, terrainBytes []byte) bool {
	return FingerprintTerrain(terrainBytes) == want
}
