package bitmap

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 64-bit digest of a BitMap's bytes.
//
// It is the first eight bytes, little endian, of the BLAKE3-256 sum of the
// content. Dimensions are not part of the digest: a 2x8 and a 4x4 BitMap
// holding the same bytes share a fingerprint. The zero BitMap has a zero
// fingerprint, while an explicitly written empty buffer carries the digest
// of the empty input.
type Fingerprint uint64

// String returns the fingerprint as 16 hex digits.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

func fingerprintOf(data []byte) Fingerprint {
	sum := blake3.Sum256(data)
	return Fingerprint(binary.LittleEndian.Uint64(sum[:8]))
}

// RecomputeHash recomputes the fingerprint from the current content.
// Every mutating method calls it; calling it again without an intervening
// write yields the same value.
func (b *BitMap) RecomputeHash() {
	b.hash = fingerprintOf(b.body)
}

// Fingerprint returns the fingerprint as of the last mutation.
func (b *BitMap) Fingerprint() Fingerprint {
	return b.hash
}

// SameFingerprint reports whether both BitMaps carry the same fingerprint.
//
// This is not byte-exact equality. Two BitMaps with different content
// compare equal if their digests collide; with a 64-bit truncation of
// BLAKE3 that is rare enough to use for cache keys and change detection.
// Use ContentEqual when a false positive is unacceptable.
func (b *BitMap) SameFingerprint(other *BitMap) bool {
	return b.hash == other.hash
}
