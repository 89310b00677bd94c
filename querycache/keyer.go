package querycache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Keyer generates deterministic cache keys from query execution parameters.
//
// Contract:
// - Determinism: identical inputs must produce identical keys.
// - Sensitivity: varying any single input must change the key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from the query text, endpoint id, and
	// format id.
	Key(query, endpoint, format string) string
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key derives a 128-bit hex-encoded key from the three inputs. Each field
// is length-prefixed before hashing so no two distinct input triples share
// a preimage.
func (k *DefaultKeyer) Key(query, endpoint, format string) string {
	h := sha256.New()
	for _, field := range []string{query, endpoint, format} {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(field)))
		h.Write(n[:])
		h.Write([]byte(field))
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
