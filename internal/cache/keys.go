package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/copperwire/penny/internal/model"
)

// keyVersion is baked into every digest so a change to normalization or key
// layout invalidates old entries instead of colliding with them.
const keyVersion = "v1"

// Key derives the deterministic cache key for a mode and query. The digest is
// SHA-256, never a per-process randomized hash: two processes or two runs
// must compute the same key for the same input or the shared cache is
// useless across restarts and replicas.
func Key(mode model.RequestMode, query string) string {
	h := sha256.New()
	h.Write([]byte(keyVersion))
	h.Write([]byte{0})
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(Normalize(query)))
	return hex.EncodeToString(h.Sum(nil))
}

// Normalize collapses a query to its canonical form for key derivation:
// lowercase, trimmed, with interior whitespace runs collapsed to one space.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
