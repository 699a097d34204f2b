package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey returns the key of a rendering of the layout with the
	// given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// TraceKey returns the key of a rendered gesture trace.
	TraceKey(layoutHash, scriptHash string, format string) string
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	CellSize int    `json:"cell_size"`
	Rows     int    `json:"rows"`
	Grid     bool   `json:"grid"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// TraceKey implements Keyer.
func (DefaultKeyer) TraceKey(layoutHash, scriptHash, format string) string {
	return hashKey("trace", layoutHash, scriptHash, format)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
