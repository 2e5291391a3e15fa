// Package pairid provides a deterministic pair ID from a file path and anchor line.
package pairid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

const prefix = "pair:"

// PairID returns a stable ID for the doc-code pair anchored at the given
// zero-based declaration line. The same path and anchor always yield the same
// ID, so the review-state store can carry review flags across scans.
func PairID(filePath string, anchorLine int) string {
	normalized := filepath.ToSlash(filepath.Clean(filePath))
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", normalized, anchorLine)))
	return prefix + hex.EncodeToString(hash[:16])
}
