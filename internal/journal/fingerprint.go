package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region fingerprint
// Fingerprint is the SHA-256 of the RFC 8785 canonical JSON of a decision.
// Identical decisions always share a fingerprint, whatever map or field
// ordering produced their JSON.
func Fingerprint(d engine.Decision) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal decision: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize decision: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
// #endregion fingerprint
