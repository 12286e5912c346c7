package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes the deterministic content hash used as the sole
// deduplication key. Two postings with the same title, company, source id, and
// location are the same job regardless of source timing or other fields.
func Fingerprint(title, company, sourceID, location string) string {
	raw := fmt.Sprintf("%s|%s|%s|%s", title, company, sourceID, location)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
