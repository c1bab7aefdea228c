package dispatch

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives a deterministic digest for a (text, question-set) pair.
// Questions are hashed in sorted order, so reordering them yields the same
// fingerprint; answer-index alignment uses the caller's order at parse time
// instead.
func Fingerprint(text string, questions []string) string {
	sorted := make([]string, len(questions))
	copy(sorted, questions)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(text)))
	for _, q := range sorted {
		h.Write([]byte{0x1f})
		h.Write([]byte(q))
	}
	return hex.EncodeToString(h.Sum(nil))
}
