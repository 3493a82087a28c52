package api

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the chapter content.
// It covers ID, Body, Vocabulary (in stored order), Translation, and the
// creation time. Used for export integrity checks and import dedupe.
func (c Chapter) Hash() string {
	h := blake3.New()

	// Null-byte delimiters keep field boundaries unambiguous.
	h.Write([]byte(c.ID))
	h.Write([]byte{0})

	h.Write([]byte(c.Body))
	h.Write([]byte{0})

	// Vocabulary order is meaningful (reading order), so hash it as stored.
	for _, v := range c.Vocabulary {
		h.Write([]byte(v.Word))
		h.Write([]byte{0})
		h.Write([]byte(v.Meaning))
		h.Write([]byte{0})
	}
	h.Write([]byte{0}) // end of vocabulary

	h.Write([]byte(c.Translation))
	h.Write([]byte{0})

	if !c.CreatedAt.IsZero() {
		h.Write([]byte(c.CreatedAt.UTC().Format(time.RFC3339Nano)))
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
