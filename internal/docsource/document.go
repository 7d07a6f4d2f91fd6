package docsource

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/docuflow/docintel/internal/entity"
)

// Document is the parsed source the core consumes: full text plus a
// 1-indexed page map. FullText always equals Pages.FullText(), so the
// resolver's character-offset fallback stays consistent with per-page
// search.
type Document struct {
	FullText string
	Pages    entity.PageMap
}

// NewDocument builds a Document from per-page texts (index 0 = page 1).
// Page texts are normalized before the map is built, so the full-text
// invariant holds over the normalized form.
func NewDocument(pageTexts []string) *Document {
	pages := make(entity.PageMap, len(pageTexts))
	for i, text := range pageTexts {
		pages[i+1] = Normalize(text)
	}
	return &Document{
		FullText: pages.FullText(),
		Pages:    pages,
	}
}

// ContentHash returns the hex SHA-256 of the full text. Cache invalidation
// and re-extraction dedup key on it.
func (d *Document) ContentHash() string {
	sum := sha256.Sum256([]byte(d.FullText))
	return hex.EncodeToString(sum[:])
}
