package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/entity"
)

// NormalizeDocumentIDs rewrites document_ids onto canonical kind keys.
// Unknown kinds move to other_ids as "key: value" entries; empty values are
// dropped. Keys are processed in sorted order so repeated runs produce the
// same result.
func NormalizeDocumentIDs(rec *entity.ExtractedRecord) {
	if len(rec.DocumentIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(rec.DocumentIDs))
	for k := range rec.DocumentIDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	canonical := make(map[string]string, len(rec.DocumentIDs))
	var other []string
	for _, key := range keys {
		value := strings.TrimSpace(rec.DocumentIDs[key])
		if value == "" {
			continue
		}
		kind, known := constants.CanonicalIdentifierKind(key)
		if !known {
			other = append(other, fmt.Sprintf("%s: %s", key, value))
			continue
		}
		// first writer wins when synonyms collide
		if _, exists := canonical[kind]; !exists {
			canonical[kind] = value
		}
	}

	rec.DocumentIDs = canonical
	if len(other) > 0 {
		rec.OtherIDs = other
	}
}
