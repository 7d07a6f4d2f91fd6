package normalize

import (
	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/entity"
)

// AssignAccountHead fills account_type from a document-text keyword scan
// when the oracle left it empty. Existing assignments are kept, so the
// stage is idempotent.
func AssignAccountHead(rec *entity.ExtractedRecord, documentText string) {
	if rec.AccountType != "" {
		return
	}
	rec.AccountType = string(constants.ClassifyAccountHead(documentText))
}
