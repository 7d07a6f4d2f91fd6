package docsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentFullTextInvariant(t *testing.T) {
	doc := NewDocument([]string{"page one text", "page two text", "page three"})
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, doc.Pages.FullText(), doc.FullText)
	assert.Equal(t, "page one text", doc.Pages[1])
	assert.Equal(t, "page three", doc.Pages[3])
}

func TestNewDocumentNormalizesPages(t *testing.T) {
	doc := NewDocument([]string{"Invoice\r\n\tTotal:   100.00  \n\n\n\nEnd"})
	assert.Equal(t, "Invoice\n Total: 100.00\n\nEnd", doc.Pages[1])
	assert.Equal(t, doc.Pages.FullText(), doc.FullText)
}

func TestContentHashStable(t *testing.T) {
	a := NewDocument([]string{"same text"})
	b := NewDocument([]string{"same text"})
	c := NewDocument([]string{"different text"})
	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.NotEqual(t, a.ContentHash(), c.ContentHash())
	assert.Len(t, a.ContentHash(), 64)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs", "a\t\tb   c", "a b c"},
		{"blank line collapse", "a\n\n\n\n\nb", "a\n\nb"},
		{"box noise", "a\n------\nb", "a\n\nb"},
		{"trailing spaces", "a   \nb", "a\nb"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, Normalize(tt.in))
		})
	}
}

func TestHeuristicConfidence(t *testing.T) {
	assert.InDelta(t, 0.2, HeuristicConfidence("short"), 1e-6)

	rich := "Invoice dated 06/11/2025 for USD 12,688.76 covering professional services rendered during October, payable within thirty days of receipt."
	assert.InDelta(t, 0.8, HeuristicConfidence(rich), 1e-6)

	withDate := "Effective 2025-11-06."
	assert.InDelta(t, 0.4, HeuristicConfidence(withDate), 1e-6)
}
