package entity

import (
	"sort"
	"strings"
)

// PageSeparator joins page texts when reconstructing the full document
// text. Offset math in the resolver's full-document fallback depends on it
// being exactly one character.
const PageSeparator = "\n"

// PageMap maps 1-indexed page numbers to that page's raw text. Keys are
// expected contiguous starting at 1; a sparse map still works, pages are
// always visited in ascending numeric order.
type PageMap map[int]string

// Pages returns the page numbers in ascending order.
func (m PageMap) Pages() []int {
	pages := make([]int, 0, len(m))
	for n := range m {
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}

// FullText reconstructs the document text by joining page texts with
// PageSeparator in page order.
func (m PageMap) FullText() string {
	pages := m.Pages()
	parts := make([]string, 0, len(pages))
	for _, n := range pages {
		parts = append(parts, m[n])
	}
	return strings.Join(parts, PageSeparator)
}

// PageAtOffset maps a character offset in FullText back to a page number.
// Returns 0 when the map is empty or the offset is past the end.
func (m PageMap) PageAtOffset(offset int) int {
	cumulative := 0
	for i, n := range m.Pages() {
		if i > 0 {
			cumulative += len(PageSeparator)
		}
		cumulative += len(m[n])
		if offset < cumulative {
			return n
		}
	}
	return 0
}
