package refresolve

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/docuflow/docintel/internal/entity"
)

const (
	// snippetRadius is the context kept on each side of a match.
	snippetRadius = 100
	// snippetMax is the hard cap on any returned snippet.
	snippetMax = 200

	defaultFuzzyThreshold = 0.85
	fuzzyMinValueLen      = 10
	truncationMinLen      = 5
)

// Config holds resolver tuning.
type Config struct {
	FuzzyThreshold float64 // default 0.85
}

// Resolver locates the page and literal text span supporting an extracted
// value, bridging canonical values and uncontrolled source formatting with
// deterministic string techniques ordered cheapest-first.
type Resolver struct {
	logger     *slog.Logger
	similarity Similarity
	threshold  float64
}

func NewResolver(cfg Config, sim Similarity, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if sim == nil {
		sim = LevenshteinRatio
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = defaultFuzzyThreshold
	}
	return &Resolver{
		logger:     logger,
		similarity: sim,
		threshold:  cfg.FuzzyThreshold,
	}
}

var (
	reWS      = regexp.MustCompile(`\s+`)
	reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	rePureNum = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// FindReference resolves a value to a supporting page and snippet, or nil
// when nothing in the document justifies it. Techniques run in a fixed
// cascade, each scanned page-by-page in ascending order so earlier pages
// win ties.
func (r *Resolver) FindReference(pm entity.PageMap, fieldKey, value string) *entity.Reference {
	value = strings.TrimSpace(value)
	if value == "" || len(pm) == 0 {
		return nil
	}
	pages := pm.Pages()

	// 1. exact normalized substring
	for _, n := range pages {
		if ref := matchExact(pm[n], n, value); ref != nil {
			r.hit(fieldKey, n, "exact")
			return ref
		}
	}

	// 2. punctuation-insensitive
	for _, n := range pages {
		if ref := matchStripped(pm[n], n, value); ref != nil {
			r.hit(fieldKey, n, "stripped")
			return ref
		}
	}

	// 3. word-boundary regex
	for _, n := range pages {
		if ref := matchWordRegex(pm[n], n, value); ref != nil {
			r.hit(fieldKey, n, "word_regex")
			return ref
		}
	}

	// 4. fuzzy sliding window
	for _, n := range pages {
		if ref := r.matchFuzzy(pm[n], n, value); ref != nil {
			r.hit(fieldKey, n, "fuzzy")
			return ref
		}
	}

	// 5. field-type-specific variants
	if reISODate.MatchString(value) {
		for _, variant := range DateVariants(value) {
			for _, n := range pages {
				if ref := matchExact(pm[n], n, variant); ref != nil {
					r.hit(fieldKey, n, "date_variant")
					return ref
				}
			}
		}
	}
	if rePureNum.MatchString(value) {
		for _, variant := range NumberVariants(value) {
			for _, n := range pages {
				if ref := matchExact(pm[n], n, variant); ref != nil {
					r.hit(fieldKey, n, "number_variant")
					return ref
				}
			}
		}
		if re := InterleavedNumberPattern(value); re != nil {
			for _, n := range pages {
				if loc := re.FindStringIndex(pm[n]); loc != nil {
					r.hit(fieldKey, n, "number_interleaved")
					return makeRef(pm[n], loc[0], loc[1]-loc[0], n)
				}
			}
		}
	}

	// 6. progressive word truncation
	if len(value) > truncationMinLen {
		words := strings.Fields(value)
		tried := map[int]struct{}{len(words): {}}
		for _, n := range []int{5, 4, 3} {
			if n >= len(words) {
				continue
			}
			if _, dup := tried[n]; dup {
				continue
			}
			tried[n] = struct{}{}
			prefix := strings.Join(words[:n], " ")
			for _, pageNum := range pages {
				page := pm[pageNum]
				if ref := matchExact(page, pageNum, prefix); ref != nil {
					r.hit(fieldKey, pageNum, "truncated_exact")
					return ref
				}
				if ref := matchStripped(page, pageNum, prefix); ref != nil {
					r.hit(fieldKey, pageNum, "truncated_stripped")
					return ref
				}
				if ref := matchWordRegex(page, pageNum, prefix); ref != nil {
					r.hit(fieldKey, pageNum, "truncated_regex")
					return ref
				}
			}
		}
	}

	// 7. full-document fallback with offset-derived page
	fullText := pm.FullText()
	if idx := indexFold(fullText, value); idx >= 0 {
		page := pm.PageAtOffset(idx)
		ref := makeRef(fullText, idx, len(value), page)
		r.hit(fieldKey, page, "full_document")
		return ref
	}

	// 8. single-page shortcut: a one-page document trivially supports any
	// present value even when no textual form matched.
	if len(pm) == 1 {
		page := pages[0]
		r.hit(fieldKey, page, "single_page")
		return &entity.Reference{Text: capSnippet(value), Page: &page}
	}

	return nil
}

func (r *Resolver) hit(fieldKey string, page int, technique string) {
	r.logger.Debug("refresolve.match", "field", fieldKey, "page", page, "technique", technique)
}

// indexFold is a case-insensitive substring search returning a byte index
// into the original haystack.
func indexFold(hay, needle string) int {
	return strings.Index(strings.ToLower(hay), strings.ToLower(needle))
}

func collapseWS(s string) string {
	return strings.TrimSpace(reWS.ReplaceAllString(s, " "))
}

// foldMap is a lowercased, whitespace-collapsed (optionally
// punctuation-stripped) view of a text plus, per folded byte, the offset it
// came from. Matches found in the folded view map back to spans of the
// original, so snippets always quote the source verbatim.
type foldMap struct {
	text string
	offs []int
}

func foldText(s string, dropPunct bool) foldMap {
	var b strings.Builder
	offs := make([]int, 0, len(s))
	pending := false
	wsStart := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			if !pending {
				pending = b.Len() > 0
				wsStart = i
			}
			continue
		}
		if dropPunct && isPunctByte(c) {
			continue
		}
		if pending {
			b.WriteByte(' ')
			offs = append(offs, wsStart)
			pending = false
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
		offs = append(offs, i)
	}
	return foldMap{text: b.String(), offs: offs}
}

// isPunctByte treats everything outside ASCII word characters as
// punctuation, mirroring what OCR tends to insert or drop.
func isPunctByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return false
	}
	return true
}

func matchFolded(page string, pageNum int, value string, dropPunct bool) *entity.Reference {
	needle := foldText(value, dropPunct).text
	if needle == "" {
		return nil
	}
	fm := foldText(page, dropPunct)
	idx := strings.Index(fm.text, needle)
	if idx < 0 {
		return nil
	}
	start := fm.offs[idx]
	end := fm.offs[idx+len(needle)-1] + 1
	return makeRef(page, start, end-start, pageNum)
}

// matchExact lowercases and whitespace-collapses both sides, then substring
// searches, snipping from the original page text.
func matchExact(page string, pageNum int, value string) *entity.Reference {
	return matchFolded(page, pageNum, value, false)
}

// matchStripped additionally ignores punctuation on both sides, guarding
// against OCR inserting or dropping it.
func matchStripped(page string, pageNum int, value string) *entity.Reference {
	return matchFolded(page, pageNum, value, true)
}

// matchWordRegex joins a multi-word value with \s+ and anchors on token
// boundaries, tolerating inconsistent internal whitespace.
func matchWordRegex(page string, pageNum int, value string) *entity.Reference {
	words := strings.Fields(value)
	if len(words) < 2 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`)
	if err != nil {
		return nil
	}
	loc := re.FindStringIndex(page)
	if loc == nil {
		return nil
	}
	return makeRef(page, loc[0], loc[1]-loc[0], pageNum)
}

// matchFuzzy slides word windows of the value's word count (and +2, +4 to
// tolerate insertions) across the page and accepts at the similarity
// threshold. Handles OCR substitution errors exact techniques miss.
func (r *Resolver) matchFuzzy(page string, pageNum int, value string) *entity.Reference {
	if len(value) <= fuzzyMinValueLen {
		return nil
	}
	valueLower := strings.ToLower(collapseWS(value))
	n := len(strings.Fields(value))
	if n == 0 {
		return nil
	}
	pageWords := strings.Fields(page)
	for _, extra := range []int{0, 2, 4} {
		w := n + extra
		if w > len(pageWords) {
			continue
		}
		for i := 0; i+w <= len(pageWords); i++ {
			window := strings.Join(pageWords[i:i+w], " ")
			if r.similarity(valueLower, strings.ToLower(window)) >= r.threshold {
				return &entity.Reference{Text: capSnippet(window), Page: &pageNum}
			}
		}
	}
	return nil
}

// makeRef builds a reference with the match position ± snippetRadius of
// context, hard-capped at snippetMax.
func makeRef(hay string, idx, matchLen, pageNum int) *entity.Reference {
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + snippetRadius
	if end > len(hay) {
		end = len(hay)
	}
	snippet := hay[start:end]
	if len(snippet) > snippetMax {
		// shrink symmetrically while keeping the match inside the window
		keep := snippetMax - matchLen
		if keep < 0 {
			keep = 0
		}
		s := idx - keep/2
		if s < start {
			s = start
		}
		e := s + snippetMax
		if e > len(hay) {
			e = len(hay)
			s = e - snippetMax
			if s < 0 {
				s = 0
			}
		}
		snippet = hay[s:e]
	}
	return &entity.Reference{Text: snippet, Page: &pageNum}
}

func capSnippet(s string) string {
	if len(s) > snippetMax {
		return s[:snippetMax]
	}
	return s
}
