package refresolve

import (
	"github.com/agnivade/levenshtein"
)

// Similarity scores two strings in [0,1]. The resolver only depends on
// this shape; any edit-distance-based ratio works, the 0.85 acceptance
// threshold is the contract rather than the algorithm.
type Similarity func(a, b string) float64

// LevenshteinRatio is the default Similarity: 1 - distance/maxlen.
func LevenshteinRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
