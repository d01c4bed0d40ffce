// Package suggest offers "did you mean" flag-name correction for the
// CLI, using a Levenshtein distance over the set of known flag names.
// Grounded on the teacher's own go-edlib usage in
// internal/mcp/symbol_type_resolver.go (edlib.LevenshteinDistance for
// canonical-name correction) and internal/semantic/fuzzy_matcher.go
// (edlib.StringsSimilarity for a normalized score).
package suggest

import "github.com/hbollon/go-edlib"

// maxDistance bounds how different a candidate may be from the typo'd
// input before it's no longer worth suggesting.
const maxDistance = 3

// Flag returns the known flag name closest to typo, or "" if nothing
// in known is within maxDistance edits.
func Flag(typo string, known []string) string {
	best := ""
	bestDist := maxDistance + 1
	for _, candidate := range known {
		d := edlib.LevenshteinDistance(typo, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}

// Similarity returns a 0-1 Jaro-Winkler similarity score between a and
// b. Flag ranks candidates by Levenshtein distance alone and does not
// call it.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}
