// Package graphemes wraps UAX#29 extended grapheme cluster segmentation
// so every place that counts or truncates a string (the priority order
// builder's per-string expansion, the renderer's truncation prefix)
// agrees on what "one character" means. Counting runes or bytes here
// would split multi-codepoint clusters (skin-tone emoji, ZWJ sequences,
// combining marks, regional-indicator flag pairs) mid-cluster.
package graphemes

import "github.com/clipperhouse/uax29/v2/graphemes"

// Count returns the number of extended grapheme clusters in s.
func Count(s string) int {
	n := 0
	seg := graphemes.FromString(s)
	for seg.Next() {
		n++
	}
	return n
}

// Split returns every grapheme cluster in s as a separate string.
func Split(s string) []string {
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// Prefix returns the first n grapheme clusters of s joined back into a
// string, plus whether s had more clusters than n (truncated).
func Prefix(s string, n int) (prefix string, truncated bool) {
	if n <= 0 {
		return "", Count(s) > 0
	}
	seg := graphemes.FromString(s)
	kept := 0
	end := 0
	for seg.Next() {
		if kept == n {
			return s[:end], true
		}
		end += len(seg.Value())
		kept++
	}
	return s[:end], false
}
