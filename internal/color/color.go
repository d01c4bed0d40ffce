// Package color decides whether a render gets ANSI decoration and
// supplies the two decoration wrappers the output layer calls: comments
// (omission lines) and the universal "…" marker. Nothing else in a
// rendered preview is colored — color here is a presentation accent on
// the budget's own bookkeeping text, applied strictly after the
// uncolored stream has already been measured and truncated.
package color

import (
	"os"

	"github.com/fatih/color"
)

// Mode mirrors the CLI's --color auto/always/never tri-state.
type Mode uint8

const (
	Auto Mode = iota
	Always
	Never
)

// Enabled resolves a Mode plus the ambient environment into a decision:
// NO_COLOR always wins over Auto (per the NO_COLOR convention), but
// never over an explicit --color.
func Enabled(mode Mode, isTTY bool) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false
		}
		return isTTY
	}
}

var (
	commentColor  = color.New(color.FgHiBlack)
	omissionColor = color.New(color.FgHiBlack, color.Italic)
)

// Comment wraps an omission/gap decoration body in the dim comment
// color when enabled, unchanged otherwise.
func Comment(body string, enabled bool) string {
	if !enabled {
		return body
	}
	return commentColor.Sprint(body)
}

// OmissionMarker returns the universal truncation marker, colored when
// enabled.
func OmissionMarker(enabled bool) string {
	if !enabled {
		return "…"
	}
	return omissionColor.Sprint("…")
}
