// Package textsrc ingests raw text as an array of line strings: CRLF
// and lone CR are normalized to LF, the input is split into logical
// lines (no trailing empty line for a final newline), and each line
// becomes a String leaf under one Array root.
package textsrc

import (
	"io"
	"strings"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/sampler"
)

type Config struct {
	ArrayMaxItems int
	ArrayStrategy sampler.Strategy
}

// Ingest reads all of r, decodes it as UTF-8 (replacing invalid byte
// sequences with U+FFFD, matching the lossy-decode convention for free
// text), and builds a one-array-of-lines arena.
func Ingest(r io.Reader, cfg Config) (*arena.Arena, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(raw)

	b := arena.NewBuilder()
	rootID, err := pushLines(b, lines, cfg)
	if err != nil {
		return nil, err
	}
	b.SetRoot(rootID)
	return b.Finish(), nil
}

// SplitLines decodes raw bytes lossily, normalizes newlines to LF, and
// splits into logical lines with split_terminator semantics: a
// trailing newline never produces a trailing empty line.
func SplitLines(raw []byte) []string {
	s := strings.ToValidUTF8(string(raw), "�")
	s = normalizeNewlines(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func pushLines(b *arena.Builder, lines []string, cfg Config) (int, error) {
	src := &lineSource{lines: lines, b: b}
	result, err := sampler.Sample(cfg.ArrayStrategy, src, cfg.ArrayMaxItems)
	if err != nil {
		return 0, err
	}
	return b.PushArray(result.Children, result.TotalLen, result.Indices), nil
}

type lineSource struct {
	lines []string
	pos   int
	b     *arena.Builder
}

func (s *lineSource) Next() (int, bool, error) {
	if s.pos >= len(s.lines) {
		return 0, false, nil
	}
	id := s.b.PushString(s.lines[s.pos])
	s.pos++
	return id, true, nil
}

func (s *lineSource) Skip() (bool, error) {
	if s.pos >= len(s.lines) {
		return false, nil
	}
	s.pos++
	return true, nil
}
