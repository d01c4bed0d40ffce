// Package templates supplies the Style decorations and the Out buffer
// that the mark-based renderer in package render uses for its five
// output layouts (Json, Pseudo, Js, Yaml, Text). Json/Pseudo/Js share
// one generic bracketed renderer parameterized by a Style (the only
// axis on which they differ: omission decoration text and
// empty-container spelling); Yaml and Text have different enough
// structure that package render gives them dedicated renderers.
package templates

import (
	"strings"

	"github.com/kantord/headson/internal/color"
)

// Out is an append-only string builder with a few structure-aware
// helpers (indent, newline, colored decoration) so template code reads
// like a sequence of layout decisions rather than manual string
// concatenation.
type Out struct {
	b            strings.Builder
	IndentUnit   string
	Space        string
	Newline      string
	ColorEnabled bool
}

func NewOut(indentUnit, space, newline string) *Out {
	return &Out{IndentUnit: indentUnit, Space: space, Newline: newline}
}

func (o *Out) PushStr(s string) { o.b.WriteString(s) }
func (o *Out) PushByte(c byte)  { o.b.WriteByte(c) }
func (o *Out) PushNewline()     { o.b.WriteString(o.Newline) }
func (o *Out) PushSpace()       { o.b.WriteString(o.Space) }

// PushComment writes an omission/gap decoration body through the color
// layer; color bytes never affect the budget since they are only added
// here, after sizing is already decided.
func (o *Out) PushComment(body string) {
	o.b.WriteString(color.Comment(body, o.ColorEnabled))
}

// PushOmission writes the universal "…" truncation marker, colored the
// same way as comments.
func (o *Out) PushOmission() {
	o.b.WriteString(color.OmissionMarker(o.ColorEnabled))
}

func (o *Out) PushIndent(depth int) {
	for i := 0; i < depth; i++ {
		o.b.WriteString(o.IndentUnit)
	}
}

func (o *Out) String() string { return o.b.String() }
func (o *Out) Len() int       { return o.b.Len() }
