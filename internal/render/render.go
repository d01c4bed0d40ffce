// Package render turns a (PriorityOrder, k, Config) triple into a
// preview string. It never looks at the arena again: every atom of text
// it can possibly need (key names, string values, atomic tokens,
// container sizes) was captured once by the order builder.
package render

import (
	"encoding/json"

	"github.com/kantord/headson/internal/graphemes"
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render/templates"
)

type Template uint8

const (
	Json Template = iota
	Pseudo
	Js
	Yaml
	Text
)

// Verbosity selects omission-line detail. Only the Text template
// dispatches on it directly (per source grounding); other templates
// have a single fixed decoration form per §4.4's template contract
// table, so Verbosity is a no-op for them.
type Verbosity uint8

const (
	Strict Verbosity = iota
	Default
	Detailed
)

type Config struct {
	Template         Template
	IndentUnit       string
	Space            string
	Newline          string
	Verbosity        Verbosity
	PreferTailArrays bool
	ColorEnabled     bool
}

// Compact returns the whitespace-stripped variant of cfg, matching the
// CLI's --compact flag.
func (cfg Config) Compact() Config {
	cfg.IndentUnit = ""
	cfg.Space = ""
	cfg.Newline = ""
	return cfg
}

func (cfg Config) newOut() *templates.Out {
	out := templates.NewOut(cfg.IndentUnit, cfg.Space, cfg.Newline)
	out.ColorEnabled = cfg.ColorEnabled
	return out
}

// Render marks the top-k priority-ordered nodes (plus ancestors) and
// serializes the result. It is called once per probe during budget
// search; the search returns the best probe's output as the final one.
func Render(o *order.Order, m *Marks, k int, cfg Config) string {
	m.MarkTopKAndAncestors(o, k)

	if o.RootIsFileset {
		return renderFilesetRoot(o, m, cfg)
	}

	switch cfg.Template {
	case Yaml:
		out := cfg.newOut()
		renderYamlNode(o, m, order.Root, 0, cfg, out)
		return out.String()
	case Text:
		out := cfg.newOut()
		renderTextRoot(o, m, order.Root, cfg, out)
		return out.String()
	default:
		style := bracketedStyle(cfg.Template)
		out := cfg.newOut()
		serializeBracketed(o, m, order.Root, 0, cfg, style, out)
		return out.String()
	}
}

func bracketedStyle(t Template) templates.Style {
	switch t {
	case Js:
		return templates.JSStyle{}
	case Json:
		return templates.JSONStyle{}
	default:
		return templates.PseudoStyle{}
	}
}

func serializeBracketed(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, style templates.Style, out *templates.Out) {
	n := &o.Nodes[pid]
	switch n.Kind {
	case order.Null, order.Bool:
		out.PushStr(n.AtomicToken)
	case order.Number:
		out.PushStr(numberToken(n))
	case order.String:
		writeStringLiteral(out, o, m, pid)
	case order.Array:
		serializeBracketedArray(o, m, pid, depth, cfg, style, out)
	case order.Object:
		serializeBracketedObject(o, m, pid, depth, cfg, style, out)
	}
}

func numberToken(n *order.RankedNode) string {
	if n.AtomicToken != "" {
		return n.AtomicToken
	}
	return "0"
}

func writeStringLiteral(out *templates.Out, o *order.Order, m *Marks, pid order.PID) {
	kept := len(m.IncludedChildren(o, pid))
	metrics := o.Metrics[pid]
	value := o.Nodes[pid].StringValue
	if kept < metrics.StringLen || metrics.StringTruncated {
		prefix, _ := graphemes.Prefix(value, kept)
		b, _ := json.Marshal(prefix)
		s := string(b)
		out.PushStr(s[:len(s)-1])
		out.PushOmission()
		out.PushByte('"')
		return
	}
	b, _ := json.Marshal(value)
	out.PushStr(string(b))
}

func serializeBracketedArray(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, style templates.Style, out *templates.Out) {
	layout := buildArrayLayout(o, m, pid, cfg.PreferTailArrays)
	if len(layout.kept) == 0 && layout.outerOmitted == 0 {
		out.PushStr(style.EmptyArray())
		return
	}
	if len(layout.kept) == 0 {
		writeFullyOmittedContainer(out, '[', ']', style.ArrayOmission(layout.outerOmitted))
		return
	}

	out.PushByte('[')
	out.PushNewline()
	childDepth := depth + 1

	if layout.outerOmitted > 0 && layout.outerAtHead {
		writeDecorationLine(out, childDepth, style.ArrayOmission(layout.outerOmitted))
	}
	gi := 0
	for i, child := range layout.kept {
		out.PushIndent(childDepth)
		serializeBracketed(o, m, child, childDepth, cfg, style, out)
		if i != len(layout.kept)-1 || (layout.outerOmitted > 0 && !layout.outerAtHead) || gi < len(layout.internalGaps) {
			out.PushByte(',')
		}
		out.PushNewline()
		for gi < len(layout.internalGaps) && layout.internalGaps[gi].afterPos == i+1 {
			writeDecorationLine(out, childDepth, style.InternalGap(layout.internalGaps[gi].size))
			gi++
		}
	}
	if layout.outerOmitted > 0 && !layout.outerAtHead {
		writeDecorationLine(out, childDepth, style.ArrayOmission(layout.outerOmitted))
	}
	out.PushIndent(depth)
	out.PushByte(']')
}

func serializeBracketedObject(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, style templates.Style, out *templates.Out) {
	kids := m.IncludedChildren(o, pid)
	total := o.Metrics[pid].ObjectLen
	omitted := total - len(kids)

	if len(kids) == 0 && omitted == 0 {
		out.PushStr(style.EmptyObject())
		return
	}
	fileset := o.RootIsFileset && pid == order.Root

	if len(kids) == 0 {
		writeFullyOmittedContainer(out, '{', '}', style.ObjectOmission(omitted, fileset))
		return
	}

	out.PushByte('{')
	out.PushNewline()
	childDepth := depth + 1
	for i, child := range kids {
		out.PushIndent(childDepth)
		key := o.Nodes[child].Key
		kb, _ := json.Marshal(key)
		out.PushStr(string(kb))
		out.PushByte(':')
		out.PushSpace()
		serializeBracketed(o, m, child, childDepth, cfg, style, out)
		if i != len(kids)-1 || omitted > 0 {
			out.PushByte(',')
		}
		out.PushNewline()
	}
	if omitted > 0 {
		writeDecorationLine(out, childDepth, style.ObjectOmission(omitted, fileset))
	}
	out.PushIndent(depth)
	out.PushByte('}')
}

func writeDecorationLine(out *templates.Out, depth int, text string) {
	if text == "" {
		return
	}
	out.PushIndent(depth)
	out.PushComment(text)
	out.PushNewline()
}

// writeFullyOmittedContainer renders a container with zero kept
// children but a nonzero original size: a single-line bracket pair
// wrapping the omission decoration, or the bare bracket pair when the
// template has no decoration (strict JSON).
func writeFullyOmittedContainer(out *templates.Out, open, close byte, decoration string) {
	out.PushByte(open)
	if decoration != "" {
		out.PushSpace()
		out.PushComment(decoration)
		out.PushSpace()
	}
	out.PushByte(close)
}
