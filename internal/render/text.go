package render

import (
	"fmt"

	"github.com/kantord/headson/internal/graphemes"
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render/templates"
)

// renderTextRoot writes the Text template's root: a line-per-element
// array (the common case, one array element per ingested text line), a
// pseudo-style object fallback for anything else (fileset sections are
// intercepted earlier, in Render), or a bare scalar line.
func renderTextRoot(o *order.Order, m *Marks, pid order.PID, cfg Config, out *templates.Out) {
	n := &o.Nodes[pid]
	switch n.Kind {
	case order.Array:
		renderTextArray(o, m, pid, cfg, out)
	case order.Object:
		serializeBracketedObject(o, m, pid, 0, cfg, templates.PseudoStyle{}, out)
	default:
		writeTextLine(out, o, m, pid)
	}
}

func renderTextArray(o *order.Order, m *Marks, pid order.PID, cfg Config, out *templates.Out) {
	layout := buildArrayLayout(o, m, pid, cfg.PreferTailArrays)
	if layout.outerOmitted > 0 && layout.outerAtHead {
		pushTextOmissionLine(out, cfg.Verbosity, layout.outerOmitted)
	}
	for _, child := range layout.kept {
		writeTextLine(out, o, m, child)
	}
	if layout.outerOmitted > 0 && !layout.outerAtHead {
		pushTextOmissionLine(out, cfg.Verbosity, layout.outerOmitted)
	}
}

func writeTextLine(out *templates.Out, o *order.Order, m *Marks, pid order.PID) {
	n := &o.Nodes[pid]
	if n.Kind != order.String {
		out.PushStr(n.AtomicToken)
		out.PushNewline()
		return
	}
	kept := len(m.IncludedChildren(o, pid))
	metrics := o.Metrics[pid]
	value := n.StringValue
	if kept < metrics.StringLen || metrics.StringTruncated {
		prefix, _ := graphemes.Prefix(value, kept)
		out.PushStr(prefix)
		out.PushOmission()
	} else {
		out.PushStr(value)
	}
	out.PushNewline()
}

func pushTextOmissionLine(out *templates.Out, v Verbosity, omitted int) {
	switch v {
	case Strict:
		return
	case Detailed:
		out.PushOmission()
		out.PushSpace()
		out.PushComment(fmt.Sprintf("%d more lines ", omitted))
		out.PushOmission()
		out.PushNewline()
	default: // Default
		out.PushOmission()
		out.PushNewline()
	}
}
