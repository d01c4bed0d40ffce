package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render/templates"
)

// renderYamlNode writes pid's YAML representation into out at the given
// depth. Compact mode (no newline separator configured) falls back to
// the strict bracketed renderer, matching the teacher's own
// is_compact_mode short-circuit: YAML only means something as a
// multi-line layout.
func renderYamlNode(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, out *templates.Out) {
	if cfg.Newline == "" {
		serializeBracketed(o, m, pid, depth, cfg, templates.JSONStyle{}, out)
		return
	}

	n := &o.Nodes[pid]
	switch n.Kind {
	case order.Null, order.Bool:
		out.PushStr(n.AtomicToken)
	case order.Number:
		out.PushStr(numberToken(n))
	case order.String:
		writeStringLiteral(out, o, m, pid)
	case order.Array:
		renderYamlArray(o, m, pid, depth, cfg, out)
	case order.Object:
		renderYamlObject(o, m, pid, depth, cfg, out)
	}
}

func renderYamlValue(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config) string {
	out := cfg.newOut()
	renderYamlNode(o, m, pid, depth, cfg, out)
	return out.String()
}

func hasNewline(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

// splitInclusiveNewline splits s into chunks that each retain their
// trailing newline, mirroring Rust's str::split_inclusive.
func splitInclusiveNewline(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			parts = append(parts, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

func pushYamlArrayItem(out *templates.Out, depth int, item string) {
	if !hasNewline(item) {
		out.PushIndent(depth)
		out.PushStr("- ")
		out.PushStr(strings.TrimSpace(item))
		out.PushNewline()
		return
	}
	lines := splitInclusiveNewline(item)
	out.PushIndent(depth)
	out.PushStr("- ")
	if len(lines) > 0 {
		out.PushStr(strings.TrimLeft(lines[0], "\n\r"))
		for _, rest := range lines[1:] {
			out.PushStr(rest)
		}
	}
	if !strings.HasSuffix(item, "\n") && !strings.HasSuffix(item, "\r") {
		out.PushNewline()
	}
}

func renderYamlArray(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, out *templates.Out) {
	layout := buildArrayLayout(o, m, pid, cfg.PreferTailArrays)
	if len(layout.kept) == 0 {
		out.PushStr("[]")
		return
	}

	childDepth := depth + 1
	if layout.outerOmitted > 0 && layout.outerAtHead {
		out.PushIndent(childDepth)
		out.PushComment(fmt.Sprintf("# %d more items", layout.outerOmitted))
		out.PushNewline()
	}
	gi := 0
	for i, child := range layout.kept {
		item := renderYamlValue(o, m, child, childDepth, cfg)
		pushYamlArrayItem(out, childDepth, item)
		for gi < len(layout.internalGaps) && layout.internalGaps[gi].afterPos == i+1 {
			out.PushIndent(childDepth)
			out.PushComment(fmt.Sprintf("# %d more items", layout.internalGaps[gi].size))
			out.PushNewline()
			gi++
		}
	}
	if layout.outerOmitted > 0 && !layout.outerAtHead {
		out.PushIndent(childDepth)
		out.PushComment(fmt.Sprintf("# %d more items", layout.outerOmitted))
		out.PushNewline()
	}
}

// needsQuotesYAMLKey reports whether a raw key needs an explicit quoted
// form to round-trip as a YAML scalar: empty, leading digit/dash/space,
// a YAML boolean/null spelling, trailing whitespace, or any byte outside
// [A-Za-z0-9_-].
func needsQuotesYAMLKey(s string) bool {
	if s == "" {
		return true
	}
	first := s[0]
	if (first >= '0' && first <= '9') || first == '-' || first == ' ' || first == '\t' {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "null", "~", "yes", "no", "on", "off", "y", "n":
		return true
	}
	last := rune(s[len(s)-1])
	if last == ' ' || last == '\t' {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return true
		}
	}
	return false
}

func yamlKeyText(raw string) string {
	if needsQuotesYAMLKey(raw) {
		b, _ := json.Marshal(raw)
		return string(b)
	}
	return raw
}

func pushYamlObjectKV(out *templates.Out, depth int, keyText, v string) {
	out.PushIndent(depth)
	if !hasNewline(v) {
		out.PushStr(keyText)
		out.PushStr(": ")
		out.PushStr(v)
		out.PushNewline()
		return
	}
	out.PushStr(keyText)
	out.PushByte(':')
	out.PushNewline()
	out.PushStr(v)
	if !strings.HasSuffix(v, "\n") && !strings.HasSuffix(v, "\r") {
		out.PushNewline()
	}
}

func renderYamlObject(o *order.Order, m *Marks, pid order.PID, depth int, cfg Config, out *templates.Out) {
	kids := m.IncludedChildren(o, pid)
	total := o.Metrics[pid].ObjectLen
	omitted := total - len(kids)

	if len(kids) == 0 {
		out.PushStr("{}")
		return
	}

	for _, child := range kids {
		keyText := yamlKeyText(o.Nodes[child].Key)
		value := renderYamlValue(o, m, child, depth+1, cfg)
		pushYamlObjectKV(out, depth, keyText, value)
	}
	if omitted > 0 {
		label := "properties"
		if o.RootIsFileset && pid == order.Root {
			label = "files"
		}
		out.PushIndent(depth)
		out.PushComment(fmt.Sprintf("# %d more %s", omitted, label))
		out.PushNewline()
	}
}
