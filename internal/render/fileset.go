package render

import (
	"fmt"

	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render/templates"
)

// renderFilesetRoot handles the synthetic multi-input root: one section
// per ingested file, keyed by its path, rendered under whichever output
// template the caller selected. Json/Yaml treat the fileset root as an
// ordinary object (Yaml's omission line says "more files" instead of
// "more properties", see renderYamlObject); Text concatenates each kept
// file's own text rendering, with no header and no omitted-file line;
// Pseudo/Js get head-style section banners matching their
// single-document decoration conventions.
func renderFilesetRoot(o *order.Order, m *Marks, cfg Config) string {
	out := cfg.newOut()
	switch cfg.Template {
	case Js:
		renderFilesetSectionsJS(o, m, cfg, out)
	case Pseudo:
		renderFilesetSectionsPseudo(o, m, cfg, out)
	case Yaml:
		renderYamlObject(o, m, order.Root, 0, cfg, out)
	case Text:
		for _, child := range m.IncludedChildren(o, order.Root) {
			renderTextRoot(o, m, child, cfg, out)
		}
	default:
		serializeBracketedObject(o, m, order.Root, 0, cfg, templates.JSONStyle{}, out)
	}
	return out.String()
}

func renderFilesetSectionsJS(o *order.Order, m *Marks, cfg Config, out *templates.Out) {
	kids := m.IncludedChildren(o, order.Root)
	total := o.Metrics[order.Root].ObjectLen
	for i, child := range kids {
		if i > 0 {
			out.PushNewline()
		}
		out.PushStr("// ")
		out.PushStr(o.Nodes[child].Key)
		out.PushNewline()
		serializeBracketed(o, m, child, 0, cfg, templates.JSStyle{}, out)
		out.PushByte(';')
		out.PushNewline()
	}
	if total > len(kids) {
		out.PushNewline()
		out.PushStr(fmt.Sprintf("/* %d more files */", total-len(kids)))
		out.PushNewline()
	}
}

func renderFilesetSectionsPseudo(o *order.Order, m *Marks, cfg Config, out *templates.Out) {
	kids := m.IncludedChildren(o, order.Root)
	total := o.Metrics[order.Root].ObjectLen
	for i, child := range kids {
		if i > 0 {
			out.PushNewline()
			out.PushNewline()
		}
		out.PushStr("==> ")
		out.PushStr(o.Nodes[child].Key)
		out.PushStr(" <==")
		out.PushNewline()
		serializeBracketed(o, m, child, 0, cfg, templates.PseudoStyle{}, out)
	}
	if total > len(kids) {
		out.PushNewline()
		out.PushNewline()
		out.PushStr(fmt.Sprintf("==> %d more files <==", total-len(kids)))
	}
}
