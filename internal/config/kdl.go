package config

import (
	"os"

	"github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// loadKDLFile reads and parses a KDL config file, grounded on the
// teacher's internal/config/kdl_config.go node-walking style: top-level
// nodes are matched by name, each contributing one field.
func loadKDLFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := kdl.Parse(string(data))
	if err != nil {
		return nil, err
	}
	cfg := &FileConfig{}
	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "budget":
			if v, ok := firstIntArg(n); ok {
				cfg.Budget = &v
			}
		case "template":
			if v, ok := firstStringArg(n); ok {
				cfg.Template = &v
			}
		case "verbosity":
			if v, ok := firstStringArg(n); ok {
				cfg.Verbosity = &v
			}
		case "color":
			if v, ok := firstStringArg(n); ok {
				cfg.Color = &v
			}
		case "prefer-tail-arrays":
			if v, ok := firstBoolArg(n); ok {
				cfg.PreferTailArrays = &v
			}
		case "array-bias":
			if v, ok := firstStringArg(n); ok {
				cfg.ArrayBias = &v
			}
		case "array-sampler":
			if v, ok := firstStringArg(n); ok {
				cfg.ArraySampler = &v
			}
		case "max-string-graphemes":
			if v, ok := firstIntArg(n); ok {
				cfg.MaxStringGraphemes = &v
			}
		case "array-max-items":
			if v, ok := firstIntArg(n); ok {
				cfg.ArrayMaxItems = &v
			}
		case "grep-weak":
			if v, ok := firstStringArg(n); ok {
				cfg.GrepWeak = &v
			}
		}
	}
	return cfg, nil
}

func nodeName(n *document.Node) string {
	return n.Name.ValueString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
