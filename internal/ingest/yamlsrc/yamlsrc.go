// Package yamlsrc ingests YAML into the arena via gopkg.in/yaml.v3's
// Node tree. Unlike jsonsrc, yaml.v3 has no token-streaming API, so a
// document is decoded into a Node tree first and array sampling runs
// over that already-materialized slice of child nodes instead of over
// a live decoder; the sampler.Source contract still applies, it just
// never needs Skip to do real I/O.
package yamlsrc

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/sampler"
	"gopkg.in/yaml.v3"
)

// ErrUnencodableKey marks a mapping key that canonicalKeyText could not
// turn into a canonical string, so callers can distinguish it from a
// plain parse failure (headson.go maps it to EncodingError rather than
// ParseError).
var ErrUnencodableKey = errors.New("yamlsrc: mapping key cannot be canonicalized")

type Config struct {
	ArrayMaxItems int
	ArrayStrategy sampler.Strategy
}

// Ingest reads every YAML document in r. A single document becomes the
// arena root directly; multiple documents ("---"-separated) are wrapped
// in a synthetic array, one element per document.
func Ingest(r io.Reader, cfg Config) (*arena.Arena, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("yamlsrc: %w", err)
		}
		docs = append(docs, content(&n))
	}

	b := arena.NewBuilder()
	if len(docs) == 0 {
		root := b.PushAtomic(arena.Null, "null")
		b.SetRoot(root)
		return b.Finish(), nil
	}
	if len(docs) == 1 {
		rootID, err := convertNode(docs[0], cfg, b)
		if err != nil {
			return nil, fmt.Errorf("yamlsrc: %w", err)
		}
		b.SetRoot(rootID)
		return b.Finish(), nil
	}

	src := &nodeSliceSource{nodes: docs, cfg: cfg, b: b}
	result, err := sampler.Sample(cfg.ArrayStrategy, src, cfg.ArrayMaxItems)
	if err != nil {
		return nil, fmt.Errorf("yamlsrc: %w", err)
	}
	if src.err != nil {
		return nil, fmt.Errorf("yamlsrc: %w", src.err)
	}
	rootID := b.PushArray(result.Children, result.TotalLen, result.Indices)
	b.SetRoot(rootID)
	return b.Finish(), nil
}

// content unwraps a decoded document node down to its single real
// content node (yaml.v3 always decodes into a DocumentNode wrapper).
func content(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return n.Content[0]
	}
	return n
}

func convertNode(n *yaml.Node, cfg Config, b *arena.Builder) (int, error) {
	if n.Kind == yaml.AliasNode {
		return b.PushString("*" + n.Value), nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return convertScalar(n, b), nil
	case yaml.SequenceNode:
		src := &nodeSliceSource{nodes: n.Content, cfg: cfg, b: b}
		result, err := sampler.Sample(cfg.ArrayStrategy, src, cfg.ArrayMaxItems)
		if err != nil {
			return 0, err
		}
		if src.err != nil {
			return 0, src.err
		}
		return b.PushArray(result.Children, result.TotalLen, result.Indices), nil
	case yaml.MappingNode:
		return convertMapping(n, cfg, b)
	default:
		return 0, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

func convertScalar(n *yaml.Node, b *arena.Builder) int {
	tag := n.ShortTag()
	switch tag {
	case "!!null":
		return b.PushAtomic(arena.Null, "null")
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err == nil {
			if v {
				return b.PushAtomic(arena.Bool, "true")
			}
			return b.PushAtomic(arena.Bool, "false")
		}
	case "!!int", "!!float":
		return b.PushAtomic(arena.Number, n.Value)
	}
	return b.PushString(n.Value)
}

func convertMapping(n *yaml.Node, cfg Config, b *arena.Builder) (int, error) {
	var keys []string
	var children []int
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		valNode := n.Content[i+1]
		keyText, err := canonicalKeyText(keyNode)
		if err != nil {
			return 0, err
		}
		childID, err := convertNode(valNode, cfg, b)
		if err != nil {
			return 0, err
		}
		keys = append(keys, keyText)
		children = append(children, childID)
	}
	return b.PushObject(keys, children, len(keys)), nil
}

// canonicalKeyText stringifies a mapping key. Scalars and aliases use
// their own textual form; sequence/mapping keys are canonicalized
// recursively into a deterministic flow-style string (mapping entries
// sorted by key) so the same complex key always renders identically.
// Any node kind beyond these is reported via ErrUnencodableKey.
func canonicalKeyText(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.AliasNode:
		return "*" + n.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, len(n.Content))
		for i, c := range n.Content {
			s, err := canonicalKeyText(c)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case yaml.MappingNode:
		type kv struct{ k, v string }
		pairs := make([]kv, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := canonicalKeyText(n.Content[i])
			if err != nil {
				return "", err
			}
			v, err := canonicalKeyText(n.Content[i+1])
			if err != nil {
				return "", err
			}
			pairs = append(pairs, kv{k, v})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = p.k + ": " + p.v
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	default:
		return "", fmt.Errorf("%w: unsupported key node kind %d", ErrUnencodableKey, n.Kind)
	}
}

// nodeSliceSource adapts an already-decoded []*yaml.Node to
// sampler.Source: materializing a kept element just converts the node
// already in hand, so there is no real I/O to skip.
type nodeSliceSource struct {
	nodes []*yaml.Node
	pos   int
	cfg   Config
	b     *arena.Builder
	err   error
}

func (s *nodeSliceSource) Next() (int, bool, error) {
	if s.err != nil || s.pos >= len(s.nodes) {
		return 0, false, s.err
	}
	n := s.nodes[s.pos]
	s.pos++
	id, err := convertNode(n, s.cfg, s.b)
	if err != nil {
		s.err = err
		return 0, false, err
	}
	return id, true, nil
}

func (s *nodeSliceSource) Skip() (bool, error) {
	if s.err != nil || s.pos >= len(s.nodes) {
		return false, s.err
	}
	s.pos++
	return true, nil
}
