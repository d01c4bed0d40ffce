// Package arena is the format-neutral, index-based tree store every
// ingest adapter builds into and every downstream stage (priority order,
// renderer) reads from. Nodes never move once pushed; children, object
// keys, and kept-array-indices all live in flat backing slices so a deep
// or wide tree costs one allocation per slice, not one per node.
package arena

// Kind is the node's value category. Exactly one of the per-kind fields
// on TreeNode is meaningful for a given Kind.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// NoIndex marks an absent original-array-index mapping: the kept
// children are a contiguous identity-mapped prefix and ArrIndicesLen is 0.
const NoIndex = -1

// TreeNode is a value type; exactly one of its kind-specific fields is
// populated, selected by Kind.
type TreeNode struct {
	Kind Kind

	// Atomic leaves (Null, Bool, Number): the exact textual form to
	// emit verbatim, e.g. "true", "3.14", "null". Every ingest adapter
	// fills it for all three kinds; for Number it keeps the original
	// textual form so it survives round-tripping.
	AtomicToken string

	// String: the decoded value.
	StringValue string

	// Array.
	ChildrenStart   int
	ChildrenLen     int
	ArrayLen        int // original length, pre-sampling
	ArrIndicesStart int
	ArrIndicesLen   int // 0 means identity mapping over [0, ChildrenLen)

	// Object. Children and ObjKeys are aligned pairs sharing ChildrenStart/Len.
	ObjKeysStart int
	ObjKeysLen   int
	ObjectLen    int // original property count
}

// Arena is an index-based tree. Invariants: indices never change once
// assigned; Children/ObjKeys/ArrIndices slices referenced by a node are
// contiguous; there are no cycles; there is exactly one root.
type Arena struct {
	Nodes      []TreeNode
	Children   []int // flat backing for object/array children
	ObjKeys    []string
	ArrIndices []int
	Root       int
	IsFileset  bool
}

// New returns an empty arena ready for a Builder to populate.
func New() *Arena {
	return &Arena{}
}

// Builder owns an Arena exclusively while an ingest adapter populates it.
// It is never shared across a goroutine boundary; Finish hands back
// ownership of the built Arena.
type Builder struct {
	a *Arena
}

// NewBuilder starts a fresh arena build.
func NewBuilder() *Builder {
	return &Builder{a: New()}
}

// Push allocates a new node and returns its arena index.
func (b *Builder) Push(n TreeNode) int {
	id := len(b.a.Nodes)
	b.a.Nodes = append(b.a.Nodes, n)
	return id
}

// PushAtomic pushes a Null/Bool/Number leaf and returns its index.
func (b *Builder) PushAtomic(kind Kind, token string) int {
	return b.Push(TreeNode{Kind: kind, AtomicToken: token})
}

// PushString pushes a String leaf and returns its index.
func (b *Builder) PushString(s string) int {
	return b.Push(TreeNode{Kind: String, StringValue: s})
}

// PushArray appends children to the flat Children slice, optionally
// recording a non-identity original-index mapping, and pushes the Array
// node referencing them.
func (b *Builder) PushArray(children []int, arrayLen int, origIndices []int) int {
	start := len(b.a.Children)
	b.a.Children = append(b.a.Children, children...)
	n := TreeNode{
		Kind:          Array,
		ChildrenStart: start,
		ChildrenLen:   len(children),
		ArrayLen:      arrayLen,
	}
	if len(origIndices) > 0 && !isIdentityPrefix(origIndices) {
		n.ArrIndicesStart = len(b.a.ArrIndices)
		n.ArrIndicesLen = len(origIndices)
		b.a.ArrIndices = append(b.a.ArrIndices, origIndices...)
	}
	return b.Push(n)
}

func isIdentityPrefix(indices []int) bool {
	for i, v := range indices {
		if v != i {
			return false
		}
	}
	return true
}

// PushObject appends aligned keys/children pairs and pushes the Object
// node referencing them. Keys are stored in input order; the priority
// order builder is responsible for lexicographic expansion order.
func (b *Builder) PushObject(keys []string, children []int, objectLen int) int {
	n := len(keys)
	if len(children) < n {
		n = len(children)
	}
	childrenStart := len(b.a.Children)
	objKeysStart := len(b.a.ObjKeys)
	b.a.Children = append(b.a.Children, children[:n]...)
	b.a.ObjKeys = append(b.a.ObjKeys, keys[:n]...)
	return b.Push(TreeNode{
		Kind:          Object,
		ChildrenStart: childrenStart,
		ChildrenLen:   n,
		ObjKeysStart:  objKeysStart,
		ObjKeysLen:    n,
		ObjectLen:     objectLen,
	})
}

// SetRoot records which node is the tree root.
func (b *Builder) SetRoot(id int) {
	b.a.Root = id
}

// SetFileset marks the arena as a fileset composition.
func (b *Builder) SetFileset(v bool) {
	b.a.IsFileset = v
}

// Finish returns the built arena. The builder must not be used afterward.
func (b *Builder) Finish() *Arena {
	return b.a
}

// ArrayChildren returns the arena indices of an Array node's kept children.
func (a *Arena) ArrayChildren(n *TreeNode) []int {
	return a.Children[n.ChildrenStart : n.ChildrenStart+n.ChildrenLen]
}

// ObjectChildren returns the arena indices of an Object node's children,
// aligned with ObjectKeys.
func (a *Arena) ObjectChildren(n *TreeNode) []int {
	return a.Children[n.ChildrenStart : n.ChildrenStart+n.ChildrenLen]
}

// ObjectKeys returns an Object node's property names, aligned with
// ObjectChildren.
func (a *Arena) ObjectKeys(n *TreeNode) []string {
	return a.ObjKeys[n.ObjKeysStart : n.ObjKeysStart+n.ObjKeysLen]
}

// OriginalIndex returns the pre-sampling array index of the i-th kept
// child of an Array node, accounting for a non-identity sampler mapping.
func (a *Arena) OriginalIndex(n *TreeNode, i int) int {
	if n.ArrIndicesLen == 0 {
		return i
	}
	return a.ArrIndices[n.ArrIndicesStart+i]
}

// Graft copies the subtree rooted at idx in src into b, recursively,
// and returns its new index in b's arena. Used to compose several
// independently-ingested arenas (one per fileset input) into one
// combined tree without re-parsing.
func Graft(b *Builder, src *Arena, idx int) int {
	n := &src.Nodes[idx]
	switch n.Kind {
	case Array:
		kids := src.ArrayChildren(n)
		newKids := make([]int, len(kids))
		for i, k := range kids {
			newKids[i] = Graft(b, src, k)
		}
		var origIdx []int
		if n.ArrIndicesLen > 0 {
			origIdx = make([]int, n.ArrIndicesLen)
			for i := range origIdx {
				origIdx[i] = src.OriginalIndex(n, i)
			}
		}
		return b.PushArray(newKids, n.ArrayLen, origIdx)
	case Object:
		kids := src.ObjectChildren(n)
		keys := src.ObjectKeys(n)
		newKids := make([]int, len(kids))
		for i, k := range kids {
			newKids[i] = Graft(b, src, k)
		}
		return b.PushObject(append([]string(nil), keys...), newKids, n.ObjectLen)
	case String:
		return b.PushString(n.StringValue)
	default:
		return b.PushAtomic(n.Kind, n.AtomicToken)
	}
}
