// Package order builds the global priority order over a parsed arena: a
// deterministic, monotonically-scored walk that ranks every node (plus
// synthetic per-grapheme string children) so the budget search can ask
// for "the top k most important nodes" and get a stable answer.
package order

import "github.com/kantord/headson/internal/arena"

// PID is a dense priority-order identifier, disjoint from arena
// indices: every arena node gets one, and every string also contributes
// one synthetic PID per counted grapheme.
type PID int

// NodeKind mirrors arena.Kind but adds Grapheme for the synthetic
// per-character scaffolding nodes created only to give string content a
// foothold in the priority order; Grapheme nodes are never rendered
// directly.
type NodeKind uint8

const (
	Null NodeKind = iota
	Bool
	Number
	String
	Array
	Object
	Grapheme
)

func fromArenaKind(k arena.Kind) NodeKind {
	switch k {
	case arena.Null:
		return Null
	case arena.Bool:
		return Bool
	case arena.Number:
		return Number
	case arena.String:
		return String
	case arena.Array:
		return Array
	case arena.Object:
		return Object
	default:
		return Null
	}
}

// ArrayBias selects the cost curve applied to array child positions.
type ArrayBias uint8

const (
	// HeadBias favors early elements: bias(i) = i^3.
	HeadBias ArrayBias = iota
	// HeadMidTailBias favors head, middle, and tail: bias(i) =
	// min(i, kept-1-i, |i-mid|)^3.
	HeadMidTailBias
)

// Config parameterizes the walk.
type Config struct {
	MaxStringGraphemes int
	ArrayMaxItems      int
	ArrayBias          ArrayBias
	PreferTailArrays   bool
	GrepWeak           string // empty disables the boost
}

// Root-level scoring constants, grounded on the distilled spec's
// numeric contract (§4.3) and its Rust predecessor's named constants.
const (
	RootBaseScore            uint64 = 1
	ArrayChildBaseIncrement  uint64 = 1
	ArrayIndexCubicWeight    uint64 = 1_000_000_000_000
	ObjectChildBaseIncrement uint64 = 1
	StringChildBaseIncrement uint64 = 1
	StringIndexInflection    int    = 20
	SafetyCap                int    = 2_000_000
)

// NoParent is the sentinel parent PID for the root.
const NoParent PID = -1

// NoOriginalIndex is the sentinel for "this node is not an array
// element", used in RankedNode.OriginalIndex.
const NoOriginalIndex = -1

// ObjectType records how a container renders at the root: a plain
// object, or a fileset synthetic root (path-keyed sections).
type ObjectType uint8

const (
	PlainObject ObjectType = iota
	Fileset
)

// RankedNode is the per-PID metadata the renderer needs to emit a node
// without touching the arena again.
type RankedNode struct {
	Kind NodeKind

	Key    string
	HasKey bool

	// OriginalIndex is this node's pre-sampling position among its
	// array parent's elements, or NoOriginalIndex otherwise.
	OriginalIndex int

	AtomicToken string // Null/Bool/Number
	StringValue string // String
}

// NodeMetrics records the original sizes a container/string had before
// any cap or budget trimming, so the renderer can report omission
// counts.
type NodeMetrics struct {
	ArrayLen        int
	ObjectLen       int
	StringLen       int // grapheme count considered, up to cap
	StringTruncated bool
}

// Order is the immutable output of Build. Every slice is indexed by PID.
type Order struct {
	Nodes              []RankedNode
	Metrics            []NodeMetrics
	Parent             []PID
	Children           [][]PID
	Depth              []int
	IndexInParentArray []int // NoOriginalIndex when not an array child
	ByPriority         []PID
	RootIsFileset      bool
}

// Root is always PID 0.
const Root PID = 0

func (o *Order) TotalNodes() int { return len(o.Nodes) }
