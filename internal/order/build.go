package order

import (
	"container/heap"
	"sort"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/graphemes"
)

// pendingExpansion is a min-heap entry: a PID that has been created and
// assigned its RankedNode slot, but not yet expanded into children.
// Expansion order (smallest score first) determines which nodes get a
// chance to create their own children before SafetyCap is reached, so
// the most important subtrees survive pathological inputs.
type pendingExpansion struct {
	score      uint64
	pid        PID
	depth      int
	arenaIndex int // -1 for a synthetic grapheme node, which has no children
}

type expansionQueue []pendingExpansion

func (q expansionQueue) Len() int { return len(q) }
func (q expansionQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score < q[j].score
	}
	return q[i].pid < q[j].pid
}
func (q expansionQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *expansionQueue) Push(x any)        { *q = append(*q, x.(pendingExpansion)) }
func (q *expansionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// builder accumulates the Order's parallel slices while walking the
// arena. PIDs are assigned at node-creation time (not pop time) so a
// parent's PID is always smaller than any of its children's, letting
// children slices be appended in-place without re-indexing.
type builder struct {
	a   *arena.Arena
	cfg Config

	nodes    []RankedNode
	metrics  []NodeMetrics
	parent   []PID
	children [][]PID
	depth    []int
	origIdx  []int
	arenaOf  []int // arena index backing this pid, -1 for grapheme pids
	scores   []uint64

	q expansionQueue
}

func (b *builder) create(parentPID PID, depth int, arenaIndex int, key string, hasKey bool, originalIndex int, score uint64) PID {
	pid := PID(len(b.nodes))
	b.nodes = append(b.nodes, RankedNode{Key: key, HasKey: hasKey, OriginalIndex: originalIndex})
	b.metrics = append(b.metrics, NodeMetrics{})
	b.parent = append(b.parent, parentPID)
	b.children = append(b.children, nil)
	b.depth = append(b.depth, depth)
	b.origIdx = append(b.origIdx, originalIndex)
	b.arenaOf = append(b.arenaOf, arenaIndex)
	b.scores = append(b.scores, score)
	if parentPID != NoParent {
		b.children[parentPID] = append(b.children[parentPID], pid)
	}
	heap.Push(&b.q, pendingExpansion{score: score, pid: pid, depth: depth, arenaIndex: arenaIndex})
	return pid
}

// Build runs the priority-order walk over a fully-ingested arena.
func Build(a *arena.Arena, cfg Config) *Order {
	b := &builder{a: a, cfg: cfg}
	heap.Init(&b.q)

	b.create(NoParent, 0, a.Root, "", false, NoOriginalIndex, RootBaseScore)

	for b.q.Len() > 0 && len(b.nodes) < SafetyCap {
		pe := heap.Pop(&b.q).(pendingExpansion)
		b.expand(pe)
	}

	if cfg.GrepWeak != "" {
		applyGrepWeak(b, cfg.GrepWeak)
	}

	byPriority := make([]PID, len(b.nodes))
	for i := range byPriority {
		byPriority[i] = PID(i)
	}
	sort.Slice(byPriority, func(i, j int) bool {
		si, sj := b.scores[byPriority[i]], b.scores[byPriority[j]]
		if si != sj {
			return si < sj
		}
		return byPriority[i] < byPriority[j]
	})

	return &Order{
		Nodes:              b.nodes,
		Metrics:            b.metrics,
		Parent:             b.parent,
		Children:           b.children,
		Depth:              b.depth,
		IndexInParentArray: b.origIdx,
		ByPriority:         byPriority,
		RootIsFileset:      a.IsFileset,
	}
}

// expand fills in a popped node's Kind/leaf data from the arena (or
// marks it as a Grapheme leaf) and, for containers and strings, creates
// its children at their rule-defined scores.
func (b *builder) expand(pe pendingExpansion) {
	if pe.arenaIndex < 0 {
		b.nodes[pe.pid].Kind = Grapheme
		return
	}
	n := &b.a.Nodes[pe.arenaIndex]
	b.nodes[pe.pid].Kind = fromArenaKind(n.Kind)

	switch n.Kind {
	case arena.Null, arena.Bool, arena.Number:
		b.nodes[pe.pid].AtomicToken = n.AtomicToken
	case arena.String:
		b.nodes[pe.pid].StringValue = n.StringValue
		b.expandString(pe, n)
	case arena.Array:
		b.expandArray(pe, n)
	case arena.Object:
		b.expandObject(pe, n)
	}
}

func (b *builder) expandArray(pe pendingExpansion, n *arena.TreeNode) {
	b.metrics[pe.pid].ArrayLen = n.ArrayLen
	kept := n.ChildrenLen
	children := b.a.ArrayChildren(n)
	for i, childArenaIdx := range children {
		origIdx := b.a.OriginalIndex(n, i)
		bias := arrayBias(i, kept, b.cfg)
		score := b.scores[pe.pid] + ArrayChildBaseIncrement + bias*ArrayIndexCubicWeight
		b.create(pe.pid, pe.depth+1, childArenaIdx, "", false, origIdx, score)
	}
}

func arrayBias(i, kept int, cfg Config) uint64 {
	var v int
	if cfg.PreferTailArrays {
		v = kept - 1 - i
	} else {
		switch cfg.ArrayBias {
		case HeadMidTailBias:
			mid := (kept - 1) / 2
			v = minInt(i, kept-1-i)
			v = minInt(v, absInt(i-mid))
		default:
			v = i
		}
	}
	if v < 0 {
		v = 0
	}
	return uint64(v) * uint64(v) * uint64(v)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

type objKV struct {
	key      string
	arenaIdx int
}

func (b *builder) expandObject(pe pendingExpansion, n *arena.TreeNode) {
	b.metrics[pe.pid].ObjectLen = n.ObjectLen
	keys := b.a.ObjectKeys(n)
	kids := b.a.ObjectChildren(n)
	pairs := make([]objKV, len(keys))
	for i := range keys {
		pairs[i] = objKV{key: keys[i], arenaIdx: kids[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	baseScore := b.scores[pe.pid] + ObjectChildBaseIncrement
	for _, kv := range pairs {
		b.create(pe.pid, pe.depth+1, kv.arenaIdx, kv.key, true, NoOriginalIndex, baseScore)
	}
}

func (b *builder) expandString(pe pendingExpansion, n *arena.TreeNode) {
	clusters := graphemes.Split(n.StringValue)
	total := len(clusters)
	capN := b.cfg.MaxStringGraphemes
	kept := total
	if kept > capN {
		kept = capN
	}
	b.metrics[pe.pid].StringLen = kept
	b.metrics[pe.pid].StringTruncated = total > capN

	base := b.scores[pe.pid] + StringChildBaseIncrement
	for i := 0; i < kept; i++ {
		extra := 0
		if i > StringIndexInflection {
			d := i - StringIndexInflection
			extra = d * d
		}
		score := base + uint64(i) + uint64(extra)
		b.create(pe.pid, pe.depth+1, -1, "", false, NoOriginalIndex, score)
	}
}
