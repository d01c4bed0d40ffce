package render

import "github.com/kantord/headson/internal/order"

// Marks implements the generation-counter inclusion scheme: a PID is
// "included" for the current probe iff marks[pid] == gen. Advancing gen
// for the next probe is O(1); no bulk reset of the buffer is needed
// except on the rare uint32 wraparound.
type Marks struct {
	buf []uint32
	gen uint32
}

// NewMarks allocates a mark buffer sized to the order's total node count.
func NewMarks(o *order.Order) *Marks {
	return &Marks{buf: make([]uint32, o.TotalNodes())}
}

// NextProbe advances to a new generation, handling the uint32 wraparound
// by zeroing the buffer and resetting to generation 1.
func (m *Marks) NextProbe() {
	m.gen++
	if m.gen == 0 {
		for i := range m.buf {
			m.buf[i] = 0
		}
		m.gen = 1
	}
}

func (m *Marks) Included(pid order.PID) bool {
	return m.buf[pid] == m.gen
}

func (m *Marks) include(pid order.PID) {
	m.buf[pid] = m.gen
}

// MarkTopKAndAncestors marks the first k PIDs of the priority order plus
// every ancestor needed to keep the marked set a connected subtree
// rooted at order.Root.
func (m *Marks) MarkTopKAndAncestors(o *order.Order, k int) {
	m.NextProbe()
	if k > len(o.ByPriority) {
		k = len(o.ByPriority)
	}
	stack := make([]order.PID, 0, k)
	for i := 0; i < k; i++ {
		pid := o.ByPriority[i]
		if !m.Included(pid) {
			m.include(pid)
			stack = append(stack, pid)
		}
	}
	for len(stack) > 0 {
		pid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		parent := o.Parent[pid]
		if parent == order.NoParent {
			continue
		}
		if !m.Included(parent) {
			m.include(parent)
			stack = append(stack, parent)
		}
	}
}

// IncludedChildren returns the subset of pid's children that are
// included in the current generation, preserving original order.
func (m *Marks) IncludedChildren(o *order.Order, pid order.PID) []order.PID {
	kids := o.Children[pid]
	out := make([]order.PID, 0, len(kids))
	for _, c := range kids {
		if m.Included(c) {
			out = append(out, c)
		}
	}
	return out
}
