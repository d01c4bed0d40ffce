package render

import "github.com/kantord/headson/internal/order"

// gap records a run of original array indices that were never kept,
// sitting strictly between two kept elements (a "hole" left by
// HeadMidTail sampling combined with a tight budget).
type gap struct {
	afterPos int // insert after this many kept elements have been emitted
	size     int
}

// arrayLayout is the shared, template-agnostic plan for rendering an
// array: which children survived the mark, where the internal gaps are,
// and how much was omitted at the edges (and on which edge the single
// aggregate decoration belongs).
type arrayLayout struct {
	kept         []order.PID
	internalGaps []gap
	outerOmitted int
	outerAtHead  bool
}

func buildArrayLayout(o *order.Order, m *Marks, pid order.PID, preferTailArrays bool) arrayLayout {
	kept := m.IncludedChildren(o, pid)
	total := o.Metrics[pid].ArrayLen

	layout := arrayLayout{kept: kept, outerAtHead: preferTailArrays}
	if len(kept) == 0 {
		layout.outerOmitted = total
		return layout
	}

	origIdx := make([]int, len(kept))
	for i, c := range kept {
		origIdx[i] = o.IndexInParentArray[c]
	}

	for i := 1; i < len(origIdx); i++ {
		d := origIdx[i] - origIdx[i-1] - 1
		if d > 0 {
			layout.internalGaps = append(layout.internalGaps, gap{afterPos: i, size: d})
		}
	}

	lead := origIdx[0]
	tail := total - 1 - origIdx[len(origIdx)-1]
	layout.outerOmitted = lead + tail
	return layout
}
