package order

import "strings"

// applyGrepWeak rewrites scores so any node whose key or string value
// contains q, or whose descendant does, sorts ahead of its non-matching
// siblings regardless of structural or array-bias score.
//
// Resolution of an underspecified rule (see DESIGN.md "Open Question
// resolutions recorded here"): a boosted node's score becomes exactly its depth. Depth is
// always strictly less than the minimum possible *unboosted* score at
// the same or any greater depth (root=1, and every further step adds at
// least ArrayChildBaseIncrement/ObjectChildBaseIncrement/
// StringChildBaseIncrement = 1, so an unboosted node at depth d has
// score ≥ d+1), and is vastly less than any array-biased score (whose
// 10^12 term dwarfs any plausible depth). This guarantees matches (and
// their ancestors, who keep a shallower and therefore smaller boosted
// score) dominate non-matches while staying ordered by depth, exactly
// as required.
func applyGrepWeak(b *builder, q string) {
	n := len(b.nodes)
	selfMatch := make([]bool, n)
	for pid := 0; pid < n; pid++ {
		rn := &b.nodes[pid]
		if rn.HasKey && strings.Contains(rn.Key, q) {
			selfMatch[pid] = true
			continue
		}
		if rn.Kind == String && strings.Contains(rn.StringValue, q) {
			selfMatch[pid] = true
		}
	}

	boosted := make([]bool, n)
	// Children always have a strictly greater PID than their parent
	// (PIDs are assigned at creation time, parent-before-child), so a
	// single descending pass sees every child's final boosted flag
	// before computing its parent's.
	for pid := n - 1; pid >= 0; pid-- {
		if selfMatch[pid] {
			boosted[pid] = true
			continue
		}
		for _, child := range b.children[pid] {
			if boosted[child] {
				boosted[pid] = true
				break
			}
		}
	}

	for pid := 0; pid < n; pid++ {
		if boosted[pid] {
			b.scores[pid] = uint64(b.depth[pid])
		}
	}
}
