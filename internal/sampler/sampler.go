// Package sampler implements the per-array element selection strategies
// used while streaming an array into the arena under a cap K. Each
// strategy consumes a full source sequence (so it can report the true
// original length) while fully materializing only the elements it keeps.
package sampler

// Strategy selects which array-sampling algorithm to run.
type Strategy uint8

const (
	// HeadMidTail is the default: a fixed head prefix, a greedy middle
	// head, then deterministic stochastic acceptance for the remainder.
	HeadMidTail Strategy = iota
	Head
	Tail
	None
)

// Source is the minimal streaming contract a sampler needs: pull the
// next element (parsing it into the arena and returning its arena
// index), or report that the sequence is exhausted. Skip discards the
// next element without materializing it. Both return ok=false once the
// underlying sequence is drained.
type Source interface {
	Next() (childID int, ok bool, err error)
	Skip() (ok bool, err error)
}

// Result is what every sampler strategy produces.
type Result struct {
	Children    []int // arena ids of kept children, in kept (chronological) order
	Indices     []int // original indices of the kept children; nil means identity [0, len)
	TotalLen    int
}

// Sample runs strategy s over src with cap K.
func Sample(s Strategy, src Source, cap int) (Result, error) {
	switch s {
	case Head:
		return sampleHead(src, cap)
	case Tail:
		return sampleTail(src, cap)
	case None:
		total, err := drain(src)
		return Result{TotalLen: total}, err
	default:
		return sampleHeadMidTail(src, cap)
	}
}

func drain(src Source) (int, error) {
	total := 0
	for {
		ok, err := src.Skip()
		if err != nil {
			return total, err
		}
		if !ok {
			return total, nil
		}
		total++
	}
}

func sampleHead(src Source, cap int) (Result, error) {
	if cap == 0 {
		total, err := drain(src)
		return Result{TotalLen: total}, err
	}
	children := make([]int, 0, cap)
	idx := 0
	for idx < cap {
		id, ok, err := src.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{Children: children, TotalLen: idx}, nil
		}
		children = append(children, id)
		idx++
	}
	total, err := drain(src)
	if err != nil {
		return Result{}, err
	}
	return Result{Children: children, TotalLen: idx + total}, nil
}

// sampleTail keeps a K-slot ring buffer of (originalIndex, child) pairs,
// overwriting the oldest entry once the ring is full, then reorders the
// ring back to chronological order at the end.
func sampleTail(src Source, cap int) (Result, error) {
	if cap == 0 {
		total, err := drain(src)
		return Result{TotalLen: total}, err
	}
	ringIdx := make([]int, cap)
	ringChild := make([]int, cap)
	count := 0
	head := 0 // next write position modulo cap
	for {
		id, ok, err := src.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		ringIdx[head] = count
		ringChild[head] = id
		head = (head + 1) % cap
		count++
	}
	return materializeTail(ringIdx, ringChild, count, head, cap), nil
}

func materializeTail(ringIdx, ringChild []int, count, head, cap int) Result {
	kept := count
	if kept > cap {
		kept = cap
	}
	if kept == 0 {
		return Result{TotalLen: count}
	}
	start := 0
	if count >= cap {
		start = head
	}
	children := make([]int, kept)
	indices := make([]int, kept)
	for i := 0; i < kept; i++ {
		pos := (start + i) % cap
		indices[i] = ringIdx[pos]
		children[i] = ringChild[pos]
	}
	return Result{Children: children, Indices: normalizeIndices(indices), TotalLen: count}
}

// mix64 is the SplitMix64 final mixer: cheap, good avalanche, fully
// deterministic so array sampling needs no RNG state.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

const (
	seed   uint64 = 0x9e3779b97f4a7c15
	thresh uint32 = 0x80000000 // ~50%
)

// acceptIndex is the deterministic, cap-independent acceptance predicate
// for the HeadMidTail sampler's probabilistic phase.
func acceptIndex(i uint64) bool {
	h := mix64(i ^ seed)
	return uint32(h>>32) < thresh
}

func sampleHeadMidTail(src Source, cap int) (Result, error) {
	if cap == 0 {
		total, err := drain(src)
		return Result{TotalLen: total}, err
	}
	var children, indices []int
	idx := 0
	kept := 0

	const headPrefix = 3
	keepFirst := headPrefix
	if keepFirst > cap {
		keepFirst = cap
	}
	greedyRemaining := (cap - keepFirst) / 2

	// Phase 1: always keep the first few.
	for kept < cap && idx < keepFirst {
		id, ok, err := src.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return finishSample(children, indices, idx), nil
		}
		children = append(children, id)
		indices = append(indices, idx)
		kept++
		idx++
	}
	// Phase 2: greedy middle head.
	for kept < cap && greedyRemaining > 0 {
		id, ok, err := src.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return finishSample(children, indices, idx), nil
		}
		children = append(children, id)
		indices = append(indices, idx)
		kept++
		greedyRemaining--
		idx++
	}
	// Phase 3: deterministic stochastic acceptance for the remainder.
	for kept < cap {
		if acceptIndex(uint64(idx)) {
			id, ok, err := src.Next()
			if err != nil {
				return Result{}, err
			}
			if !ok {
				break
			}
			children = append(children, id)
			indices = append(indices, idx)
			kept++
		} else {
			ok, err := src.Skip()
			if err != nil {
				return Result{}, err
			}
			if !ok {
				break
			}
		}
		idx++
	}
	// Drain the remainder to learn the true total length.
	for {
		ok, err := src.Skip()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		idx++
	}
	return finishSample(children, indices, idx), nil
}

func finishSample(children, indices []int, total int) Result {
	return Result{Children: children, Indices: normalizeIndices(indices), TotalLen: total}
}

// normalizeIndices returns nil when the indices are exactly the
// identity prefix [0, len), letting the arena skip storing a redundant
// ArrIndices slice.
func normalizeIndices(indices []int) []int {
	for i, v := range indices {
		if v != i {
			return indices
		}
	}
	return nil
}
