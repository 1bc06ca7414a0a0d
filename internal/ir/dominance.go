package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// domInfo caches the immediate-dominator map computed by
// Region.CollectDomInfo, invalidated wholesale on any structural mutation
// (I8) rather than incrementally maintained.
type domInfo struct {
	expired bool
	idom    map[*BasicBlock]*BasicBlock
	rpoIdx  map[*BasicBlock]int
}

// CollectDomInfo (re)computes the dominator tree for this region using the
// iterative Cooper-Harvey-Kennedy algorithm over reverse post-order: the
// start block dominates itself, and every other reachable block's immediate
// dominator is the common ancestor of its already-processed predecessors in
// RPO order, found by walking both candidate chains up until they meet.
// Iterates to a fixed point since predecessors may appear later in RPO than
// their successors in the presence of back edges.
func (r *Region) CollectDomInfo() error {
	rpo, err := r.GetRPO()
	if err != nil {
		return err
	}

	rpoIdx := make(map[*BasicBlock]int, len(rpo))
	for i, b := range rpo {
		rpoIdx[b] = i
	}

	idom := make(map[*BasicBlock]*BasicBlock, len(rpo))
	idom[r.start] = r.start

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == r.start {
				continue
			}

			var newIdom *BasicBlock
			for _, p := range b.preds {
				if _, ok := rpoIdx[p]; !ok {
					continue
				}
				if idom[p] == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = intersect(newIdom, p, idom, rpoIdx)
			}

			if newIdom != nil && idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}

	r.dom = domInfo{idom: idom, rpoIdx: rpoIdx}
	return nil
}

func intersect(a, b *BasicBlock, idom map[*BasicBlock]*BasicBlock, rpoIdx map[*BasicBlock]int) *BasicBlock {
	for a != b {
		for rpoIdx[a] > rpoIdx[b] {
			a = idom[a]
		}
		for rpoIdx[b] > rpoIdx[a] {
			b = idom[b]
		}
	}
	return a
}

func (r *Region) requireDomInfo() error {
	if r.dom.idom == nil || r.dom.expired {
		panicStale(irerrors.CodeDomInfoExpired, "dominator analysis is stale or was never computed; call CollectDomInfo first")
	}
	return nil
}

// GetIDom returns b's immediate dominator, and false if b is unreachable
// from the start block (no entry in the dominator map). Panics with
// StaleAnalysis if dominator info has expired or was never computed.
func (r *Region) GetIDom(b *BasicBlock) (*BasicBlock, bool) {
	_ = r.requireDomInfo()
	idom, ok := r.dom.idom[b]
	if !ok {
		return nil, false
	}
	return idom, true
}

// Dominates reports whether a dominates b (reflexive: a dominates itself).
func (r *Region) Dominates(a, b *BasicBlock) bool {
	_ = r.requireDomInfo()
	cur := b
	for {
		if cur == a {
			return true
		}
		next, ok := r.dom.idom[cur]
		if !ok || next == cur {
			return cur == a
		}
		cur = next
	}
}

// GetDominatorsChain returns b's dominator chain from b up to the start
// block, inclusive of both ends.
func (r *Region) GetDominatorsChain(b *BasicBlock) []*BasicBlock {
	_ = r.requireDomInfo()
	var chain []*BasicBlock
	cur := b
	for {
		chain = append(chain, cur)
		next, ok := r.dom.idom[cur]
		if !ok || next == cur {
			return chain
		}
		cur = next
	}
}

// GetDominatedBlocks returns the blocks a immediately dominates: a's
// children in the dominator tree, not its whole dominated subtree.
func (r *Region) GetDominatedBlocks(a *BasicBlock) []*BasicBlock {
	_ = r.requireDomInfo()
	var out []*BasicBlock
	for _, b := range r.blocks {
		if idom, ok := r.dom.idom[b]; ok && b != a && idom == a {
			out = append(out, b)
		}
	}
	return out
}
