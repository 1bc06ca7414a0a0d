package ir

import "github.com/irgraph/irgraph/internal/irerrors"

type loopColor uint8

const (
	loopWhite loopColor = iota
	loopGray
	loopBlack
)

// LoopExit is a CFG edge leading out of a loop's interior to a block
// outside it.
type LoopExit struct {
	From, To *BasicBlock
}

// Loop is a natural loop (or, for the synthetic root, the forest of
// top-level loops): a header dominating a body reached by one or more
// latches via back edges, with reducibility classification and nesting
// against sibling loops. The root loop has a nil header and IsRoot true;
// every block not owned by a real loop is attached to it directly.
type Loop struct {
	header    *BasicBlock
	latches   []*BasicBlock
	blocks    []*BasicBlock
	exits     []LoopExit
	nested    []*Loop
	parent    *Loop
	depth     int
	reducible bool
	isRoot    bool
}

// Header returns the loop's header block, or nil for the root loop.
func (l *Loop) Header() *BasicBlock { return l.header }

// Latches returns the blocks with a back edge into this loop's header.
func (l *Loop) Latches() []*BasicBlock { return append([]*BasicBlock(nil), l.latches...) }

// Blocks returns this loop's directly contained interior blocks, excluding
// its header, its latches, and any nested loop's header — those are
// reached instead through Nested.
func (l *Loop) Blocks() []*BasicBlock { return append([]*BasicBlock(nil), l.blocks...) }

// Exits returns the loop's exit edges: edges from a block in the loop's
// full recursive interior to a block outside it. Always empty for
// irreducible loops and for the root.
func (l *Loop) Exits() []LoopExit { return append([]LoopExit(nil), l.exits...) }

// Nested returns this loop's immediate child loops.
func (l *Loop) Nested() []*Loop { return append([]*Loop(nil), l.nested...) }

// Parent returns the enclosing loop, or nil only for the root.
func (l *Loop) Parent() *Loop { return l.parent }

// Depth returns this loop's nesting depth; the root is 0.
func (l *Loop) Depth() int { return l.depth }

// Reducible reports whether every one of this loop's back edges has a
// header dominating its latch. Always true for the root.
func (l *Loop) Reducible() bool { return l.reducible }

// IsRoot reports whether this is the synthetic root loop.
func (l *Loop) IsRoot() bool { return l.isRoot }

// loopInfo caches natural-loop analysis, invalidated wholesale alongside
// domInfo on any structural mutation (I8).
type loopInfo struct {
	expired bool
	root    *Loop
	all     []*Loop
	owner   map[*BasicBlock]*Loop
}

type backEdge struct {
	latch, header *BasicBlock
}

// CollectLoopInfo (re)computes natural loop analysis for this region.
// Requires unexpired dominator info (CollectDomInfo must have been run
// since the last structural mutation); panics with StaleAnalysis otherwise.
//
// It proceeds in five steps: (1) a DFS from the start block, coloring
// blocks white/gray/black, records a back edge for every edge into a gray
// (currently-on-stack) block; (2) back edges are grouped by header into
// loops, each classified reducible iff the header dominates every one of
// its latches; (3) for each reducible loop, in the post-order produced by
// step 1 (so inner loops are processed before the loops that contain
// them), a backward walk from its latches assigns blocks to the loop,
// merging into a nested child any already-owned loop the walk runs into;
// (4) each reducible loop's recursive interior (self, latches, blocks, and
// every nested loop's interior) is used to compute exit edges; (5) blocks
// left unowned become the root loop's direct blocks, every loop with no
// parent becomes a top-level child of the root, and depth is assigned by a
// preorder walk from the root.
func (r *Region) CollectLoopInfo() error {
	r.requireDomInfo()

	color := make(map[*BasicBlock]loopColor, len(r.blocks))
	var backEdges []backEdge
	var postorder []*BasicBlock

	var visit func(b *BasicBlock)
	visit = func(b *BasicBlock) {
		color[b] = loopGray
		for _, which := range [2]bool{true, false} {
			succ := b.Succ(which)
			if succ == nil {
				continue
			}
			switch color[succ] {
			case loopWhite:
				visit(succ)
			case loopGray:
				backEdges = append(backEdges, backEdge{latch: b, header: succ})
			}
		}
		color[b] = loopBlack
		postorder = append(postorder, b)
	}
	visit(r.start)

	var headerOrder []*BasicBlock
	byHeader := make(map[*BasicBlock]*Loop)
	for _, be := range backEdges {
		lp, ok := byHeader[be.header]
		if !ok {
			lp = &Loop{header: be.header, reducible: true}
			byHeader[be.header] = lp
			headerOrder = append(headerOrder, be.header)
		}
		lp.latches = append(lp.latches, be.latch)
	}

	for _, header := range headerOrder {
		lp := byHeader[header]
		for _, latch := range lp.latches {
			if !r.Dominates(header, latch) {
				lp.reducible = false
			}
		}
	}

	owner := make(map[*BasicBlock]*Loop)
	for _, b := range postorder {
		lp, ok := byHeader[b]
		if !ok || !lp.reducible {
			continue
		}
		loopSearch(lp, owner)
	}

	var all []*Loop
	for _, header := range headerOrder {
		all = append(all, byHeader[header])
	}

	root := &Loop{isRoot: true, reducible: true}
	for _, b := range r.blocks {
		if _, ok := owner[b]; !ok {
			root.blocks = append(root.blocks, b)
		}
	}
	for _, lp := range all {
		if lp.parent == nil {
			lp.parent = root
			root.nested = append(root.nested, lp)
		}
	}

	var assignDepth func(lp *Loop, depth int)
	assignDepth = func(lp *Loop, depth int) {
		lp.depth = depth
		for _, n := range lp.nested {
			assignDepth(n, depth+1)
		}
	}
	assignDepth(root, 0)

	for _, lp := range all {
		if lp.reducible {
			computeExits(lp)
		}
	}

	r.loop = loopInfo{root: root, all: all, owner: owner}
	return nil
}

// loopSearch implements step 3: a backward walk from lp's latches toward
// its header, assigning unowned blocks to lp and merging any already-owned
// loop it runs into as a nested child.
func loopSearch(lp *Loop, owner map[*BasicBlock]*Loop) {
	header := lp.header
	owner[header] = lp
	for _, latch := range lp.latches {
		owner[latch] = lp
	}

	visited := map[*BasicBlock]bool{header: true}
	var stack []*BasicBlock
	for _, latch := range lp.latches {
		if latch != header && !visited[latch] {
			visited[latch] = true
			stack = append(stack, latch)
		}
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, p := range cur.preds {
			if visited[p] {
				continue
			}
			if inner, ok := owner[p]; ok && inner != lp {
				visited[p] = true
				if inner.parent == nil {
					inner.parent = lp
				}
				if inner.header != nil {
					for _, pp := range inner.header.preds {
						if !visited[pp] {
							stack = append(stack, pp)
						}
					}
				}
				continue
			}

			visited[p] = true
			owner[p] = lp
			lp.blocks = append(lp.blocks, p)
			stack = append(stack, p)
		}
	}
}

// interiorSlice returns lp's full recursive interior (header, latches,
// directly owned blocks, and every nested loop's interior), deduplicated,
// in a deterministic discovery order.
func interiorSlice(lp *Loop) []*BasicBlock {
	seen := map[*BasicBlock]bool{}
	var out []*BasicBlock
	add := func(b *BasicBlock) {
		if b != nil && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	add(lp.header)
	for _, l := range lp.latches {
		add(l)
	}
	for _, b := range lp.blocks {
		add(b)
	}
	for _, n := range lp.nested {
		for _, b := range interiorSlice(n) {
			add(b)
		}
	}
	return out
}

func computeExits(lp *Loop) {
	interior := interiorSlice(lp)
	inSet := make(map[*BasicBlock]bool, len(interior))
	for _, b := range interior {
		inSet[b] = true
	}
	for _, b := range interior {
		for _, which := range [2]bool{true, false} {
			succ := b.Succ(which)
			if succ != nil && !inSet[succ] {
				lp.exits = append(lp.exits, LoopExit{From: b, To: succ})
			}
		}
	}
}

func (r *Region) requireLoopInfo() {
	if r.loop.root == nil || r.loop.expired {
		panicStale(irerrors.CodeLoopInfoExpired, "loop analysis is stale or was never computed; call CollectLoopInfo first")
	}
}

// RootLoop returns the synthetic root loop produced by the last
// CollectLoopInfo call, whose Nested() lists every top-level loop.
func (r *Region) RootLoop() *Loop {
	r.requireLoopInfo()
	return r.loop.root
}

// Loops returns every non-root loop found by the last CollectLoopInfo
// call, in the order their headers were first discovered as a back edge
// target.
func (r *Region) Loops() []*Loop {
	r.requireLoopInfo()
	return append([]*Loop(nil), r.loop.all...)
}

// LoopFor returns the innermost loop directly owning b (header, latch, or
// interior block), or the root loop if b belongs to none.
func (r *Region) LoopFor(b *BasicBlock) *Loop {
	r.requireLoopInfo()
	if lp, ok := r.loop.owner[b]; ok {
		return lp
	}
	return r.loop.root
}
