package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// Pattern inspects one operation and, through rw, optionally rewrites the
// region around it, returning true iff it changed anything.
type Pattern interface {
	MatchAndRewrite(op *Operation, rw *Rewriter) bool
}

// PatternFunc adapts a plain function to the Pattern interface.
type PatternFunc func(op *Operation, rw *Rewriter) bool

// MatchAndRewrite calls f.
func (f PatternFunc) MatchAndRewrite(op *Operation, rw *Rewriter) bool { return f(op, rw) }

// Rewriter is the sole sanctioned way a Pattern mutates a region's
// operations: every primitive here preserves the use-def invariants (I1,
// I2) that raw list/slot surgery would violate. Its preconditions are
// programmer errors, not recoverable failures: they panic with
// RewriterMisuse rather than returning an error.
type Rewriter struct {
	region *Region
}

// NewRewriter returns a Rewriter bound to region.
func NewRewriter(region *Region) *Rewriter { return &Rewriter{region: region} }

// Region returns the rewriter's bound region.
func (rw *Rewriter) Region() *Region { return rw.region }

// EraseOp detaches op from its parent block's appropriate list (phi or
// regular) and disconnects it from the use-def graph. Panics with
// RewriterMisuse if op is not currently attached to a block.
func (rw *Rewriter) EraseOp(op *Operation) {
	if op.parent == nil {
		panicRewriterMisuse(irerrors.CodeOrphanOp, "cannot erase v%d: operation is not attached to any block", op.id)
	}
	if op.opcode == OpPhi {
		op.parent.ErasePhiOp(op)
	} else {
		op.parent.EraseOp(op)
	}
}

// ReplaceOpWith inserts newOp at op's position carrying op's id, redirects
// every one of op's users to newOp, then disconnects and discards op.
// Panics with RewriterMisuse if op is unattached, newOp is nil, or exactly
// one of op/newOp is a phi.
func (rw *Rewriter) ReplaceOpWith(op, newOp *Operation) {
	if op.parent == nil {
		panicRewriterMisuse(irerrors.CodeOrphanOp, "cannot replace v%d: operation is not attached to any block", op.id)
	}
	if newOp == nil {
		panicRewriterMisuse(irerrors.CodeNilReplacement, "replaceOpWith(v%d, ...): new operation must not be nil", op.id)
	}
	if (op.opcode == OpPhi) != (newOp.opcode == OpPhi) {
		panicRewriterMisuse(irerrors.CodePhiKindMismatch, "cannot replace v%d with an operation of mismatched phi-kind", op.id)
	}

	if op.opcode == OpPhi {
		op.parent.ReplacePhiOpWith(op, newOp)
	} else {
		op.parent.ReplaceOpWith(op, newOp)
	}
}

// PatternPass runs an ordered set of patterns to a local fixed point over
// every block of a region.
type PatternPass struct {
	name     string
	patterns []Pattern
}

// NewPatternPass returns a PatternPass trying patterns in the given order.
func NewPatternPass(name string, patterns ...Pattern) *PatternPass {
	return &PatternPass{name: name, patterns: patterns}
}

// Name returns the pass's identifying name, used in diagnostics.
func (p *PatternPass) Name() string { return p.name }

// Run visits every block of region in insertion order and, for each,
// alternates sweeping its phi list and its regular list until one full
// round of both leaves the block unchanged. Within a single sweep, each op
// is tried against every pattern in order; on the first pattern that
// reports a change, the sweep restarts from the front of the list, since
// the match may have erased, replaced, or inserted neighboring ops. Run
// reports whether any pattern ever fired.
func (p *PatternPass) Run(region *Region) bool {
	rw := NewRewriter(region)
	changed := false
	for _, block := range region.Blocks() {
		if p.runBlock(block, rw) {
			changed = true
		}
	}
	return changed
}

func (p *PatternPass) runBlock(block *BasicBlock, rw *Rewriter) bool {
	any := false
	for {
		phiChanged := p.sweepList(block, rw, true)
		regChanged := p.sweepList(block, rw, false)
		if !phiChanged && !regChanged {
			return any
		}
		any = true
	}
}

func (p *PatternPass) sweepList(block *BasicBlock, rw *Rewriter, isPhi bool) bool {
	changed := false
	for {
		var cur *Operation
		if isPhi {
			cur = block.PhiFront()
		} else {
			cur = block.RegFront()
		}

		restarted := false
		for cur != nil {
			next := cur.Next()
			for _, pat := range p.patterns {
				if pat.MatchAndRewrite(cur, rw) {
					changed = true
					restarted = true
					break
				}
			}
			if restarted {
				break
			}
			cur = next
		}
		if !restarted {
			return changed
		}
	}
}

// Pass is anything a PassManager can run over a region, reporting whether
// it changed the IR.
type Pass interface {
	Run(region *Region) bool
}

// PassManager runs an ordered list of passes over a region, sequentially,
// ORing together each pass's "changed" result. It does no invalidation
// wiring of its own. The rewriter primitives only edit operations and do not
// expire cached analyses; CFG mutations made through the region and block
// API (adding, removing or replacing blocks, linking or unlinking edges)
// expire them.
type PassManager struct {
	passes []Pass
}

// NewPassManager returns a PassManager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// Run invokes every pass in order, returning true if any of them changed
// the IR.
func (pm *PassManager) Run(region *Region) bool {
	changed := false
	for _, p := range pm.passes {
		if p.Run(region) {
			changed = true
		}
	}
	return changed
}
