package ir

import (
	"fmt"

	"github.com/irgraph/irgraph/internal/irerrors"
)

// BasicBlock holds an ordered phi-op sub-list and an ordered regular-op
// list, plus its two-way CFG edges: a multiset of predecessors and exactly
// two nullable successor slots ("true"/"false", with the single-successor
// case always occupying "true").
type BasicBlock struct {
	id     BlockID
	parent *Region

	phiOps opList
	regOps opList

	preds              []*BasicBlock
	succTrue, succFalse *BasicBlock
}

// ID returns this block's identifier, unique within its region.
func (b *BasicBlock) ID() BlockID { return b.id }

// Parent returns the region that owns this block.
func (b *BasicBlock) Parent() *Region { return b.parent }

// Predecessors returns this block's current predecessor list.
func (b *BasicBlock) Predecessors() []*BasicBlock {
	out := make([]*BasicBlock, len(b.preds))
	copy(out, b.preds)
	return out
}

// Succ returns the successor occupying the given slot (true="true" slot).
func (b *BasicBlock) Succ(which bool) *BasicBlock {
	if which {
		return b.succTrue
	}
	return b.succFalse
}

// HasSucc reports whether the given successor slot is occupied.
func (b *BasicBlock) HasSucc(which bool) bool { return b.Succ(which) != nil }

// PhiOps returns a snapshot of this block's phi-op sub-list, in order.
func (b *BasicBlock) PhiOps() []*Operation { return b.phiOps.Slice() }

// RegOps returns a snapshot of this block's regular-op list, in order.
func (b *BasicBlock) RegOps() []*Operation { return b.regOps.Slice() }

// PhiFront/PhiBack/RegFront/RegBack expose the intrusive lists' end points
// for position-stable Next()/Prev() iteration.
func (b *BasicBlock) PhiFront() *Operation { return b.phiOps.Front() }
func (b *BasicBlock) PhiBack() *Operation  { return b.phiOps.Back() }
func (b *BasicBlock) RegFront() *Operation { return b.regOps.Front() }
func (b *BasicBlock) RegBack() *Operation  { return b.regOps.Back() }

// IsEmpty reports whether this block has no regular operations.
func (b *BasicBlock) IsEmpty() bool { return b.regOps.Len() == 0 }

func (b *BasicBlock) listFor(op *Operation) *opList {
	if op.opcode == OpPhi {
		return &b.phiOps
	}
	return &b.regOps
}

// InsertOpBack appends op to the regular-op list, setting its parent.
func (b *BasicBlock) InsertOpBack(op *Operation) {
	op.parent = b
	b.regOps.PushBack(op)
}

// InsertOpFront prepends op to the regular-op list, setting its parent.
func (b *BasicBlock) InsertOpFront(op *Operation) {
	op.parent = b
	b.regOps.PushFront(op)
}

// InsertOpBefore inserts op immediately before pos in the regular-op list.
func (b *BasicBlock) InsertOpBefore(pos, op *Operation) {
	op.parent = b
	b.regOps.InsertBefore(pos, op)
}

// InsertOpAfter inserts op immediately after pos in the regular-op list.
func (b *BasicBlock) InsertOpAfter(pos, op *Operation) {
	op.parent = b
	b.regOps.InsertAfter(pos, op)
}

// InsertPhiOpBack appends op to the phi-op sub-list, setting its parent.
func (b *BasicBlock) InsertPhiOpBack(op *Operation) {
	op.parent = b
	b.phiOps.PushBack(op)
}

// EraseOp detaches op from the regular-op list and disconnects it from the
// use-def graph (UD2: no dangling slots or user entries survive).
func (b *BasicBlock) EraseOp(op *Operation) {
	b.regOps.Remove(op)
	op.parent = nil
	op.Disconnect()
}

// ErasePhiOp detaches op from the phi-op sub-list and disconnects it.
func (b *BasicBlock) ErasePhiOp(op *Operation) {
	b.phiOps.Remove(op)
	op.parent = nil
	op.Disconnect()
}

// ReplaceOpWith swaps newOp into old's position in the regular-op list,
// preserving old's id and redirecting old's users to newOp, then
// disconnecting and discarding old.
func (b *BasicBlock) ReplaceOpWith(old, newOp *Operation) {
	b.replaceIn(&b.regOps, old, newOp)
}

// ReplacePhiOpWith is ReplaceOpWith's twin for the phi-op sub-list.
func (b *BasicBlock) ReplacePhiOpWith(old, newOp *Operation) {
	b.replaceIn(&b.phiOps, old, newOp)
}

func (b *BasicBlock) replaceIn(list *opList, old, newOp *Operation) {
	newOp.id = old.id
	newOp.parent = b
	list.Replace(old, newOp)
	old.ReplaceAllUsesWith(newOp)
	old.Disconnect()
	old.parent = nil
}

// LinkSucc writes the successor slot, appending self to target's
// predecessor list. Re-linking an occupied slot first unlinks the previous
// target on that side.
func (b *BasicBlock) LinkSucc(target *BasicBlock, which bool) {
	if which {
		if b.succTrue != nil {
			b.unlinkSucc(true)
		}
		b.succTrue = target
	} else {
		if b.succFalse != nil {
			b.unlinkSucc(false)
		}
		b.succFalse = target
	}
	target.preds = append(target.preds, b)
	if b.parent != nil {
		b.parent.expireAnalyses()
	}
}

func (b *BasicBlock) unlinkSucc(which bool) {
	target := b.Succ(which)
	if target == nil {
		return
	}
	target.removePred(b)
	if which {
		b.succTrue = nil
	} else {
		b.succFalse = nil
	}
}

func (b *BasicBlock) removePred(pred *BasicBlock) {
	for i, p := range b.preds {
		if p == pred {
			b.preds = append(b.preds[:i], b.preds[i+1:]...)
			return
		}
	}
}

// Unlink removes every CFG edge touching this block: both its outgoing
// successor edges and every incoming predecessor edge.
func (b *BasicBlock) Unlink() {
	if b.succTrue != nil {
		b.unlinkSucc(true)
	}
	if b.succFalse != nil {
		b.unlinkSucc(false)
	}
	for _, p := range append([]*BasicBlock(nil), b.preds...) {
		if p.succTrue == b {
			p.succTrue = nil
		}
		if p.succFalse == b {
			p.succFalse = nil
		}
	}
	b.preds = nil
	if b.parent != nil {
		b.parent.expireAnalyses()
	}
}

// ReplaceWith transfers this block's predecessors and successors onto
// newBlock, then fully disconnects this block from the CFG.
func (b *BasicBlock) ReplaceWith(newBlock *BasicBlock) {
	if b.succTrue != nil {
		newBlock.LinkSucc(b.succTrue, true)
	}
	if b.succFalse != nil {
		newBlock.LinkSucc(b.succFalse, false)
	}

	for _, p := range append([]*BasicBlock(nil), b.preds...) {
		if p.succTrue == b {
			p.succTrue = newBlock
			newBlock.preds = append(newBlock.preds, p)
		}
		if p.succFalse == b {
			p.succFalse = newBlock
			newBlock.preds = append(newBlock.preds, p)
		}
	}

	b.Unlink()
	if b.parent != nil {
		b.parent.expireAnalyses()
	}
}

// Verify checks this block's structural invariants (I3, I5, I6, I7) and the
// non-terminator-position / non-empty obligations of every contained op,
// returning the first violation it finds.
func (b *BasicBlock) Verify(isStart, isFinal bool) error {
	name := fmt.Sprintf("bb%d", b.id)

	if b.parent == nil {
		return newVerificationFailure(irerrors.CodeNoParentRegion, "%s has no parent region", name)
	}
	if isStart && len(b.preds) != 0 {
		return newVerificationFailure(irerrors.CodeStartHasPreds, "%s is starting bb, but has predecessors", name)
	}
	if isFinal && (b.succTrue != nil || b.succFalse != nil) {
		return newVerificationFailure(irerrors.CodeFinalHasSuccs, "%s is final bb, but has successors", name)
	}

	for _, p := range b.preds {
		if !b.parent.IsBasicBlockPresent(p) {
			return newVerificationFailure(irerrors.CodeDanglingEdge, "%s's predecessor bb%d is not in the region", name, p.id)
		}
	}
	if b.succTrue != nil && !b.parent.IsBasicBlockPresent(b.succTrue) {
		return newVerificationFailure(irerrors.CodeDanglingEdge, "%s's true successor is not in the region", name)
	}
	if b.succFalse != nil && !b.parent.IsBasicBlockPresent(b.succFalse) {
		return newVerificationFailure(irerrors.CodeDanglingEdge, "%s's false successor is not in the region", name)
	}

	if b.succFalse != nil && b.succTrue == nil {
		return newVerificationFailure(irerrors.CodeFalseWithoutTrue, "%s has false successor specified, but true successor is missing", name)
	}
	if !isFinal && b.succTrue == nil {
		return newVerificationFailure(irerrors.CodeMissingSuccessor, "%s is not final, but has no successors", name)
	}

	if b.regOps.Len() == 0 {
		return newVerificationFailure(irerrors.CodeEmptyBlock, "%s is empty", name)
	}

	lastOp := b.regOps.Back()
	if isFinal && !lastOp.IsA(OpReturn) {
		return newVerificationFailure(irerrors.CodeFinalNotReturn, "%s is final, but its last operation is not a ctrlflow.return", name)
	}

	hasTwoSuccs := b.succFalse != nil
	lastOpIsCondJump := lastOp.IsA(OpJumpc)

	if hasTwoSuccs && b.succTrue == b.succFalse {
		return newVerificationFailure(irerrors.CodeIdenticalSuccessors, "%s has two identical successors", name)
	}
	if hasTwoSuccs && !lastOpIsCondJump {
		return newVerificationFailure(irerrors.CodeTwoSuccsNoCondJump, "%s has two successors, but conditional jump at the end is missing", name)
	}
	if !hasTwoSuccs && lastOpIsCondJump {
		return newVerificationFailure(irerrors.CodeOneSuccCondJump, "%s has single successor, but has conditional jump at the end", name)
	}

	for _, op := range b.phiOps.Slice() {
		if op.opcode != OpPhi {
			return newVerificationFailure(irerrors.CodeRegInPhiList, "%s has a non-phi operation in its phi list", name)
		}
		if err := verifyOperation(op); err != nil {
			return err
		}
	}

	ops := b.regOps.Slice()
	for i, op := range ops {
		if op.opcode == OpPhi {
			return newVerificationFailure(irerrors.CodePhiInRegList, "%s has a phi operation outside its phi list", name)
		}
		if op.IsTerminator() && i != len(ops)-1 {
			return newVerificationFailure(irerrors.CodeInteriorTerminator, "%s - terminator operation is not the last one in the block", name)
		}
		if err := verifyOperation(op); err != nil {
			return err
		}
	}

	return nil
}
