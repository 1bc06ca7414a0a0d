package ir

import "testing"

func hasPred(b, pred *BasicBlock) bool {
	for _, p := range b.Predecessors() {
		if p == pred {
			return true
		}
	}
	return false
}

// CFG1: if B.succ_true == C or B.succ_false == C then B is in C's
// predecessor list.
func TestLinkSuccMaintainsPredecessorSymmetry(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	a := region.AddBasicBlock()
	c := region.AddBasicBlock()
	d := region.AddBasicBlock()

	a.LinkSucc(c, true)
	a.LinkSucc(d, false)

	if !hasPred(c, a) {
		t.Fatal("c should list a as a predecessor via the true edge")
	}
	if !hasPred(d, a) {
		t.Fatal("d should list a as a predecessor via the false edge")
	}
}

// CFG2: a block with a false successor must also have a true successor.
func TestFalseWithoutTrueFailsVerify(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	start := region.AddStartBasicBlock()
	other := region.AddFinalBasicBlock()
	b.SetBlock(start)

	cond := b.Param(Bool)
	b.Jumpc(other, cond)
	start.succFalse = other
	other.preds = append(other.preds, start)

	if err := region.Verify(); err == nil {
		t.Fatal("expected verification to fail when succ_false is set without succ_true")
	}
}

func TestUnlinkRemovesAllEdges(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	a := region.AddBasicBlock()
	c := region.AddBasicBlock()

	a.LinkSucc(c, true)
	c.Unlink()

	if a.Succ(true) != nil {
		t.Fatal("a's successor edge should be gone after c unlinks")
	}
	if len(c.Predecessors()) != 0 {
		t.Fatal("c should have no predecessors after Unlink")
	}
}

func TestEraseOpDisconnectsFromUseDefGraph(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	copyOp := b.Copy(x)
	b.Return(copyOp)

	block.EraseOp(copyOp)

	if copyOp.Parent() != nil {
		t.Fatal("erased op should have no parent")
	}
	if x.HasUsers() {
		t.Fatal("x should have no users once its sole consumer is erased")
	}
}
