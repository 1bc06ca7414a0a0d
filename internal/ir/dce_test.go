package ir

import "testing"

func TestDCERemovesUnusedChain(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	live := b.Add(x, b.Constant(UIntAttr(1)))
	deadLhs := b.Mul(x, b.Constant(UIntAttr(2)))
	b.Sub(deadLhs, b.Constant(UIntAttr(3)))
	b.Return(live)

	before := len(block.RegOps())

	pass := NewDCEPass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	if err := region.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	after := block.RegOps()
	if len(after) >= before {
		t.Fatalf("expected the dead chain to shrink the block, before=%d after=%d", before, len(after))
	}
	for _, op := range after {
		if op == live || op.IsA(OpParam) || op.IsA(OpReturn) || op == live.InputAt(1).Def() {
			continue
		}
		t.Fatalf("unexpected surviving op: %s", DumpOperation(op))
	}
}

func TestDCEPreservesSideEffectingAndTerminatorOps(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	b.Param(UInt)
	b.Call("log", None)

	pass := NewDCEPass()
	if pass.Run(region) {
		t.Fatal("unused param and terminator call must survive")
	}
}
