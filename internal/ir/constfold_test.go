package ir

import "testing"

func buildBinary(t *testing.T, mk func(lhs, rhs *Operation) *Operation, lhs, rhs ConstAttribute) (*Region, *BasicBlock, *Operation) {
	t.Helper()
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	l := b.Constant(lhs)
	r := b.Constant(rhs)
	op := b.Insert(mk(l, r))
	b.Return(op)
	return region, block, op
}

func TestArithConstFoldAdd(t *testing.T) {
	region, _, op := buildBinary(t, NewAdd, UIntAttr(2), UIntAttr(3))
	pass := NewArithConstFoldPass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	if op.Parent() != nil {
		t.Fatal("original add should have been replaced")
	}
	if err := region.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	ret := region.StartBlock().RegBack()
	folded := ret.InputAt(0).Def()
	if !folded.IsA(OpConstant) {
		t.Fatalf("expected a Constant feeding return, got %s", folded.Mnemonic())
	}
	if got := folded.Attribute().(UIntAttr); uint64(got) != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestArithConstFoldDivByZeroSkipsFold(t *testing.T) {
	region, _, op := buildBinary(t, NewDiv, UIntAttr(10), UIntAttr(0))
	pass := NewArithConstFoldPass()
	if pass.Run(region) {
		t.Fatal("division by zero must not fold")
	}
	if op.Parent() == nil {
		t.Fatal("original div should remain")
	}
}

func TestArithConstFoldSignedOverflowWraps(t *testing.T) {
	region, _, _ := buildBinary(t, NewAdd, SIntAttr(9223372036854775807), SIntAttr(1))
	pass := NewArithConstFoldPass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	ret := region.StartBlock().RegBack()
	folded := ret.InputAt(0).Def()
	got := folded.Attribute().(SIntAttr)
	if int64(got) != -9223372036854775808 {
		t.Fatalf("expected wraparound to minimum int64, got %d", got)
	}
}

func TestArithConstFoldShiftOutOfRangeSkips(t *testing.T) {
	region, _, op := buildBinary(t, NewShl, UIntAttr(1), UIntAttr(64))
	pass := NewArithConstFoldPass()
	if pass.Run(region) {
		t.Fatal("out-of-range shift amount must not fold")
	}
	if op.Parent() == nil {
		t.Fatal("original shl should remain")
	}
}

func TestArithConstFoldCompare(t *testing.T) {
	region, _, _ := buildBinary(t, func(l, r *Operation) *Operation { return NewCompare(PredB, l, r) }, UIntAttr(2), UIntAttr(3))
	pass := NewArithConstFoldPass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	ret := region.StartBlock().RegBack()
	folded := ret.InputAt(0).Def()
	got := folded.Attribute().(BoolAttr)
	if !bool(got) {
		t.Fatal("2 < 3 should fold to true")
	}
}
