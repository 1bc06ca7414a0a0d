package ir

import "testing"

func TestPeepholeAddZeroIdentity(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	sum := b.Add(x, b.Constant(UIntAttr(0)))
	b.Return(sum)

	pass := NewArithPeepHolePass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	if err := region.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	ret := region.StartBlock().RegBack()
	result := ret.InputAt(0).Def()
	if !result.IsA(OpCopy) {
		t.Fatalf("expected a Copy of x, got %s", result.Mnemonic())
	}
	if result.InputAt(0).Def() != x {
		t.Fatal("copy should wrap the original param")
	}
}

func TestPeepholeMulByZeroAnnihilator(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	prod := b.Mul(x, b.Constant(UIntAttr(0)))
	b.Return(prod)

	pass := NewArithPeepHolePass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	ret := region.StartBlock().RegBack()
	result := ret.InputAt(0).Def()
	if !result.IsA(OpConstant) {
		t.Fatalf("expected a Constant zero, got %s", result.Mnemonic())
	}
	if got := result.Attribute().(UIntAttr); uint64(got) != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestPeepholeConstantRotation(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	inner := b.Add(x, b.Constant(UIntAttr(2)))
	outer := b.Add(inner, b.Constant(UIntAttr(3)))
	b.Return(outer)

	pass := NewArithPeepHolePass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}

	if outer.InputAt(0).Def() != x && outer.InputAt(1).Def() != x {
		t.Fatal("rotated add should keep x as one operand")
	}
	var folded *Operation
	if outer.InputAt(0).Def() == x {
		folded = outer.InputAt(1).Def()
	} else {
		folded = outer.InputAt(0).Def()
	}
	if !folded.IsA(OpConstant) {
		t.Fatalf("expected the other operand to be a folded Constant, got %s", folded.Mnemonic())
	}
	if got := folded.Attribute().(UIntAttr); uint64(got) != 5 {
		t.Fatalf("expected 2+3=5, got %d", got)
	}
}

func TestPeepholeDoubleNegationCollapses(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	notted := b.Not(x)
	doubled := b.Not(notted)
	b.Return(doubled)

	pass := NewArithPeepHolePass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	if err := region.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	ret := region.StartBlock().RegBack()
	result := ret.InputAt(0).Def()
	if !result.IsA(OpCopy) {
		t.Fatalf("expected a Copy of x, got %s", result.Mnemonic())
	}
	if result.InputAt(0).Def() != x {
		t.Fatal("copy should wrap the original param")
	}
}

func TestPeepholeXorSelfProducesZero(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	result := b.Xor(x, x)
	b.Return(result)

	pass := NewArithPeepHolePass()
	if !pass.Run(region) {
		t.Fatal("expected a change")
	}
	ret := region.StartBlock().RegBack()
	folded := ret.InputAt(0).Def()
	if !folded.IsA(OpConstant) {
		t.Fatalf("expected a Constant zero, got %s", folded.Mnemonic())
	}
}
