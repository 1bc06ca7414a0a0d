// Package irexamples builds small, named regions exercising the IR core and
// its bundled passes end to end: a factorial accumulator loop, chains for
// each bundled pass to chew on, and fixtures for dominator/loop analysis.
package irexamples

import "github.com/irgraph/irgraph/internal/ir"

// Factorial builds a region computing the factorial of its single UInt
// parameter with an accumulator loop:
//
//	bb0 (start): n = param, acc0 = 1, jump bb1
//	bb1: acc = phi(acc0, acc2), i = phi(n, i2), cmp i == 0 -> bb3 else bb2
//	bb2: acc2 = acc * i, i2 = i - 1, jump bb1
//	bb3 (final): return acc
func Factorial() *ir.Region {
	region, err := ir.NewRegion("factorial")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)

	entry := region.AddStartBasicBlock()
	b.SetBlock(entry)
	n := b.Param(ir.UInt)
	one := b.Constant(ir.UIntAttr(1))

	header := b.CreateBlock()
	body := region.AddBasicBlock()
	exit := region.AddFinalBasicBlock()

	entry.LinkSucc(header, true)
	b.SetBlock(entry)
	b.Jump(header)

	b.SetBlock(header)
	acc := b.Phi(one, nil)
	i := b.Phi(n, nil)
	zero := b.Constant(ir.UIntAttr(0))
	isZero := b.Compare(ir.PredEQ, i, zero)
	header.LinkSucc(exit, true)
	header.LinkSucc(body, false)
	b.Jumpc(exit, isZero)

	b.SetBlock(body)
	acc2 := b.Mul(acc, i)
	oneAgain := b.Constant(ir.UIntAttr(1))
	i2 := b.Sub(i, oneAgain)
	body.LinkSucc(header, true)
	b.Jump(header)

	acc.SetInput(1, acc2)
	i.SetInput(1, i2)

	b.SetBlock(exit)
	b.Return(acc)

	return region
}

// DeadChain builds a single-block region where one arithmetic chain feeds
// the return value and a second, parallel chain is never used, giving
// dead-code elimination live ops to preserve and dead ops to erase.
func DeadChain() *ir.Region {
	region, err := ir.NewRegion("dead-chain")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(ir.UInt)
	live := b.Add(x, b.Constant(ir.UIntAttr(1)))

	deadLhs := b.Mul(x, b.Constant(ir.UIntAttr(2)))
	b.Sub(deadLhs, b.Constant(ir.UIntAttr(3)))

	b.Return(live)
	return region
}

// ConstFoldChain builds a single-block region whose entire return value is
// computable from literal constants, so a single constfold pass run
// collapses the whole arithmetic chain into one Constant.
func ConstFoldChain() *ir.Region {
	region, err := ir.NewRegion("const-fold-chain")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	two := b.Constant(ir.UIntAttr(2))
	three := b.Constant(ir.UIntAttr(3))
	sum := b.Add(two, three)
	four := b.Constant(ir.UIntAttr(4))
	product := b.Mul(sum, four)

	b.Return(product)
	return region
}

// PeepholeRotation builds (x+2)+3 so the peephole pass's constant-rotation
// rule folds the two literals into a single addend, leaving a dead inner
// add and two dead constants for a following dce pass to remove.
func PeepholeRotation() *ir.Region {
	region, err := ir.NewRegion("peephole-rotation")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(ir.UInt)
	inner := b.Add(x, b.Constant(ir.UIntAttr(2)))
	outer := b.Add(inner, b.Constant(ir.UIntAttr(3)))

	b.Return(outer)
	return region
}

// DoubleNegation builds not(not(x)) feeding the return, for the peephole
// pass's double-negation collapse rule.
func DoubleNegation() *ir.Region {
	region, err := ir.NewRegion("double-negation")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(ir.UInt)
	notted := b.Not(x)
	doubled := b.Not(notted)

	b.Return(doubled)
	return region
}

// DominatorDiamond builds a seven-block region (A-G) with a diamond-shaped
// merge and a side branch, giving CollectDomInfo a non-trivial tree:
//
//	A -> B, A -> C
//	B -> D
//	C -> D, C -> E
//	D -> F
//	E -> F
//	F -> G (final)
func DominatorDiamond() *ir.Region {
	region, err := ir.NewRegion("dominator-diamond")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)

	a := region.AddStartBasicBlock()
	bb := region.AddBasicBlock()
	c := region.AddBasicBlock()
	d := region.AddBasicBlock()
	e := region.AddBasicBlock()
	f := region.AddBasicBlock()
	g := region.AddFinalBasicBlock()

	b.SetBlock(a)
	cond := b.Param(ir.Bool)
	a.LinkSucc(bb, true)
	a.LinkSucc(c, false)
	b.Jumpc(bb, cond)

	b.SetBlock(bb)
	bb.LinkSucc(d, true)
	b.Jump(d)

	b.SetBlock(c)
	cond2 := b.Param(ir.Bool)
	c.LinkSucc(d, true)
	c.LinkSucc(e, false)
	b.Jumpc(d, cond2)

	b.SetBlock(d)
	d.LinkSucc(f, true)
	b.Jump(f)

	b.SetBlock(e)
	e.LinkSucc(f, true)
	b.Jump(f)

	b.SetBlock(f)
	f.LinkSucc(g, true)
	b.Jump(g)

	b.SetBlock(g)
	b.Return(nil)

	if err := region.CollectDomInfo(); err != nil {
		panic(err)
	}
	return region
}

// NaturalLoop builds a five-block region with a reducible natural loop:
//
//	bb0 (start) -> bb1
//	bb1 -> bb2
//	bb2 -> bb3 (true), bb2 -> bb4 (false: exit, final)
//	bb3 -> bb1 (latch, back edge)
func NaturalLoop() *ir.Region {
	region, err := ir.NewRegion("natural-loop")
	if err != nil {
		panic(err)
	}

	b := ir.NewBuilder().SetRegion(region)

	entry := region.AddStartBasicBlock()
	header := region.AddBasicBlock()
	body := region.AddBasicBlock()
	latch := region.AddBasicBlock()
	exit := region.AddFinalBasicBlock()

	b.SetBlock(entry)
	entry.LinkSucc(header, true)
	b.Jump(header)

	b.SetBlock(header)
	header.LinkSucc(body, true)
	b.Jump(body)

	b.SetBlock(body)
	cond := b.Param(ir.Bool)
	body.LinkSucc(latch, true)
	body.LinkSucc(exit, false)
	b.Jumpc(latch, cond)

	b.SetBlock(latch)
	latch.LinkSucc(header, true)
	b.Jump(header)

	b.SetBlock(exit)
	b.Return(nil)

	if err := region.CollectDomInfo(); err != nil {
		panic(err)
	}
	if err := region.CollectLoopInfo(); err != nil {
		panic(err)
	}
	return region
}
