package ir

// Builder is a stateful IR construction front-end: it tracks a current
// region and a current block, and every opcode-named method (Constant, Add,
// ..., Phi) both builds the requested operation and inserts it at the end of
// the current block, stamping it with the next id the region hands out.
type Builder struct {
	region *Region
	block  *BasicBlock
}

// NewBuilder returns a Builder with no current region or block set; call
// SetRegion and SetBlock (or CreateBlock) before inserting operations.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetRegion sets the builder's current region, clearing the current block.
func (b *Builder) SetRegion(r *Region) *Builder {
	b.region = r
	b.block = nil
	return b
}

// Region returns the builder's current region.
func (b *Builder) Region() *Region { return b.region }

// SetBlock sets the builder's current insertion point to block, which must
// belong to the current region.
func (b *Builder) SetBlock(block *BasicBlock) *Builder {
	b.block = block
	return b
}

// Block returns the builder's current insertion point.
func (b *Builder) Block() *BasicBlock { return b.block }

// CreateBlock creates a new block in the current region, sets it as the
// current insertion point, and returns it.
func (b *Builder) CreateBlock() *BasicBlock {
	block := b.region.AddBasicBlock()
	b.block = block
	return block
}

// Insert stamps op with the next operation id in the current region and
// appends it to the current block's regular-op list (or its phi sub-list,
// for a Phi op), returning op for chaining.
func (b *Builder) Insert(op *Operation) *Operation {
	op.id = b.region.ObtainIDForOperation()
	if op.opcode == OpPhi {
		b.block.InsertPhiOpBack(op)
	} else {
		b.block.InsertOpBack(op)
	}
	return op
}

// Constant inserts an arith.const operation.
func (b *Builder) Constant(attr ConstAttribute) *Operation { return b.Insert(NewConstant(attr)) }

// Add inserts an arith.add operation.
func (b *Builder) Add(lhs, rhs *Operation) *Operation { return b.Insert(NewAdd(lhs, rhs)) }

// Sub inserts an arith.sub operation.
func (b *Builder) Sub(lhs, rhs *Operation) *Operation { return b.Insert(NewSub(lhs, rhs)) }

// Mul inserts an arith.mul operation.
func (b *Builder) Mul(lhs, rhs *Operation) *Operation { return b.Insert(NewMul(lhs, rhs)) }

// Div inserts an arith.div operation.
func (b *Builder) Div(lhs, rhs *Operation) *Operation { return b.Insert(NewDiv(lhs, rhs)) }

// And inserts an arith.and operation.
func (b *Builder) And(lhs, rhs *Operation) *Operation { return b.Insert(NewAnd(lhs, rhs)) }

// Or inserts an arith.or operation.
func (b *Builder) Or(lhs, rhs *Operation) *Operation { return b.Insert(NewOr(lhs, rhs)) }

// Xor inserts an arith.xor operation.
func (b *Builder) Xor(lhs, rhs *Operation) *Operation { return b.Insert(NewXor(lhs, rhs)) }

// Not inserts an arith.not operation.
func (b *Builder) Not(x *Operation) *Operation { return b.Insert(NewNot(x)) }

// Sal inserts an arith.sal operation.
func (b *Builder) Sal(lhs, rhs *Operation) *Operation { return b.Insert(NewSal(lhs, rhs)) }

// Sar inserts an arith.sar operation.
func (b *Builder) Sar(lhs, rhs *Operation) *Operation { return b.Insert(NewSar(lhs, rhs)) }

// Shl inserts an arith.shl operation.
func (b *Builder) Shl(lhs, rhs *Operation) *Operation { return b.Insert(NewShl(lhs, rhs)) }

// Shr inserts an arith.shr operation.
func (b *Builder) Shr(lhs, rhs *Operation) *Operation { return b.Insert(NewShr(lhs, rhs)) }

// Compare inserts an arith.cmp operation.
func (b *Builder) Compare(pred Predicate, lhs, rhs *Operation) *Operation {
	return b.Insert(NewCompare(pred, lhs, rhs))
}

// Cast inserts an arith.cast operation.
func (b *Builder) Cast(target DataType, x *Operation) *Operation {
	return b.Insert(NewCast(target, x))
}

// Param inserts a builtin.param operation.
func (b *Builder) Param(dt DataType) *Operation { return b.Insert(NewParam(dt)) }

// Copy inserts a builtin.copy operation.
func (b *Builder) Copy(x *Operation) *Operation { return b.Insert(NewCopy(x)) }

// Return inserts a ctrlflow.return operation.
func (b *Builder) Return(value *Operation) *Operation { return b.Insert(NewReturn(value)) }

// Jump inserts a ctrlflow.jump operation.
func (b *Builder) Jump(target *BasicBlock) *Operation { return b.Insert(NewJump(target)) }

// Jumpc inserts a ctrlflow.jumpc operation.
func (b *Builder) Jumpc(target *BasicBlock, cond *Operation) *Operation {
	return b.Insert(NewJumpc(target, cond))
}

// Call inserts a ctrlflow.call operation.
func (b *Builder) Call(funcName string, resultType DataType, args ...*Operation) *Operation {
	return b.Insert(NewCall(funcName, resultType, args...))
}

// Phi inserts a ctrlflow.phi operation.
func (b *Builder) Phi(v0 *Operation, rest ...*Operation) *Operation {
	return b.Insert(NewPhi(v0, rest...))
}
