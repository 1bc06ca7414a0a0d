package ir

// isIntConst reports the raw 64-bit bit pattern of op's value if op is an
// integer Constant, regardless of signedness.
func isIntConst(op *Operation) (uint64, bool) {
	if op == nil || !op.IsA(OpConstant) {
		return 0, false
	}
	return intBits(op.Attribute())
}

func isZeroConst(op *Operation) bool {
	v, ok := isIntConst(op)
	return ok && v == 0
}

func isOneConst(op *Operation) bool {
	v, ok := isIntConst(op)
	return ok && v == 1
}

func isAllOnesConst(op *Operation) bool {
	v, ok := isIntConst(op)
	return ok && v == ^uint64(0)
}

func isFloatConstValue(op *Operation, want float64) bool {
	if op == nil || !op.IsA(OpConstant) {
		return false
	}
	f, ok := op.Attribute().(FloatAttr)
	return ok && float64(f) == want
}

func isZeroConstAny(op *Operation) bool { return isZeroConst(op) || isFloatConstValue(op, 0) }
func isOneConstAny(op *Operation) bool  { return isOneConst(op) || isFloatConstValue(op, 1) }

func sameOperand(a, b *Operation) bool { return a != nil && a == b }

// identityPattern matches opcode when one operand satisfies isIdentity,
// replacing the op with a Copy of the other operand.
func identityPattern(opcode Opcode, isIdentity func(*Operation) bool, commutative bool) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) {
			return false
		}
		lhs, rhs := op.InputAt(0).Def(), op.InputAt(1).Def()
		if isIdentity(rhs) {
			rw.ReplaceOpWith(op, NewCopy(lhs))
			return true
		}
		if commutative && isIdentity(lhs) {
			rw.ReplaceOpWith(op, NewCopy(rhs))
			return true
		}
		return false
	})
}

// annihilatorPattern matches opcode when one operand satisfies isAnnihilator
// (an integer operand, since the table restricts these rows to integers),
// replacing the op with the given constant result.
func annihilatorPattern(opcode Opcode, isAnnihilator func(*Operation) bool, result func(DataType) ConstAttribute) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) || !op.DataType().IsInteger() {
			return false
		}
		lhs, rhs := op.InputAt(0).Def(), op.InputAt(1).Def()
		if isAnnihilator(rhs) || isAnnihilator(lhs) {
			rw.ReplaceOpWith(op, NewConstant(result(op.DataType())))
			return true
		}
		return false
	})
}

// selfPattern matches opcode when both operands are the same SSA value
// (integer only), replacing the op with whatever result the rule demands.
func selfPattern(opcode Opcode, result func(op *Operation) *Operation) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) || !op.DataType().IsInteger() {
			return false
		}
		lhs, rhs := op.InputAt(0).Def(), op.InputAt(1).Def()
		if !sameOperand(lhs, rhs) {
			return false
		}
		rw.ReplaceOpWith(op, result(op))
		return true
	})
}

func rotateBinaryConst(opcode Opcode, fold func(DataType, ConstAttribute, ConstAttribute) (ConstAttribute, bool)) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) || !op.DataType().IsInteger() {
			return false
		}
		slots := [2][2]int{{0, 1}, {1, 0}}
		for _, s := range slots {
			constIdx, innerIdx := s[0], s[1]
			outerConst := op.InputAt(constIdx).Def()
			inner := op.InputAt(innerIdx).Def()
			if outerConst == nil || !outerConst.IsA(OpConstant) {
				continue
			}
			if inner == nil || !inner.IsA(opcode) || len(inner.Users()) != 1 {
				continue
			}
			for _, inS := range slots {
				c1Idx, xIdx := inS[0], inS[1]
				innerConst := inner.InputAt(c1Idx).Def()
				x := inner.InputAt(xIdx).Def()
				if innerConst == nil || !innerConst.IsA(OpConstant) {
					continue
				}
				folded, ok := fold(op.DataType(), innerConst.Attribute(), outerConst.Attribute())
				if !ok {
					continue
				}
				foldedOp := NewConstant(folded)
				foldedOp.id = rw.Region().ObtainIDForOperation()
				op.Parent().InsertOpBefore(op, foldedOp)
				op.SetInput(constIdx, x)
				op.SetInput(innerIdx, foldedOp)
				return true
			}
		}
		return false
	})
}

func xorAllOnesPattern() Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(OpXor) || !op.DataType().IsInteger() {
			return false
		}
		lhs, rhs := op.InputAt(0).Def(), op.InputAt(1).Def()
		if isAllOnesConst(rhs) {
			rw.ReplaceOpWith(op, NewNot(lhs))
			return true
		}
		if isAllOnesConst(lhs) {
			rw.ReplaceOpWith(op, NewNot(rhs))
			return true
		}
		return false
	})
}

func shiftIdentityPattern(opcode Opcode) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) {
			return false
		}
		x, n := op.InputAt(0).Def(), op.InputAt(1).Def()
		if isZeroConst(n) {
			rw.ReplaceOpWith(op, NewCopy(x))
			return true
		}
		if isZeroConst(x) {
			rw.ReplaceOpWith(op, NewConstant(zeroConstant(op.DataType())))
			return true
		}
		return false
	})
}

func doubleNotPattern() Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(OpNot) {
			return false
		}
		inner := op.InputAt(0).Def()
		if inner == nil || !inner.IsA(OpNot) {
			return false
		}
		x := inner.InputAt(0).Def()
		rw.ReplaceOpWith(op, NewCopy(x))
		if !inner.HasUsers() {
			rw.EraseOp(inner)
		}
		return true
	})
}

// NewArithPeepHolePass returns the bundled algebraic simplification pass.
func NewArithPeepHolePass() *PatternPass {
	return NewPatternPass("peephole",
		identityPattern(OpAdd, isZeroConstAny, true),
		rotateBinaryConst(OpAdd, foldAdd),
		identityPattern(OpSub, isZeroConstAny, false),
		selfPattern(OpSub, func(op *Operation) *Operation { return NewConstant(zeroConstant(op.DataType())) }),
		identityPattern(OpMul, isOneConstAny, true),
		annihilatorPattern(OpMul, isZeroConst, zeroConstant),
		rotateBinaryConst(OpMul, foldMul),
		identityPattern(OpDiv, isOneConstAny, false),
		annihilatorPattern(OpAnd, isZeroConst, zeroConstant),
		identityPattern(OpAnd, isAllOnesConst, true),
		selfPattern(OpAnd, func(op *Operation) *Operation { return NewCopy(op.InputAt(0).Def()) }),
		identityPattern(OpOr, isZeroConst, true),
		annihilatorPattern(OpOr, isAllOnesConst, allOnesConstant),
		selfPattern(OpOr, func(op *Operation) *Operation { return NewCopy(op.InputAt(0).Def()) }),
		identityPattern(OpXor, isZeroConst, true),
		selfPattern(OpXor, func(op *Operation) *Operation { return NewConstant(zeroConstant(op.DataType())) }),
		xorAllOnesPattern(),
		shiftIdentityPattern(OpSal),
		shiftIdentityPattern(OpSar),
		shiftIdentityPattern(OpShl),
		shiftIdentityPattern(OpShr),
		doubleNotPattern(),
	)
}
