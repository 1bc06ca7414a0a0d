package ir

// constAttr reports the constant attribute feeding input slot i of op, and
// whether that input is in fact a Constant op.
func constAttr(op *Operation, i int) (ConstAttribute, bool) {
	def := op.InputAt(i).Def()
	if def == nil || !def.IsA(OpConstant) {
		return nil, false
	}
	return def.Attribute(), true
}

func intBits(attr ConstAttribute) (uint64, bool) {
	switch a := attr.(type) {
	case UIntAttr:
		return uint64(a), true
	case SIntAttr:
		return uint64(int64(a)), true
	default:
		return 0, false
	}
}

func zeroConstant(dt DataType) ConstAttribute {
	switch dt {
	case UInt:
		return UIntAttr(0)
	case SInt:
		return SIntAttr(0)
	case Float:
		return FloatAttr(0)
	default:
		return nil
	}
}

func allOnesConstant(dt DataType) ConstAttribute {
	switch dt {
	case UInt:
		return UIntAttr(^uint64(0))
	case SInt:
		return SIntAttr(-1)
	default:
		return nil
	}
}

func predResult[T int64 | uint64 | float64](pred Predicate, a, b T) bool {
	switch pred {
	case PredEQ:
		return a == b
	case PredNEQ:
		return a != b
	case PredA:
		return a > b
	case PredB:
		return a < b
	case PredAE:
		return a >= b
	case PredBE:
		return a <= b
	default:
		return false
	}
}

func foldAdd(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	switch dt {
	case UInt:
		return UIntAttr(uint64(lhs.(UIntAttr)) + uint64(rhs.(UIntAttr))), true
	case SInt:
		return SIntAttr(int64(lhs.(SIntAttr)) + int64(rhs.(SIntAttr))), true
	case Float:
		return FloatAttr(float64(lhs.(FloatAttr)) + float64(rhs.(FloatAttr))), true
	default:
		return nil, false
	}
}

func foldSub(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	switch dt {
	case UInt:
		return UIntAttr(uint64(lhs.(UIntAttr)) - uint64(rhs.(UIntAttr))), true
	case SInt:
		return SIntAttr(int64(lhs.(SIntAttr)) - int64(rhs.(SIntAttr))), true
	case Float:
		return FloatAttr(float64(lhs.(FloatAttr)) - float64(rhs.(FloatAttr))), true
	default:
		return nil, false
	}
}

func foldMul(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	switch dt {
	case UInt:
		return UIntAttr(uint64(lhs.(UIntAttr)) * uint64(rhs.(UIntAttr))), true
	case SInt:
		return SIntAttr(int64(lhs.(SIntAttr)) * int64(rhs.(SIntAttr))), true
	case Float:
		return FloatAttr(float64(lhs.(FloatAttr)) * float64(rhs.(FloatAttr))), true
	default:
		return nil, false
	}
}

func foldDiv(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	switch dt {
	case UInt:
		r := uint64(rhs.(UIntAttr))
		if r == 0 {
			return nil, false
		}
		return UIntAttr(uint64(lhs.(UIntAttr)) / r), true
	case SInt:
		r := int64(rhs.(SIntAttr))
		if r == 0 {
			return nil, false
		}
		return SIntAttr(int64(lhs.(SIntAttr)) / r), true
	case Float:
		return FloatAttr(float64(lhs.(FloatAttr)) / float64(rhs.(FloatAttr))), true
	default:
		return nil, false
	}
}

func foldBitwise(dt DataType, lhs, rhs ConstAttribute, op func(a, b uint64) uint64) (ConstAttribute, bool) {
	a, aok := intBits(lhs)
	b, bok := intBits(rhs)
	if !aok || !bok {
		return nil, false
	}
	result := op(a, b)
	switch dt {
	case UInt:
		return UIntAttr(result), true
	case SInt:
		return SIntAttr(int64(result)), true
	default:
		return nil, false
	}
}

func foldAnd(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	return foldBitwise(dt, lhs, rhs, func(a, b uint64) uint64 { return a & b })
}

func foldOr(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	return foldBitwise(dt, lhs, rhs, func(a, b uint64) uint64 { return a | b })
}

func foldXor(dt DataType, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	return foldBitwise(dt, lhs, rhs, func(a, b uint64) uint64 { return a ^ b })
}

func foldNotValue(dt DataType, x ConstAttribute) (ConstAttribute, bool) {
	v, ok := intBits(x)
	if !ok {
		return nil, false
	}
	switch dt {
	case UInt:
		return UIntAttr(^v), true
	case SInt:
		return SIntAttr(^int64(v)), true
	default:
		return nil, false
	}
}

func foldSal(lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	x, ok := lhs.(SIntAttr)
	n, ok2 := rhs.(SIntAttr)
	if !ok || !ok2 {
		return nil, false
	}
	shift := int64(n)
	if shift < 0 || shift >= 64 {
		return nil, false
	}
	return SIntAttr(int64(x) << uint(shift)), true
}

func foldSar(lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	x, ok := lhs.(SIntAttr)
	n, ok2 := rhs.(SIntAttr)
	if !ok || !ok2 {
		return nil, false
	}
	shift := int64(n)
	if shift < 0 || shift >= 64 {
		return nil, false
	}
	return SIntAttr(int64(x) >> uint(shift)), true
}

func foldShl(lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	x, ok := lhs.(UIntAttr)
	n, ok2 := rhs.(UIntAttr)
	if !ok || !ok2 {
		return nil, false
	}
	shift := uint64(n)
	if shift >= 64 {
		return nil, false
	}
	return UIntAttr(uint64(x) << shift), true
}

func foldShr(lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	x, ok := lhs.(UIntAttr)
	n, ok2 := rhs.(UIntAttr)
	if !ok || !ok2 {
		return nil, false
	}
	shift := uint64(n)
	if shift >= 64 {
		return nil, false
	}
	return UIntAttr(uint64(x) >> shift), true
}

func foldCompare(pred Predicate, lhs, rhs ConstAttribute) (ConstAttribute, bool) {
	switch a := lhs.(type) {
	case UIntAttr:
		b, ok := rhs.(UIntAttr)
		if !ok {
			return nil, false
		}
		return BoolAttr(predResult(pred, uint64(a), uint64(b))), true
	case SIntAttr:
		b, ok := rhs.(SIntAttr)
		if !ok {
			return nil, false
		}
		return BoolAttr(predResult(pred, int64(a), int64(b))), true
	case FloatAttr:
		b, ok := rhs.(FloatAttr)
		if !ok {
			return nil, false
		}
		return BoolAttr(predResult(pred, float64(a), float64(b))), true
	case BoolAttr:
		b, ok := rhs.(BoolAttr)
		if !ok {
			return nil, false
		}
		toInt := func(v bool) int64 {
			if v {
				return 1
			}
			return 0
		}
		return BoolAttr(predResult(pred, toInt(bool(a)), toInt(bool(b)))), true
	default:
		return nil, false
	}
}

func foldBinaryConstPattern(opcode Opcode, fold func(DataType, ConstAttribute, ConstAttribute) (ConstAttribute, bool)) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) {
			return false
		}
		lhs, ok1 := constAttr(op, 0)
		rhs, ok2 := constAttr(op, 1)
		if !ok1 || !ok2 {
			return false
		}
		result, ok := fold(op.DataType(), lhs, rhs)
		if !ok {
			return false
		}
		rw.ReplaceOpWith(op, NewConstant(result))
		return true
	})
}

func foldNotPattern() Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(OpNot) {
			return false
		}
		x, ok := constAttr(op, 0)
		if !ok {
			return false
		}
		result, ok := foldNotValue(op.DataType(), x)
		if !ok {
			return false
		}
		rw.ReplaceOpWith(op, NewConstant(result))
		return true
	})
}

func foldShiftPattern(opcode Opcode, fold func(ConstAttribute, ConstAttribute) (ConstAttribute, bool)) Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(opcode) {
			return false
		}
		lhs, ok1 := constAttr(op, 0)
		rhs, ok2 := constAttr(op, 1)
		if !ok1 || !ok2 {
			return false
		}
		result, ok := fold(lhs, rhs)
		if !ok {
			return false
		}
		rw.ReplaceOpWith(op, NewConstant(result))
		return true
	})
}

func foldComparePattern() Pattern {
	return PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.IsA(OpCompare) {
			return false
		}
		lhs, ok1 := constAttr(op, 0)
		rhs, ok2 := constAttr(op, 1)
		if !ok1 || !ok2 {
			return false
		}
		result, ok := foldCompare(op.Predicate(), lhs, rhs)
		if !ok {
			return false
		}
		rw.ReplaceOpWith(op, NewConstant(result))
		return true
	})
}

// NewArithConstFoldPass returns the bundled constant-folding pass: one
// pattern per arith op other than const and cast (cast is never folded),
// each matching only when every one of its inputs is
// a Constant op and the op's DataType admits the fold.
func NewArithConstFoldPass() *PatternPass {
	return NewPatternPass("constfold",
		foldBinaryConstPattern(OpAdd, foldAdd),
		foldBinaryConstPattern(OpSub, foldSub),
		foldBinaryConstPattern(OpMul, foldMul),
		foldBinaryConstPattern(OpDiv, foldDiv),
		foldBinaryConstPattern(OpAnd, foldAnd),
		foldBinaryConstPattern(OpOr, foldOr),
		foldBinaryConstPattern(OpXor, foldXor),
		foldNotPattern(),
		foldShiftPattern(OpSal, foldSal),
		foldShiftPattern(OpSar, foldSar),
		foldShiftPattern(OpShl, foldShl),
		foldShiftPattern(OpShr, foldShr),
		foldComparePattern(),
	)
}
