package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// NewConstant builds a 0-input arith.const operation carrying attr as its
// immutable payload; its result type is attr's DataType.
func NewConstant(attr ConstAttribute) *Operation {
	op := newOperation(OpConstant, attr.DataType(), 0)
	op.attr = attr
	return op
}

// Attribute returns the constant payload of an arith.const operation; nil
// for any other opcode.
func (op *Operation) Attribute() ConstAttribute { return op.attr }

func newBinaryArith(opcode Opcode, lhs, rhs *Operation) *Operation {
	var dt DataType
	if lhs != nil {
		dt = lhs.dataType
	}
	op := newOperation(opcode, dt, 2)
	op.SetInput(0, lhs)
	op.SetInput(1, rhs)
	return op
}

// NewAdd builds an arith.add operation; its result type is lhs's type.
func NewAdd(lhs, rhs *Operation) *Operation { return newBinaryArith(OpAdd, lhs, rhs) }

// NewSub builds an arith.sub operation.
func NewSub(lhs, rhs *Operation) *Operation { return newBinaryArith(OpSub, lhs, rhs) }

// NewMul builds an arith.mul operation.
func NewMul(lhs, rhs *Operation) *Operation { return newBinaryArith(OpMul, lhs, rhs) }

// NewDiv builds an arith.div operation.
func NewDiv(lhs, rhs *Operation) *Operation { return newBinaryArith(OpDiv, lhs, rhs) }

// NewAnd builds an arith.and operation.
func NewAnd(lhs, rhs *Operation) *Operation { return newBinaryArith(OpAnd, lhs, rhs) }

// NewOr builds an arith.or operation.
func NewOr(lhs, rhs *Operation) *Operation { return newBinaryArith(OpOr, lhs, rhs) }

// NewXor builds an arith.xor operation.
func NewXor(lhs, rhs *Operation) *Operation { return newBinaryArith(OpXor, lhs, rhs) }

// NewSal builds an arith.sal (arithmetic shift left) operation.
func NewSal(lhs, rhs *Operation) *Operation { return newBinaryArith(OpSal, lhs, rhs) }

// NewSar builds an arith.sar (arithmetic shift right) operation.
func NewSar(lhs, rhs *Operation) *Operation { return newBinaryArith(OpSar, lhs, rhs) }

// NewShl builds an arith.shl (logical shift left) operation.
func NewShl(lhs, rhs *Operation) *Operation { return newBinaryArith(OpShl, lhs, rhs) }

// NewShr builds an arith.shr (logical shift right) operation.
func NewShr(lhs, rhs *Operation) *Operation { return newBinaryArith(OpShr, lhs, rhs) }

// NewNot builds an arith.not (bitwise complement) operation.
func NewNot(x *Operation) *Operation {
	var dt DataType
	if x != nil {
		dt = x.dataType
	}
	op := newOperation(OpNot, dt, 1)
	op.SetInput(0, x)
	return op
}

// NewCompare builds an arith.cmp operation under the given predicate; its
// result is always Bool.
func NewCompare(pred Predicate, lhs, rhs *Operation) *Operation {
	op := newOperation(OpCompare, Bool, 2)
	op.pred = pred
	op.SetInput(0, lhs)
	op.SetInput(1, rhs)
	return op
}

// Predicate returns the comparison predicate of an arith.cmp operation.
func (op *Operation) Predicate() Predicate { return op.pred }

// NewCast builds an arith.cast operation whose declared result is target,
// regardless of its operand's type.
func NewCast(target DataType, x *Operation) *Operation {
	op := newOperation(OpCast, target, 1)
	op.SetInput(0, x)
	return op
}

func operandType(op *Operation, i int) DataType {
	return op.InputAt(i).Def().DataType()
}

func verifyArithOperation(op *Operation) error {
	switch op.opcode {
	case OpConstant:
		if op.attr == nil || !op.dataType.IsConcrete() {
			return newVerificationFailure(irerrors.CodeOperandTypeMismatch, "v%d: constant has no concrete attribute", op.id)
		}
		if op.attr.DataType() != op.dataType {
			return newAttributeTypeMismatch("v%d: constant attribute type %s does not match declared type %s", op.id, op.attr.DataType(), op.dataType)
		}

	case OpAdd, OpSub, OpMul, OpDiv:
		a, b := operandType(op, 0), operandType(op, 1)
		if a != b || a != op.dataType {
			return newVerificationFailure(irerrors.CodeOperandTypeMismatch, "v%d: %s operands have mismatched types %s and %s", op.id, op.Mnemonic(), a, b)
		}
		if a.IsBool() {
			return newVerificationFailure(irerrors.CodeOperandNotInteger, "v%d: %s does not accept bool operands", op.id, op.Mnemonic())
		}

	case OpAnd, OpOr, OpXor:
		a, b := operandType(op, 0), operandType(op, 1)
		if a != b || a != op.dataType {
			return newVerificationFailure(irerrors.CodeOperandTypeMismatch, "v%d: %s operands have mismatched types %s and %s", op.id, op.Mnemonic(), a, b)
		}
		if !a.IsInteger() {
			return newVerificationFailure(irerrors.CodeOperandNotInteger, "v%d: %s requires integer operands", op.id, op.Mnemonic())
		}

	case OpNot:
		a := operandType(op, 0)
		if a != op.dataType || !a.IsInteger() {
			return newVerificationFailure(irerrors.CodeOperandNotInteger, "v%d: not requires an integer operand", op.id)
		}

	case OpSal, OpSar:
		a, b := operandType(op, 0), operandType(op, 1)
		if !a.IsSigned() || !b.IsSigned() {
			return newVerificationFailure(irerrors.CodeOperandNotSigned, "v%d: %s requires signed integer operands", op.id, op.Mnemonic())
		}

	case OpShl, OpShr:
		a, b := operandType(op, 0), operandType(op, 1)
		if !a.IsUnsigned() || !b.IsUnsigned() {
			return newVerificationFailure(irerrors.CodeOperandNotUnsigned, "v%d: %s requires unsigned integer operands", op.id, op.Mnemonic())
		}

	case OpCompare:
		a, b := operandType(op, 0), operandType(op, 1)
		if a != b {
			return newVerificationFailure(irerrors.CodeOperandTypeMismatch, "v%d: cmp operands have mismatched types %s and %s", op.id, a, b)
		}

	case OpCast:
		// Free: no operand-type constraint.
	}
	return nil
}
