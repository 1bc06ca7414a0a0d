package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// NewReturn builds a ctrlflow.return operation: 0-input for a void return,
// or 1-input carrying value for a value-returning function.
func NewReturn(value *Operation) *Operation {
	if value == nil {
		return newOperation(OpReturn, None, 0)
	}
	op := newOperation(OpReturn, None, 1)
	op.SetInput(0, value)
	return op
}

// NewJump builds a ctrlflow.jump operation targeting target. A nil target
// is a ShapeError.
func NewJump(target *BasicBlock) *Operation {
	if target == nil {
		panic(newShapeError(irerrors.CodeNilJumpTarget, "jump target must not be nil"))
	}
	op := newOperation(OpJump, None, 0)
	op.target = target.id
	op.hasTarget = true
	return op
}

// NewJumpc builds a ctrlflow.jumpc operation: an unconditional target plus
// a Bool condition selecting whether the block's true or false successor
// edge is taken. A nil target is a ShapeError.
func NewJumpc(target *BasicBlock, cond *Operation) *Operation {
	if target == nil {
		panic(newShapeError(irerrors.CodeNilJumpTarget, "jumpc target must not be nil"))
	}
	op := newOperation(OpJumpc, None, 1)
	op.target = target.id
	op.hasTarget = true
	op.SetInput(0, cond)
	return op
}

// TargetID returns the target block id carried by a jump or jumpc
// operation.
func (op *Operation) TargetID() (BlockID, bool) { return op.target, op.hasTarget }

// NewCall builds a ctrlflow.call operation invoking funcName with args,
// producing a value of resultType (None for a void call). An empty
// function name is a ShapeError.
func NewCall(funcName string, resultType DataType, args ...*Operation) *Operation {
	if funcName == "" {
		panic(newShapeError(irerrors.CodeEmptyFunctionName, "call function name must not be empty"))
	}
	op := newOperation(OpCall, resultType, len(args))
	op.funcName = funcName
	for i, a := range args {
		op.SetInput(i, a)
	}
	return op
}

// FuncName returns the callee name of a ctrlflow.call operation.
func (op *Operation) FuncName() string { return op.funcName }

// NewPhi builds a ctrlflow.phi operation combining v0 and rest, one value
// per predecessor block; its result type is v0's type.
func NewPhi(v0 *Operation, rest ...*Operation) *Operation {
	var dt DataType
	if v0 != nil {
		dt = v0.dataType
	}
	op := newOperation(OpPhi, dt, 1+len(rest))
	op.SetInput(0, v0)
	for i, v := range rest {
		op.SetInput(i+1, v)
	}
	return op
}

func verifyCtrlflowOperation(op *Operation) error {
	switch op.opcode {
	case OpReturn:
		// Free: no type constraint on an optional return value.

	case OpJump:
		if err := requireResolvedTarget(op); err != nil {
			return err
		}

	case OpJumpc:
		if err := requireResolvedTarget(op); err != nil {
			return err
		}
		if cond := operandType(op, 0); !cond.IsBool() {
			return newVerificationFailure(irerrors.CodeOperandNotBool, "v%d: jumpc condition must be Bool, got %s", op.id, cond)
		}

	case OpCall:
		if op.funcName == "" {
			return newVerificationFailure(irerrors.CodeEmptyFunctionName, "v%d: call has an empty function name", op.id)
		}

	case OpPhi:
		for i := 0; i < op.InputCount(); i++ {
			if t := operandType(op, i); t != op.dataType {
				return newVerificationFailure(irerrors.CodeOperandTypeMismatch,
					"v%d: phi input %d has type %s, expected %s", op.id, i, t, op.dataType)
			}
		}
	}
	return nil
}

func requireResolvedTarget(op *Operation) error {
	if op.parent == nil || op.parent.parent == nil {
		return nil
	}
	if op.parent.parent.GetBasicBlockByID(op.target) == nil {
		return newVerificationFailure(irerrors.CodeUnknownJumpTarget, "v%d: %s target bb%d does not resolve in the parent region", op.id, op.Mnemonic(), op.target)
	}
	return nil
}
