package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// verifyOperation checks that every input slot of op is connected, then
// dispatches to op's dialect for its opcode-specific constraints. Called
// by BasicBlock.Verify for every op it holds.
func verifyOperation(op *Operation) error {
	for i := 0; i < op.InputCount(); i++ {
		if op.InputAt(i).IsEmpty() {
			return newVerificationFailure(irerrors.CodeEmptyInput, "v%d: input %d is not connected", op.id, i)
		}
	}

	switch op.Dialect() {
	case DialectArith:
		return verifyArithOperation(op)
	case DialectBuiltin:
		return verifyBuiltinOperation(op)
	case DialectCtrlflow:
		return verifyCtrlflowOperation(op)
	default:
		return nil
	}
}
