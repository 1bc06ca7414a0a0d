package ir

// NewDCEPass returns the bundled dead-code elimination pass: a single
// pattern erasing any op that produces a result, has no users, is not a
// terminator, is side-effect-free, and is not a Param. Running it to a
// local fixed point collapses whole chains of dead ops in one pass.
func NewDCEPass() *PatternPass {
	return NewPatternPass("dce", PatternFunc(func(op *Operation, rw *Rewriter) bool {
		if !op.HasResult() || op.HasUsers() || op.IsTerminator() || op.HasSideEffects() || op.IsA(OpParam) {
			return false
		}
		rw.EraseOp(op)
		return true
	}))
}
