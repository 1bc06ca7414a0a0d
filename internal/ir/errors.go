package ir

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/irgraph/irgraph/internal/irerrors"
)

// ShapeError reports malformed construction input: an empty region name, an
// empty function name on a Call, a nil jump target, or a wrong input count
// for a typed op. The object is never created when this is raised.
type ShapeError struct {
	Code    string
	Message string
}

func (e *ShapeError) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func newShapeError(code, format string, args ...interface{}) *ShapeError {
	return &ShapeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// VerificationFailure reports a violated IR structural invariant. It is the
// only recoverable, user-visible error kind: the IR is left as-is and it is
// the caller's responsibility not to run transforms on unverified IR.
type VerificationFailure struct {
	Code    string
	Message string
}

func (e *VerificationFailure) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func newVerificationFailure(code, format string, args ...interface{}) *VerificationFailure {
	return &VerificationFailure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wrapVerification folds a lower-level verification message (e.g. from a
// block verifier) into a region-level VerificationFailure whose message is
// the original's text, after pkg/errors.WithStack. The original error value
// itself is not kept: the result has no Cause or Unwrap.
func wrapVerification(code string, cause error) *VerificationFailure {
	wrapped := errors.WithStack(cause)
	return newVerificationFailure(code, "%s", wrapped)
}

// StaleAnalysis is a fatal programmer error: a dominator or loop query was
// issued after a structural mutation without recomputing the analysis.
type StaleAnalysis struct {
	Code    string
	Message string
}

func (e *StaleAnalysis) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func panicStale(code, message string) {
	panic(errors.WithStack(&StaleAnalysis{Code: code, Message: message}))
}

// RewriterMisuse is a fatal programmer error: erasing or replacing an
// unattached op, passing a nil replacement, or replacing a phi with a
// non-phi.
type RewriterMisuse struct {
	Code    string
	Message string
}

func (e *RewriterMisuse) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func panicRewriterMisuse(code, format string, args ...interface{}) {
	panic(errors.WithStack(&RewriterMisuse{Code: code, Message: fmt.Sprintf(format, args...)}))
}

// AttributeTypeMismatch reports that a Constant operation's attribute does
// not match its declared DataType. Reported through Verify, never panics.
type AttributeTypeMismatch struct {
	Code    string
	Message string
}

func (e *AttributeTypeMismatch) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func newAttributeTypeMismatch(format string, args ...interface{}) *AttributeTypeMismatch {
	return &AttributeTypeMismatch{Code: irerrors.CodeAttributeTypeMismatch, Message: fmt.Sprintf(format, args...)}
}
