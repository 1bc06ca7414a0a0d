// Package irerrors holds the stable error-code registry shared by the IR
// core and its callers.
//
// Error code ranges:
// C0001-C0099: use-def / construction errors (ShapeError)
// C0100-C0199: structural verification errors (VerificationFailure)
// C0200-C0299: stale-analysis programmer errors (StaleAnalysis)
// C0300-C0399: rewriter-misuse programmer errors (RewriterMisuse)
// C0400-C0499: attribute/type mismatch errors (AttributeTypeMismatch)
package irerrors

const (
	// Construction-time shape errors (C0001-C0099).
	CodeEmptyRegionName  = "C0001"
	CodeEmptyFunctionName = "C0002"
	CodeNilJumpTarget    = "C0003"
	CodeBadInputArity    = "C0004"
	CodeInputIndexRange  = "C0005"
	CodeDuplicateUser    = "C0006"

	// Structural verification failures (C0100-C0199).
	CodeNoParentRegion      = "C0100"
	CodeStartHasPreds       = "C0101"
	CodeFinalHasSuccs       = "C0102"
	CodeDanglingEdge        = "C0103"
	CodeFalseWithoutTrue    = "C0104"
	CodeMissingSuccessor    = "C0105"
	CodeEmptyBlock          = "C0106"
	CodeFinalNotReturn      = "C0107"
	CodeIdenticalSuccessors = "C0108"
	CodeTwoSuccsNoCondJump  = "C0109"
	CodeOneSuccCondJump     = "C0110"
	CodeInteriorTerminator  = "C0111"
	CodePhiInRegList        = "C0112"
	CodeRegInPhiList        = "C0113"
	CodeEmptyInput          = "C0114"
	CodeOperandTypeMismatch = "C0115"
	CodeOperandNotBool      = "C0116"
	CodeOperandNotInteger   = "C0117"
	CodeOperandNotSigned    = "C0118"
	CodeOperandNotUnsigned  = "C0119"
	CodeUnknownJumpTarget   = "C0120"
	CodeNoStartBlock        = "C0121"
	CodeBlockVerification   = "C0122"

	// Stale-analysis programmer errors (C0200-C0299).
	CodeDomInfoExpired  = "C0200"
	CodeLoopInfoExpired = "C0201"

	// Rewriter-misuse programmer errors (C0300-C0399).
	CodeOrphanOp        = "C0300"
	CodeNilReplacement  = "C0301"
	CodePhiKindMismatch = "C0302"

	// Attribute/type mismatch (C0400-C0499).
	CodeAttributeTypeMismatch = "C0400"
)
