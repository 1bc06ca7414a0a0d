package ir

import "github.com/iancoleman/strcase"

// Opcode is the closed enumeration of operation kinds covering every
// dialect (arith, builtin, ctrlflow) plugged into the use-def graph.
type Opcode uint8

const (
	opcodeInvalid Opcode = iota

	// arith dialect.
	OpConstant
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpXor
	OpNot
	OpSal
	OpSar
	OpShl
	OpShr
	OpCompare
	OpCast

	// builtin dialect.
	OpParam
	OpCopy

	// ctrlflow dialect.
	OpReturn
	OpJump
	OpJumpc
	OpCall
	OpPhi
)

// DialectArith, DialectBuiltin and DialectCtrlflow are the dialect
// namespaces an Opcode belongs to, used both for printing and for pattern
// organization (C12 passes each operate within one dialect).
const (
	DialectArith    = "arith"
	DialectBuiltin  = "builtin"
	DialectCtrlflow = "ctrlflow"
)

type opcodeInfo struct {
	dialect      string
	mnemonic     string
	isTerminator bool
	hasSideEffect bool
}

// opcodeNames gives each opcode's canonical Go-identifier-shaped name; the
// printable mnemonic is mechanically derived from it with strcase.ToSnake,
// then overridden for the couple of opcodes whose source mnemonic isn't a
// snake-cased rendering of its name (const, cmp).
var opcodeNames = map[Opcode]string{
	OpConstant: "Constant",
	OpAdd:      "Add",
	OpSub:      "Sub",
	OpMul:      "Mul",
	OpDiv:      "Div",
	OpAnd:      "And",
	OpOr:       "Or",
	OpXor:      "Xor",
	OpNot:      "Not",
	OpSal:      "Sal",
	OpSar:      "Sar",
	OpShl:      "Shl",
	OpShr:      "Shr",
	OpCompare:  "Compare",
	OpCast:     "Cast",
	OpParam:    "Param",
	OpCopy:     "Copy",
	OpReturn:   "Return",
	OpJump:     "Jump",
	OpJumpc:    "Jumpc",
	OpCall:     "Call",
	OpPhi:      "Phi",
}

var mnemonicOverrides = map[Opcode]string{
	OpConstant: "const",
	OpCompare:  "cmp",
}

var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() map[Opcode]opcodeInfo {
	dialectOf := func(op Opcode) string {
		switch op {
		case OpConstant, OpAdd, OpSub, OpMul, OpDiv, OpAnd, OpOr, OpXor, OpNot,
			OpSal, OpSar, OpShl, OpShr, OpCompare, OpCast:
			return DialectArith
		case OpParam, OpCopy:
			return DialectBuiltin
		case OpReturn, OpJump, OpJumpc, OpCall, OpPhi:
			return DialectCtrlflow
		default:
			return ""
		}
	}

	table := make(map[Opcode]opcodeInfo, len(opcodeNames))
	for op, name := range opcodeNames {
		mnemonic, ok := mnemonicOverrides[op]
		if !ok {
			mnemonic = strcase.ToSnake(name)
		}
		isTerminator := op == OpReturn || op == OpJump || op == OpJumpc || op == OpCall
		hasSideEffect := isTerminator
		table[op] = opcodeInfo{
			dialect:       dialectOf(op),
			mnemonic:      mnemonic,
			isTerminator:  isTerminator,
			hasSideEffect: hasSideEffect,
		}
	}
	return table
}

// Dialect returns the dialect namespace this opcode belongs to.
func (op Opcode) Dialect() string { return opcodeTable[op].dialect }

// Mnemonic returns the opcode's printable mnemonic.
func (op Opcode) Mnemonic() string { return opcodeTable[op].mnemonic }

// IsTerminator reports whether every instance of this opcode must be the
// last regular operation in its block.
func (op Opcode) IsTerminator() bool { return opcodeTable[op].isTerminator }

// HasSideEffects reports whether every instance of this opcode has side
// effects, making it ineligible for dead-code elimination.
func (op Opcode) HasSideEffects() bool { return opcodeTable[op].hasSideEffect }

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return "<invalid opcode>"
	}
	return info.dialect + "." + info.mnemonic
}

// Predicate is the closed set of comparison predicates a Compare operation
// may carry.
type Predicate uint8

const (
	PredEQ Predicate = iota
	PredNEQ
	PredA
	PredB
	PredAE
	PredBE
)

func (p Predicate) String() string {
	switch p {
	case PredEQ:
		return "EQ"
	case PredNEQ:
		return "NEQ"
	case PredA:
		return "A"
	case PredB:
		return "B"
	case PredAE:
		return "AE"
	case PredBE:
		return "BE"
	default:
		return "?"
	}
}
