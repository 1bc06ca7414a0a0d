package ir

import "fmt"

// ConstAttribute is a typed constant payload carried by a Constant
// operation. Exactly one of the accessor methods below is meaningful for a
// given attribute, determined by DataType.
type ConstAttribute interface {
	// DataType is the canonical type this attribute's value belongs to.
	DataType() DataType
	// String renders the value for dump output, without its type.
	String() string
}

// UIntAttr carries an unsigned integer constant, canonically stored in a
// 64-bit container with ordinary two's-complement wraparound semantics.
type UIntAttr uint64

func (UIntAttr) DataType() DataType { return UInt }
func (a UIntAttr) String() string   { return fmt.Sprintf("%d", uint64(a)) }

// SIntAttr carries a signed integer constant, canonically stored in a
// 64-bit container.
type SIntAttr int64

func (SIntAttr) DataType() DataType { return SInt }
func (a SIntAttr) String() string   { return fmt.Sprintf("%d", int64(a)) }

// FloatAttr carries a double-precision float constant.
type FloatAttr float64

func (FloatAttr) DataType() DataType { return Float }
func (a FloatAttr) String() string   { return fmt.Sprintf("%g", float64(a)) }

// BoolAttr carries a boolean constant.
type BoolAttr bool

func (BoolAttr) DataType() DataType { return Bool }
func (a BoolAttr) String() string   { return fmt.Sprintf("%t", bool(a)) }
