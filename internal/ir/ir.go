// Package ir implements a typed, SSA-style, operation-and-basic-block
// intermediate representation in the MLIR/LLVM lineage: a use-def graph of
// operations grouped into basic blocks inside regions, control-flow
// analyses (dominators, natural loops), and a pattern-rewrite framework
// used to build optimization passes.
//
// The whole of a Region is owned by a single mutator at a time; there is no
// concurrent-mutation support (see DESIGN.md).
package ir

// OpID uniquely identifies an operation within its owning region. IDs are
// allocated monotonically and the counter never shrinks; the only reuse is
// that a replacement operation inherits the id of the operation it replaces.
type OpID uint64

// BlockID uniquely identifies a basic block within its owning region, with
// the same monotonic allocation policy as OpID (a replacement block inherits
// the id of the block it replaces).
type BlockID uint64
