package ir

import "github.com/irgraph/irgraph/internal/irerrors"

// Input is a nullable reference to the operation defining the value
// consumed at one operand slot. An empty Input is legal transiently (e.g.
// during incremental construction) but must not remain at verification
// time (I1, I6 rely on non-empty inputs where the op requires them).
type Input struct {
	def *Operation
}

// IsEmpty reports whether this input slot currently refers to no operation.
func (in Input) IsEmpty() bool { return in.def == nil }

// Def returns the operation defining this input, or nil if empty.
func (in Input) Def() *Operation { return in.def }

// User is a pair (operation, input-index) recording where an operation's
// result is consumed.
type User struct {
	Op    *Operation
	Index int
}

// Operation is the central use-def graph entity: a typed result (or None),
// a fixed-arity vector of Input slots, a back-index of Users, and a
// dialect-specific immutable payload. It is a closed variant over Opcode;
// dialect constructors in dialect_*.go are the only supported way to build
// one.
type Operation struct {
	id       OpID
	opcode   Opcode
	dataType DataType
	inputs   []Input
	users    []User
	parent   *BasicBlock

	listPrev, listNext *Operation // intrusive op-list linkage, see oplist.go

	// Dialect-specific immutable payload. Only the field(s) relevant to
	// opcode are meaningful; see dialect_*.go for per-opcode accessors.
	attr      ConstAttribute
	pred      Predicate
	target    BlockID
	hasTarget bool
	funcName  string
}

func newOperation(opcode Opcode, dataType DataType, arity int) *Operation {
	return &Operation{
		opcode:   opcode,
		dataType: dataType,
		inputs:   make([]Input, arity),
	}
}

// ID returns this operation's identifier, unique within its region.
func (op *Operation) ID() OpID { return op.id }

// Opcode returns this operation's opcode.
func (op *Operation) Opcode() Opcode { return op.opcode }

// Dialect returns the dialect namespace this operation's opcode belongs to.
func (op *Operation) Dialect() string { return op.opcode.Dialect() }

// Mnemonic returns this operation's printable mnemonic.
func (op *Operation) Mnemonic() string { return op.opcode.Mnemonic() }

// DataType returns this operation's result type, None if it has no result.
func (op *Operation) DataType() DataType { return op.dataType }

// HasResult reports whether this operation produces a value.
func (op *Operation) HasResult() bool { return op.dataType != None }

// IsTerminator reports whether this operation must be the last regular
// operation in its block.
func (op *Operation) IsTerminator() bool { return op.opcode.IsTerminator() }

// HasSideEffects reports whether this operation has side effects, making it
// ineligible for dead-code elimination.
func (op *Operation) HasSideEffects() bool { return op.opcode.HasSideEffects() }

// InputCount returns the fixed number of input slots this operation
// instance has.
func (op *Operation) InputCount() int { return len(op.inputs) }

// InputAt returns the input slot at index i.
func (op *Operation) InputAt(i int) Input {
	if i < 0 || i >= len(op.inputs) {
		panic(newShapeError(irerrors.CodeInputIndexRange, "input index %d out of range [0,%d)", i, len(op.inputs)))
	}
	return op.inputs[i]
}

// Users returns a snapshot of this operation's user list.
func (op *Operation) Users() []User {
	out := make([]User, len(op.users))
	copy(out, op.users)
	return out
}

// HasUsers reports whether any operation currently consumes this one's
// result.
func (op *Operation) HasUsers() bool { return len(op.users) != 0 }

// Parent returns the basic block this operation is attached to, or nil.
func (op *Operation) Parent() *BasicBlock { return op.parent }

// IsA reports whether this operation's opcode equals opcode.
func (op *Operation) IsA(opcode Opcode) bool { return op.opcode == opcode }

func (op *Operation) addUser(u User) {
	for _, existing := range op.users {
		if existing == u {
			panic(newShapeError(irerrors.CodeDuplicateUser,
				"duplicate user registration: op %d already lists (op %d, index %d) as a user",
				op.id, u.Op.id, u.Index))
		}
	}
	op.users = append(op.users, u)
}

func (op *Operation) removeUser(u User) {
	for i, existing := range op.users {
		if existing == u {
			op.users = append(op.users[:i], op.users[i+1:]...)
			return
		}
	}
}

// SetInput rewrites input slot i to reference newDef (nil clears it),
// keeping the use-def graph symmetric (I1): it detaches from the slot's
// previous definer's user list and, if newDef is non-nil, registers as a
// user of it.
func (op *Operation) SetInput(i int, newDef *Operation) {
	if i < 0 || i >= len(op.inputs) {
		panic(newShapeError(irerrors.CodeInputIndexRange, "input index %d out of range [0,%d)", i, len(op.inputs)))
	}

	old := op.inputs[i]
	if old.def != nil {
		old.def.removeUser(User{Op: op, Index: i})
	}

	op.inputs[i] = Input{def: newDef}
	if newDef != nil {
		newDef.addUser(User{Op: op, Index: i})
	}
}

// ReplaceAllUsesWith redirects every user of op to refer to other instead,
// moving entries from op.users into other.users. Leaves op.users empty. A
// self-replacement is a no-op.
func (op *Operation) ReplaceAllUsesWith(other *Operation) {
	if op == other {
		return
	}

	users := op.users
	op.users = nil

	for _, u := range users {
		u.Op.inputs[u.Index] = Input{def: other}
		other.users = append(other.users, u)
	}
}

// ClearAllUses nulls out every input slot that currently points at op,
// across all of its users, and empties op's user list.
func (op *Operation) ClearAllUses() {
	users := op.users
	op.users = nil

	for _, u := range users {
		u.Op.inputs[u.Index] = Input{}
	}
}

// Disconnect severs op from the use-def graph entirely: it clears every
// slot that refers to it (ClearAllUses), then empties its own input slots,
// removing itself from each definer's user list. After Disconnect, op can
// be safely discarded without leaving dangling references (UD2).
func (op *Operation) Disconnect() {
	op.ClearAllUses()

	for i, in := range op.inputs {
		if in.def != nil {
			in.def.removeUser(User{Op: op, Index: i})
		}
		op.inputs[i] = Input{}
	}
}
