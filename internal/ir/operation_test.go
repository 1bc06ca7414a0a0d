package ir

import "testing"

func userOf(op *Operation, u *Operation, idx int) bool {
	for _, existing := range op.Users() {
		if existing.Op == u && existing.Index == idx {
			return true
		}
	}
	return false
}

// UD1: for any op U and slot i, U.inputs[i] == D (non-empty) iff (U,i) is
// exactly once in D's user list.
func TestSetInputMaintainsSymmetry(t *testing.T) {
	a := NewConstant(UIntAttr(1))
	b := NewConstant(UIntAttr(2))
	c := NewConstant(UIntAttr(3))
	add := NewAdd(a, b)

	if !userOf(a, add, 0) || !userOf(b, add, 1) {
		t.Fatal("initial SetInput via constructor should register users")
	}

	add.SetInput(0, c)
	if userOf(a, add, 0) {
		t.Fatal("a should no longer list add as a user of slot 0")
	}
	if !userOf(c, add, 0) {
		t.Fatal("c should now list add as a user of slot 0")
	}
	if add.InputAt(0).Def() != c {
		t.Fatal("add's slot 0 should now read c")
	}
}

// UD2: after Disconnect, no op refers to the disconnected op, nor does it
// refer to anything else.
func TestDisconnectLeavesNoDanglingReferences(t *testing.T) {
	a := NewConstant(UIntAttr(1))
	b := NewConstant(UIntAttr(2))
	add := NewAdd(a, b)
	sub := NewSub(add, b)

	add.Disconnect()

	if add.HasUsers() {
		t.Fatal("disconnected op should have no users")
	}
	if add.InputAt(0).Def() != nil || add.InputAt(1).Def() != nil {
		t.Fatal("disconnected op's own inputs should be cleared")
	}
	if sub.InputAt(0).Def() != nil {
		t.Fatal("sub's reference to the disconnected op should be cleared")
	}
	if userOf(a, add, 0) || userOf(b, add, 1) {
		t.Fatal("a and b should no longer list the disconnected op as a user")
	}
}

// UD3: every op's input-vector length matches its opcode's declared arity.
func TestInputCountMatchesArity(t *testing.T) {
	cases := []struct {
		name  string
		op    *Operation
		arity int
	}{
		{"Constant", NewConstant(UIntAttr(1)), 0},
		{"Add", NewAdd(NewConstant(UIntAttr(1)), NewConstant(UIntAttr(2))), 2},
		{"Not", NewNot(NewConstant(UIntAttr(1))), 1},
		{"Param", NewParam(UInt), 0},
		{"Return-void", NewReturn(nil), 0},
		{"Return-value", NewReturn(NewConstant(UIntAttr(1))), 1},
		{"Phi", NewPhi(NewConstant(UIntAttr(1)), NewConstant(UIntAttr(2))), 2},
	}
	for _, tc := range cases {
		if tc.op.InputCount() != tc.arity {
			t.Errorf("%s: got arity %d, want %d", tc.name, tc.op.InputCount(), tc.arity)
		}
	}
}

func TestReplaceAllUsesWithMovesUsers(t *testing.T) {
	a := NewConstant(UIntAttr(1))
	b := NewConstant(UIntAttr(2))
	add := NewAdd(a, b)
	sub := NewSub(add, b)

	replacement := NewConstant(UIntAttr(99))
	add.ReplaceAllUsesWith(replacement)

	if add.HasUsers() {
		t.Fatal("old op should have no users left")
	}
	if sub.InputAt(0).Def() != replacement {
		t.Fatal("sub should now reference the replacement")
	}
	if !userOf(replacement, sub, 0) {
		t.Fatal("replacement should list sub as a user")
	}
}
