package ir

import (
	"fmt"
	"strings"
)

// dumpID renders an operation's identifier for use inside a dump: a phi op
// gets a trailing "p" marker, any other op just "v<id>".
func (op *Operation) dumpID() string {
	if op.opcode == OpPhi {
		return fmt.Sprintf("v%dp", op.id)
	}
	return fmt.Sprintf("v%d", op.id)
}

func opSpecifics(op *Operation) string {
	switch op.opcode {
	case OpConstant:
		return op.attr.String()
	case OpCompare:
		return op.pred.String()
	case OpJump, OpJumpc:
		return fmt.Sprintf("bb%d", op.target)
	case OpCall:
		return fmt.Sprintf("%q", op.funcName)
	default:
		return ""
	}
}

// DumpOperation renders op in the single-line form documented for the
// region/block dump: "v<id>.<type> <dialect>.<mnemonic> <specifics>
// (<input> : <type>, …) -> (v<user>, …)". Operations without a result omit
// the leading "v<id>.<type>".
func DumpOperation(op *Operation) string {
	var b strings.Builder

	if op.HasResult() {
		b.WriteString(op.dumpID())
		b.WriteString(".")
		b.WriteString(op.dataType.String())
		b.WriteString(" ")
	}

	b.WriteString(op.Dialect())
	b.WriteString(".")
	b.WriteString(op.Mnemonic())

	if spec := opSpecifics(op); spec != "" {
		b.WriteString(" ")
		b.WriteString(spec)
	}

	b.WriteString(" (")
	for i := 0; i < op.InputCount(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		in := op.InputAt(i)
		if in.IsEmpty() {
			b.WriteString("none")
			continue
		}
		def := in.Def()
		b.WriteString(def.dumpID())
		b.WriteString(" : ")
		b.WriteString(def.DataType().String())
	}
	b.WriteString(") -> (")
	for i, u := range op.Users() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(u.Op.dumpID())
	}
	b.WriteString(")")

	return b.String()
}

func dumpBlockHeader(r *Region, b *BasicBlock) string {
	var from string
	switch {
	case b == r.start:
		from = "start"
	case len(b.preds) == 0:
		from = "from"
	default:
		ids := make([]string, len(b.preds))
		for i, p := range b.preds {
			ids[i] = fmt.Sprintf("bb%d", p.id)
		}
		from = "from " + strings.Join(ids, " ")
	}

	var to string
	switch {
	case b == r.final:
		to = "final"
	case b.succFalse != nil:
		to = fmt.Sprintf("to T:bb%d / F:bb%d", b.succTrue.id, b.succFalse.id)
	case b.succTrue != nil:
		to = fmt.Sprintf("to bb%d", b.succTrue.id)
	default:
		to = "to ?"
	}

	return fmt.Sprintf("  ^bb%d %s %s :", b.id, from, to)
}

// Dump renders the whole region in the documented textual form: a header
// line, then one block section per block in insertion order, each listing
// its phi ops before its regular ops.
func (r *Region) Dump() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s:\n", r.name)
	for _, b := range r.blocks {
		buf.WriteString(dumpBlockHeader(r, b))
		buf.WriteString("\n")
		for _, op := range b.PhiOps() {
			fmt.Fprintf(&buf, "      %s\n", DumpOperation(op))
		}
		for _, op := range b.RegOps() {
			fmt.Fprintf(&buf, "      %s\n", DumpOperation(op))
		}
	}
	return buf.String()
}

// DumpDominators renders the immediate-dominator relation computed by the
// last CollectDomInfo call, one "bbN idom bbM" line per reachable block,
// except the start block, which is printed as "bbN (root)".
func (r *Region) DumpDominators() string {
	if r.dom.idom == nil || r.dom.expired {
		return "[dominator info expired]\n"
	}

	var buf strings.Builder
	buf.WriteString("========== Dominator Tree ==========\n")
	for _, b := range r.blocks {
		idom, ok := r.dom.idom[b]
		if !ok {
			continue
		}
		if idom == b {
			fmt.Fprintf(&buf, "bb%d (root)\n", b.id)
			continue
		}
		fmt.Fprintf(&buf, "bb%d idom bb%d\n", b.id, idom.id)
	}
	buf.WriteString("=====================================\n")
	return buf.String()
}

// DumpLoops renders the natural-loop forest computed by the last
// CollectLoopInfo call as an indented tree, one section per loop.
func (r *Region) DumpLoops() string {
	if r.loop.root == nil || r.loop.expired {
		return "[loop info expired]\n"
	}

	var buf strings.Builder
	buf.WriteString("========== Loop Tree ==========\n")
	dumpLoop(&buf, r.loop.root, 0)
	buf.WriteString("================================\n")
	return buf.String()
}

func dumpLoop(buf *strings.Builder, lp *Loop, indent int) {
	pad := strings.Repeat(" ", indent)

	if lp.IsRoot() {
		fmt.Fprintf(buf, "%s[Root Loop]\n", pad)
	} else {
		fmt.Fprintf(buf, "%sLoop Header: bb%d\n", pad, lp.header.id)
	}
	fmt.Fprintf(buf, "%s  Depth: %d | Reducible: %t\n", pad, lp.depth, lp.reducible)

	if len(lp.latches) > 0 {
		buf.WriteString(pad + "  Latches: ")
		for _, latch := range lp.latches {
			fmt.Fprintf(buf, "bb%d ", latch.id)
		}
		buf.WriteString("\n")
	}

	if !lp.reducible {
		return
	}

	fmt.Fprintf(buf, "%s  Blocks (%d): ", pad, len(lp.blocks))
	for _, b := range lp.blocks {
		fmt.Fprintf(buf, "bb%d ", b.id)
	}
	buf.WriteString("\n")

	if len(lp.exits) > 0 {
		buf.WriteString(pad + "  Exits:\n")
		for _, e := range lp.exits {
			fmt.Fprintf(buf, "%s    bb%d -> bb%d\n", pad, e.From.id, e.To.id)
		}
	}

	if len(lp.nested) > 0 {
		buf.WriteString(pad + "  Nested Loops:\n")
		for _, n := range lp.nested {
			dumpLoop(buf, n, indent+2)
		}
	}
}
