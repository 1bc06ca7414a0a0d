package ir

import (
	"fmt"
	"strings"
	"testing"
)

func TestDumpOperationRendersConstant(t *testing.T) {
	c := NewConstant(UIntAttr(7))
	c.id = 3
	got := DumpOperation(c)
	want := "v3.ui arith.const 7 () -> ()"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDumpOperationRendersInputsAndUsers(t *testing.T) {
	region, err := NewRegion("t")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)
	block := region.AddStartBasicBlock()
	region.SetFinalBasicBlock(block)
	b.SetBlock(block)

	x := b.Param(UInt)
	one := b.Constant(UIntAttr(1))
	sum := b.Add(x, one)
	b.Return(sum)

	dump := DumpOperation(sum)
	if !strings.Contains(dump, "arith.add") {
		t.Fatalf("expected arith.add mnemonic in %q", dump)
	}
	if !strings.HasPrefix(dump, sum.dumpID()+"."+sum.DataType().String()) {
		t.Fatalf("expected result prefix in %q", dump)
	}
	if !strings.Contains(dump, x.dumpID()+" : "+x.DataType().String()) {
		t.Fatalf("expected x as an annotated input in %q", dump)
	}
}

func TestRegionDumpListsBlocksInOrder(t *testing.T) {
	region, blocks := buildLoopScenario(t)
	dump := region.Dump()

	if !strings.HasPrefix(dump, "loop:\n") {
		t.Fatalf("expected region name header, got %q", dump[:20])
	}
	prev := -1
	for _, b := range blocks {
		marker := fmt.Sprintf("^bb%d", b.ID())
		pos := strings.Index(dump, marker)
		if pos < 0 {
			t.Fatalf("expected block header marker %q in dump:\n%s", marker, dump)
		}
		if pos < prev {
			t.Fatalf("expected block header marker %q after the previous block's in dump:\n%s", marker, dump)
		}
		prev = pos
	}
}

func TestDumpDominatorsRendersIdomLines(t *testing.T) {
	region, blocks := buildDiamond(t)
	dump := region.DumpDominators()

	wantLine := fmt.Sprintf("bb%d idom bb%d", blocks["C"].ID(), blocks["B"].ID())
	if !strings.Contains(dump, wantLine) {
		t.Fatalf("expected %q in:\n%s", wantLine, dump)
	}
	if !strings.Contains(dump, "(root)") {
		t.Fatalf("expected the start block marked as root in:\n%s", dump)
	}
}

func TestDumpLoopsRendersHeaderAndBlocks(t *testing.T) {
	region, blocks := buildLoopScenario(t)
	dump := region.DumpLoops()

	wantHeader := fmt.Sprintf("Loop Header: bb%d", blocks[1].ID())
	if !strings.Contains(dump, wantHeader) {
		t.Fatalf("expected %q in:\n%s", wantHeader, dump)
	}
	wantBlocks := fmt.Sprintf("Blocks (1): bb%d ", blocks[2].ID())
	if !strings.Contains(dump, wantBlocks) {
		t.Fatalf("expected %q in:\n%s", wantBlocks, dump)
	}
	if !strings.Contains(dump, "Exits:") {
		t.Fatalf("expected an exits section in:\n%s", dump)
	}
}
