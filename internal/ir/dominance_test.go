package ir

import "testing"

// buildDiamond builds the seven-block example from the dominator scenario:
// A->B, B->{C,F}, C->D, F->{E,G}, E->D, G->D, final D.
func buildDiamond(t *testing.T) (*Region, map[string]*BasicBlock) {
	t.Helper()
	region, err := NewRegion("diamond")
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	b := NewBuilder().SetRegion(region)

	blocks := map[string]*BasicBlock{
		"A": region.AddStartBasicBlock(),
		"B": region.AddBasicBlock(),
		"C": region.AddBasicBlock(),
		"D": region.AddFinalBasicBlock(),
		"E": region.AddBasicBlock(),
		"F": region.AddBasicBlock(),
		"G": region.AddBasicBlock(),
	}

	b.SetBlock(blocks["A"])
	blocks["A"].LinkSucc(blocks["B"], true)
	b.Jump(blocks["B"])

	b.SetBlock(blocks["B"])
	cond := b.Param(Bool)
	blocks["B"].LinkSucc(blocks["C"], true)
	blocks["B"].LinkSucc(blocks["F"], false)
	b.Jumpc(blocks["C"], cond)

	b.SetBlock(blocks["C"])
	blocks["C"].LinkSucc(blocks["D"], true)
	b.Jump(blocks["D"])

	b.SetBlock(blocks["F"])
	cond2 := b.Param(Bool)
	blocks["F"].LinkSucc(blocks["E"], true)
	blocks["F"].LinkSucc(blocks["G"], false)
	b.Jumpc(blocks["E"], cond2)

	b.SetBlock(blocks["E"])
	blocks["E"].LinkSucc(blocks["D"], true)
	b.Jump(blocks["D"])

	b.SetBlock(blocks["G"])
	blocks["G"].LinkSucc(blocks["D"], true)
	b.Jump(blocks["D"])

	b.SetBlock(blocks["D"])
	b.Return(nil)

	if err := region.CollectDomInfo(); err != nil {
		t.Fatalf("CollectDomInfo: %v", err)
	}
	return region, blocks
}

func TestDominatorScenario(t *testing.T) {
	region, blocks := buildDiamond(t)

	want := map[string]string{
		"A": "A",
		"B": "A",
		"C": "B",
		"D": "B",
		"E": "F",
		"F": "B",
		"G": "F",
	}
	for name, wantIdomName := range want {
		idom, ok := region.GetIDom(blocks[name])
		if !ok {
			t.Fatalf("GetIDom(%s): block unexpectedly unreachable", name)
		}
		if idom != blocks[wantIdomName] {
			t.Errorf("idom(%s): got bb%d, want bb%d (%s)", name, idom.ID(), blocks[wantIdomName].ID(), wantIdomName)
		}
	}
}

// DOM1: idom is defined for every reachable block.
func TestDominatorCoverage(t *testing.T) {
	region, blocks := buildDiamond(t)
	for name, b := range blocks {
		if _, ok := region.GetIDom(b); !ok {
			t.Errorf("expected idom defined for reachable block %s", name)
		}
	}
}

// DOM2: getDominatorsChain(B) ends at start for any reachable B.
func TestDominatorsChainEndsAtStart(t *testing.T) {
	region, blocks := buildDiamond(t)
	for name, b := range blocks {
		chain := region.GetDominatorsChain(b)
		if len(chain) == 0 {
			t.Fatalf("chain for %s should not be empty", name)
		}
		if chain[len(chain)-1] != blocks["A"] {
			t.Errorf("chain for %s should end at start, got bb%d", name, chain[len(chain)-1].ID())
		}
	}
}

// GetDominatedBlocks returns only the immediately dominated blocks (dom-tree
// children), not the whole transitively dominated subtree.
func TestGetDominatedBlocksIsDirectOnly(t *testing.T) {
	region, blocks := buildDiamond(t)

	children := region.GetDominatedBlocks(blocks["B"])
	want := map[*BasicBlock]bool{blocks["C"]: true, blocks["D"]: true, blocks["F"]: true}
	if len(children) != len(want) {
		t.Fatalf("B's direct children: got %d blocks, want %d", len(children), len(want))
	}
	for _, c := range children {
		if !want[c] {
			t.Errorf("bb%d is not a direct child of B", c.ID())
		}
		if c == blocks["E"] || c == blocks["G"] {
			t.Errorf("bb%d is only transitively dominated by B through F, not a direct child", c.ID())
		}
	}

	fChildren := region.GetDominatedBlocks(blocks["F"])
	wantF := map[*BasicBlock]bool{blocks["E"]: true, blocks["G"]: true}
	if len(fChildren) != len(wantF) {
		t.Fatalf("F's direct children: got %d blocks, want %d", len(fChildren), len(wantF))
	}
	for _, c := range fChildren {
		if !wantF[c] {
			t.Errorf("bb%d is not a direct child of F", c.ID())
		}
	}
}

func TestStaleDominatorInfoPanicsAfterMutation(t *testing.T) {
	region, blocks := buildDiamond(t)
	blocks["G"].LinkSucc(blocks["G"], false)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic querying dominator info after a structural mutation")
		}
	}()
	_, _ = region.GetIDom(blocks["A"])
}
