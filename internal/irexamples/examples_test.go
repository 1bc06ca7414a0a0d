package irexamples

import (
	"testing"

	"github.com/irgraph/irgraph/internal/ir"
	"github.com/stretchr/testify/require"
)

func TestFactorialVerifiesBeforeAndAfterPipeline(t *testing.T) {
	region := Factorial()
	require.NoError(t, region.Verify())

	changed := ir.RunToFixpoint(ir.DefaultPipeline(), region)
	require.False(t, changed, "the accumulator loop has no foldable, simplifiable or dead op for the default pipeline")
	require.NoError(t, region.Verify())
}

func TestDeadChainDCEPrunesUnusedOps(t *testing.T) {
	region := DeadChain()
	require.NoError(t, region.Verify())

	changed := ir.NewDCEPass().Run(region)
	require.True(t, changed)
	require.NoError(t, region.Verify())
}

func TestConstFoldChainCollapsesToSingleConstant(t *testing.T) {
	region := ConstFoldChain()
	require.NoError(t, region.Verify())

	ir.RunToFixpoint(ir.DefaultPipeline(), region)
	require.NoError(t, region.Verify())

	block := region.Blocks()[0]
	regOps := block.RegOps()
	require.Len(t, regOps, 2, "expected just the folded constant and the return")
	require.True(t, regOps[0].IsA(ir.OpConstant))
	require.True(t, regOps[1].IsA(ir.OpReturn))
}

func TestPeepholeRotationFoldsLiterals(t *testing.T) {
	region := PeepholeRotation()
	require.NoError(t, region.Verify())

	ir.RunToFixpoint(ir.DefaultPipeline(), region)
	require.NoError(t, region.Verify())

	sum := region.Blocks()[0].RegBack().InputAt(0).Def()
	require.True(t, sum.IsA(ir.OpAdd))
	addend := sum.InputAt(0).Def()
	require.True(t, addend.IsA(ir.OpConstant), "the two literals should be folded into one constant addend")
	require.Equal(t, ir.UIntAttr(5), addend.Attribute())
}

func TestDoubleNegationCollapsesToCopy(t *testing.T) {
	region := DoubleNegation()
	require.NoError(t, region.Verify())

	ir.NewArithPeepHolePass().Run(region)
	require.NoError(t, region.Verify())

	block := region.Blocks()[0]
	for _, op := range block.RegOps() {
		require.False(t, op.IsA(ir.OpNot), "both not ops should have collapsed away")
	}
	require.True(t, block.RegBack().InputAt(0).Def().IsA(ir.OpCopy), "return should read a copy of x")
}

func TestDominatorDiamondExample(t *testing.T) {
	region := DominatorDiamond()
	require.NoError(t, region.Verify())

	blocks := region.Blocks()
	start := blocks[0]
	idom, ok := region.GetIDom(start)
	require.True(t, ok)
	require.Equal(t, start, idom)
}

func TestNaturalLoopExample(t *testing.T) {
	region := NaturalLoop()
	require.NoError(t, region.Verify())

	loops := region.Loops()
	require.Len(t, loops, 1)
	require.Equal(t, 1, loops[0].Depth())
	require.True(t, loops[0].Reducible())
}
