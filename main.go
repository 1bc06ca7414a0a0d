// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/irgraph/irgraph/internal/ir"
	"github.com/irgraph/irgraph/internal/irexamples"
)

var builtinExamples = map[string]func() *ir.Region{
	"factorial":         irexamples.Factorial,
	"dead-chain":        irexamples.DeadChain,
	"const-fold-chain":  irexamples.ConstFoldChain,
	"peephole-rotation": irexamples.PeepholeRotation,
	"double-negation":   irexamples.DoubleNegation,
	"dominator-diamond": irexamples.DominatorDiamond,
	"natural-loop":      irexamples.NaturalLoop,
}

func main() {
	name := "factorial"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	build, ok := builtinExamples[name]
	if !ok {
		color.Red("Unknown example: %s", name)
		os.Exit(1)
	}

	region := build()
	ir.RunToFixpoint(ir.DefaultPipeline(), region)

	if err := region.Verify(); err != nil {
		color.Red("Verification failed: %s", err)
		os.Exit(1)
	}

	fmt.Println(region.Dump())
	color.Green("✅ Built and optimized %s", name)
}
