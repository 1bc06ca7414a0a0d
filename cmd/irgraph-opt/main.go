// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/irgraph/irgraph/internal/ir"
	"github.com/irgraph/irgraph/internal/irexamples"
)

var examples = map[string]func() *ir.Region{
	"factorial":         irexamples.Factorial,
	"dead-chain":        irexamples.DeadChain,
	"const-fold-chain":  irexamples.ConstFoldChain,
	"peephole-rotation": irexamples.PeepholeRotation,
	"double-negation":   irexamples.DoubleNegation,
	"dominator-diamond": irexamples.DominatorDiamond,
	"natural-loop":      irexamples.NaturalLoop,
}

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())

	if len(os.Args) < 2 {
		fmt.Println("Usage: irgraph-opt <example> [-pipeline <file.yaml>]")
		fmt.Println("Examples:")
		for name := range examples {
			fmt.Printf("  %s\n", name)
		}
		os.Exit(1)
	}

	name := os.Args[1]
	build, ok := examples[name]
	if !ok {
		color.Red("Unknown example: %s", name)
		os.Exit(1)
	}

	region := build()

	pm, err := resolvePipeline(os.Args[2:])
	if err != nil {
		color.Red("Failed to build pipeline: %s", err)
		os.Exit(1)
	}

	ir.RunToFixpoint(pm, region)

	if err := region.Verify(); err != nil {
		color.Red("Verification failed: %s", err)
		os.Exit(1)
	}

	fmt.Println(region.Dump())
	fmt.Println(region.DumpDominators())
	fmt.Println(region.DumpLoops())

	color.Green("✅ %s verified and optimized", name)
}

// resolvePipeline parses a "-pipeline <file.yaml>" pair out of args if
// present, building a PassManager from it. With no such flag it falls back
// to the bundled default pipeline.
func resolvePipeline(args []string) (*ir.PassManager, error) {
	for i, arg := range args {
		if arg != "-pipeline" {
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("-pipeline requires a file path argument")
		}
		data, err := os.ReadFile(args[i+1])
		if err != nil {
			return nil, err
		}
		cfg, err := ir.ParsePipelineConfig(data)
		if err != nil {
			return nil, err
		}
		return cfg.Build()
	}
	return ir.DefaultPipeline(), nil
}
