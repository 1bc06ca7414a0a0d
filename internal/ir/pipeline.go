package ir

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PipelineConfig is the YAML-describable shape of a pass pipeline: an
// ordered list of pass names resolved against the bundled pass registry.
type PipelineConfig struct {
	Passes []string `yaml:"passes"`
}

// ParsePipelineConfig unmarshals a PipelineConfig from YAML bytes.
func ParsePipelineConfig(data []byte) (*PipelineConfig, error) {
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// passRegistry maps a pipeline-config pass name to a constructor for the
// bundled pass it names.
var passRegistry = map[string]func() Pass{
	"constfold": func() Pass { return NewArithConstFoldPass() },
	"peephole":  func() Pass { return NewArithPeepHolePass() },
	"dce":       func() Pass { return NewDCEPass() },
}

// Build resolves the configured pass names against the bundled registry, in
// order, returning an error naming the first unknown pass it finds.
func (c *PipelineConfig) Build() (*PassManager, error) {
	passes := make([]Pass, 0, len(c.Passes))
	for _, name := range c.Passes {
		ctor, ok := passRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown pass %q", name)
		}
		passes = append(passes, ctor())
	}
	return NewPassManager(passes...), nil
}

// DefaultPipelineConfig is the YAML-describable form of the bundled default
// pipeline, usable as a starting point for a user-supplied override file.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{Passes: []string{"constfold", "peephole", "dce"}}
}

// DefaultPipeline returns the bundled default pipeline: constant folding,
// algebraic peephole, then dead-code elimination, in the order the three
// jointly need to expose each other's opportunities (a fold can enable a
// peephole rewrite, whose erasures can enable another fold).
func DefaultPipeline() *PassManager {
	return NewPassManager(NewArithConstFoldPass(), NewArithPeepHolePass(), NewDCEPass())
}

// maxPipelineIterations bounds RunToFixpoint: the three bundled passes are
// expected to converge in a handful of rounds on any realistic region, and
// a hard cap turns a pattern bug that never stops reporting changes into a
// bounded no-op instead of a hang.
const maxPipelineIterations = 64

// RunToFixpoint runs pm over region repeatedly until a full round reports
// no change, or maxPipelineIterations rounds have run, whichever comes
// first. It reports whether any round changed the IR.
func RunToFixpoint(pm *PassManager, region *Region) bool {
	changed := false
	for i := 0; i < maxPipelineIterations; i++ {
		if !pm.Run(region) {
			break
		}
		changed = true
	}
	return changed
}
