// Package pipeline assembles the ordered list of steps for one run.
package pipeline

import (
	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/slice"
	"github.com/getupkeep/upkeep-cli/step"
)

// Build returns the run's steps: the built-in catalog minus any step whose
// description appears in skip_steps, followed by the enabled custom
// commands in declaration order. Skip entries are matched by exact,
// case-sensitive description equality; entries that match nothing are
// ignored so a stale config cannot abort a run.
func Build(cfg *config.Config) []step.Step {
	steps := slice.Filter(step.Catalog(cfg), func(s step.Step) bool {
		return !slice.Has(cfg.SkipSteps, s.Description)
	})

	for _, cc := range cfg.CustomCommands {
		if cc.Enabled {
			steps = append(steps, step.Custom(cc.Name, cc.Commands))
		}
	}
	return steps
}
