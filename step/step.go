// Package step defines the maintenance steps upkeep can run and the outcome
// of running them.
package step

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/getupkeep/upkeep-cli/executor"
	"github.com/getupkeep/upkeep-cli/slice"
)

// Step is a single unit of maintenance work. Built-in steps stream their
// output and probe for the tools they need; custom steps run the user's
// commands with captured output and stop at the first failure.
type Step struct {
	ID          string
	Description string

	commands []string
	custom   bool
}

// RunContext carries the collaborators a step needs while running.
type RunContext struct {
	Exec executor.Executor
	// Out receives live output from built-in steps.
	Out io.Writer
}

// Custom builds a user-defined step from a name and its shell commands.
func Custom(name string, commands []string) Step {
	return Step{
		ID:          "custom-" + slugify(name),
		Description: name,
		commands:    append([]string(nil), commands...),
		custom:      true,
	}
}

func builtIn(id, description string, commands ...string) Step {
	return Step{ID: id, Description: description, commands: commands}
}

func (s Step) IsCustom() bool {
	return s.custom
}

func (s Step) Commands() []string {
	return append([]string(nil), s.commands...)
}

// Run executes the step and reports its outcome. Run never returns an
// error: anything that goes wrong is folded into the outcome so one bad
// step cannot abort the rest of the run.
func (s Step) Run(ctx context.Context, rc RunContext) Outcome {
	if rc.Out == nil {
		rc.Out = io.Discard
	}
	if s.custom {
		return s.runCustom(ctx, rc)
	}
	return s.runBuiltIn(ctx, rc)
}

func (s Step) runCustom(ctx context.Context, rc RunContext) Outcome {
	for _, command := range s.commands {
		res := rc.Exec.Run(ctx, command)
		if res.Success() {
			continue
		}
		reason := fmt.Sprintf("%q exited with code %d", command, res.ExitCode)
		if msg := firstLine(res.Stderr); msg != "" {
			reason += ": " + msg
		}
		return Fail(s, reason)
	}
	return Succeed(s)
}

func (s Step) runBuiltIn(ctx context.Context, rc RunContext) Outcome {
	var missing []string
	var failReason string
	ran := 0

	for _, command := range s.commands {
		tool := firstToken(command)
		if tool == "" {
			continue
		}
		if _, err := rc.Exec.LookPath(tool); err != nil {
			fmt.Fprintf(rc.Out, "%s not found, skipping\n", tool)
			if !slice.Has(missing, tool) {
				missing = append(missing, tool)
			}
			continue
		}

		ran++
		res := rc.Exec.Stream(ctx, command, rc.Out)
		if !res.Success() && failReason == "" {
			failReason = fmt.Sprintf("%q exited with code %d", command, res.ExitCode)
		}
	}

	if failReason != "" {
		return Fail(s, failReason)
	}
	if ran == 0 && len(s.commands) > 0 {
		if len(missing) == 1 {
			return Skip(s, fmt.Sprintf("%s not installed", missing[0]))
		}
		return Skip(s, "required tools not installed")
	}
	return Succeed(s)
}

func firstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
