package step_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"testing"

	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/executor"
	"github.com/getupkeep/upkeep-cli/step"
	"github.com/stretchr/testify/assert"
)

// fakeExecutor scripts command results so step behavior can be tested
// without running anything on the host.
type fakeExecutor struct {
	absent map[string]bool   // tools LookPath cannot find
	exits  map[string]int    // command → exit code, zero when unset
	stderr map[string]string // command → captured stderr

	ran []string // every command handed to Run or Stream, in order
}

var _ executor.Executor = (*fakeExecutor)(nil)

func (f *fakeExecutor) Run(ctx context.Context, command string) executor.Result {
	f.ran = append(f.ran, command)
	return executor.Result{ExitCode: f.exits[command], Stderr: f.stderr[command]}
}

func (f *fakeExecutor) Stream(ctx context.Context, command string, out io.Writer) executor.Result {
	f.ran = append(f.ran, command)
	fmt.Fprintf(out, "ran: %s\n", command)
	return executor.Result{ExitCode: f.exits[command]}
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.absent[file] {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + file, nil
}

func runContext(f *fakeExecutor, out io.Writer) step.RunContext {
	return step.RunContext{Exec: f, Out: out}
}

func TestCustomStep(t *testing.T) {
	ctx := context.Background()

	t.Run("RunsCommandsInOrder", func(t *testing.T) {
		f := &fakeExecutor{}
		s := step.Custom("Prune Docker Resources", []string{"docker system prune -f", "docker volume prune -f"})

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusSucceeded, oc.Status)
		assert.Empty(t, oc.Reason)
		assert.Equal(t, []string{"docker system prune -f", "docker volume prune -f"}, f.ran)
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		f := &fakeExecutor{
			exits:  map[string]int{"two": 3},
			stderr: map[string]string{"two": "boom\nmore detail"},
		}
		s := step.Custom("Fails Midway", []string{"one", "two", "three"})

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusFailed, oc.Status)
		assert.Contains(t, oc.Reason, `"two" exited with code 3`)
		assert.Contains(t, oc.Reason, "boom")
		assert.NotContains(t, oc.Reason, "more detail", "reason should only carry the first stderr line")
		assert.Equal(t, []string{"one", "two"}, f.ran, "commands after the failure must not run")
	})

	t.Run("EmptyCommandListTriviallySucceeds", func(t *testing.T) {
		f := &fakeExecutor{}
		s := step.Custom("Does Nothing", nil)

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusSucceeded, oc.Status)
		assert.Empty(t, f.ran)
	})

	t.Run("DerivesAStableID", func(t *testing.T) {
		s := step.Custom("Prune Docker Resources", nil)
		assert.Equal(t, "custom-prune-docker-resources", s.ID)
		assert.Equal(t, "Prune Docker Resources", s.Description)
		assert.True(t, s.IsCustom())
	})
}

func TestBuiltInStep(t *testing.T) {
	ctx := context.Background()
	catalogStep := func(t *testing.T, id string) step.Step {
		t.Helper()
		return findStep(t, defaultCatalog(), id)
	}

	t.Run("KeepsGoingAfterAFailedCommand", func(t *testing.T) {
		f := &fakeExecutor{exits: map[string]int{"brew upgrade": 1}}
		s := catalogStep(t, "update-homebrew")

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusFailed, oc.Status)
		assert.Contains(t, oc.Reason, `"brew upgrade" exited with code 1`)
		assert.Equal(t, []string{"brew update", "brew upgrade", "brew cleanup"}, f.ran,
			"a failed command must not stop the remaining commands")
	})

	t.Run("MissingToolSkipsTheStep", func(t *testing.T) {
		var out bytes.Buffer
		f := &fakeExecutor{absent: map[string]bool{"brew": true}}
		s := catalogStep(t, "update-homebrew")

		oc := s.Run(ctx, runContext(f, &out))

		assert.Equal(t, step.StatusSkipped, oc.Status)
		assert.Equal(t, "brew not installed", oc.Reason)
		assert.Empty(t, f.ran)
		assert.Contains(t, out.String(), "brew not found, skipping")
	})

	t.Run("MissingToolSkipsOnlyItsCommand", func(t *testing.T) {
		var out bytes.Buffer
		f := &fakeExecutor{absent: map[string]bool{"xcrun": true}}
		s := catalogStep(t, "optimize-xcode")

		oc := s.Run(ctx, runContext(f, &out))

		assert.Equal(t, step.StatusSucceeded, oc.Status)
		assert.Len(t, f.ran, 2, "the rm commands still run without Xcode")
		assert.Contains(t, out.String(), "xcrun not found, skipping")
	})

	t.Run("SeveralMissingToolsGetAGenericReason", func(t *testing.T) {
		f := &fakeExecutor{absent: map[string]bool{"rm": true, "xcrun": true}}
		s := catalogStep(t, "optimize-xcode")

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusSkipped, oc.Status)
		assert.Equal(t, "required tools not installed", oc.Reason)
	})

	t.Run("StepWithoutCommandsTriviallySucceeds", func(t *testing.T) {
		// With clear_system_logs off the step has no commands, yet it stays
		// in the pipeline and succeeds.
		cfg := config.Default()
		cfg.Cleanup.ClearSystemLogs = false
		f := &fakeExecutor{}
		s := findStep(t, step.Catalog(cfg), "clear-logs-and-temp-files")

		oc := s.Run(ctx, runContext(f, nil))

		assert.Equal(t, step.StatusSucceeded, oc.Status)
		assert.Empty(t, f.ran)
	})
}
