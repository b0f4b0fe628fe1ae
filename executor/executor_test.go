package executor_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/getupkeep/upkeep-cli/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	exec := executor.New()

	t.Run("CapturesStdout", func(t *testing.T) {
		res := exec.Run(ctx, "echo hello")
		assert.True(t, res.Success())
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Empty(t, res.Stderr)
	})

	t.Run("CapturesStderr", func(t *testing.T) {
		res := exec.Run(ctx, "echo oops >&2")
		assert.True(t, res.Success())
		assert.Equal(t, "oops\n", res.Stderr)
	})

	t.Run("ReportsExitCodeWithoutError", func(t *testing.T) {
		res := exec.Run(ctx, "exit 3")
		assert.False(t, res.Success())
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("MissingCommandIsAFailureNotAPanic", func(t *testing.T) {
		res := exec.Run(ctx, "definitely-not-a-real-command-upkeep")
		assert.False(t, res.Success())
		assert.NotZero(t, res.ExitCode)
	})

	t.Run("SignalDeathGetsAConventionalExitCode", func(t *testing.T) {
		res := exec.Run(ctx, "kill -9 $$")
		assert.False(t, res.Success())
		assert.Equal(t, 137, res.ExitCode)
		assert.NotEqual(t, executor.SpawnExitCode, res.ExitCode)
	})

	t.Run("CancelledContextYieldsSyntheticExitCode", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		res := exec.Run(cancelled, "echo never")
		assert.False(t, res.Success())
		assert.Equal(t, executor.SpawnExitCode, res.ExitCode)
		assert.NotEmpty(t, res.Stderr)
	})
}

func TestStream(t *testing.T) {
	ctx := context.Background()
	exec := executor.New()

	t.Run("WritesOutputToWriter", func(t *testing.T) {
		var out bytes.Buffer
		res := exec.Stream(ctx, "echo streamed", &out)
		assert.True(t, res.Success())
		assert.Contains(t, out.String(), "streamed")
	})

	t.Run("ReportsExitCode", func(t *testing.T) {
		var out bytes.Buffer
		res := exec.Stream(ctx, "exit 7", &out)
		assert.False(t, res.Success())
		assert.Equal(t, 7, res.ExitCode)
	})
}

func TestLookPath(t *testing.T) {
	exec := executor.New()

	path, err := exec.LookPath("sh")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "/sh"))

	_, err = exec.LookPath("definitely-not-a-real-command-upkeep")
	assert.Error(t, err)
}
