package tail_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/getupkeep/upkeep-cli/tail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name string, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestTail(t *testing.T) {
	logContents := `starting maintenance run
step finished step=update-homebrew status=succeeded
step finished step=update-npm-packages status=skipped
step finished step=cleanup-downloads-folder status=succeeded
run complete
`
	logFile := writeTestFile(t, "upkeep.log", logContents)

	t.Run("FailsOnNonExistentFile", func(t *testing.T) {
		_, err := tail.Tail("nonexistentfile", 10)
		require.Error(t, err)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("FailsOnDirectory", func(t *testing.T) {
		_, err := tail.Tail(t.TempDir(), 10)
		require.Error(t, err)
	})
	t.Run("FailsOnEmptyFile", func(t *testing.T) {
		empty := writeTestFile(t, "empty.log", "")
		_, err := tail.Tail(empty, 10)
		assert.Error(t, err)
		assert.ErrorIs(t, err, tail.ErrEmptyFile)
	})
	t.Run("FailsOnNegativeLines", func(t *testing.T) {
		_, err := tail.Tail(logFile, -1)
		assert.Error(t, err)
		assert.ErrorIs(t, err, tail.ErrInvalidN)
	})
	t.Run("ReturnsEntireFileWhenNIsGreaterThanFileLength", func(t *testing.T) {
		f, err := tail.Tail(logFile, 1000)
		require.NoError(t, err)
		defer f.Close()

		got, err := io.ReadAll(f)
		assert.NoError(t, err)
		assert.Equal(t, logContents, string(got))
	})
	t.Run("ReturnsLastNLines", func(t *testing.T) {
		f, err := tail.Tail(logFile, 2)
		require.NoError(t, err)
		defer f.Close()

		expected := `step finished step=cleanup-downloads-folder status=succeeded
run complete
`

		got, err := io.ReadAll(f)
		assert.NoError(t, err)
		assert.Equal(t, expected, string(got))
	})
}
