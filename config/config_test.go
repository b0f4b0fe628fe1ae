package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getupkeep/upkeep-cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()

	assert.Empty(t, c.SkipSteps)
	assert.Equal(t, 30, c.Cleanup.DownloadsDaysOld)
	assert.Equal(t, 14, c.Cleanup.ScreenshotsDaysOld)
	assert.Equal(t, 7, c.Cleanup.DmgFilesDaysOld)
	assert.True(t, c.Cleanup.ClearBrowserCaches)
	assert.True(t, c.Cleanup.ClearSystemLogs)

	assert.True(t, c.Notifications.Enabled)
	assert.False(t, c.Notifications.SuccessOnly)
	assert.True(t, c.Notifications.IncludeStats)

	require.Len(t, c.CustomCommands, 1)
	assert.False(t, c.CustomCommands[0].Enabled, "sample custom command must be disabled")
}

func TestLoadFromFile(t *testing.T) {
	t.Run("MissingFileFallsBackToDefaults", func(t *testing.T) {
		c, err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), c)
	})

	t.Run("MalformedFileIsAnError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("skip_steps = [oops"), 0o644))

		_, err := config.LoadFromFile(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "parsing config")
	})

	t.Run("PartialFileKeepsDefaultsForOmittedKeys", func(t *testing.T) {
		contents := `
skip_steps = ["Update Homebrew", "Optimize Xcode"]

[cleanup_settings]
downloads_days_old = 10
clear_browser_caches = false
`
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		c, err := config.LoadFromFile(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"Update Homebrew", "Optimize Xcode"}, c.SkipSteps)
		assert.Equal(t, 10, c.Cleanup.DownloadsDaysOld)
		assert.False(t, c.Cleanup.ClearBrowserCaches)
		// untouched keys keep their defaults
		assert.Equal(t, 14, c.Cleanup.ScreenshotsDaysOld)
		assert.Equal(t, 7, c.Cleanup.DmgFilesDaysOld)
		assert.True(t, c.Cleanup.ClearSystemLogs)
		assert.True(t, c.Notifications.Enabled)
	})

	t.Run("CustomCommandsReplaceTheSample", func(t *testing.T) {
		contents := `
[[custom_commands]]
name = "Update Dotfiles"
commands = ["cd ~/dotfiles && git pull"]
enabled = true
`
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		c, err := config.LoadFromFile(path)
		require.NoError(t, err)

		require.Len(t, c.CustomCommands, 1)
		assert.Equal(t, "Update Dotfiles", c.CustomCommands[0].Name)
		assert.True(t, c.CustomCommands[0].Enabled)
	})
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	c := config.Default()
	c.SkipSteps = []string{"Install System Updates"}
	require.NoError(t, c.SaveToFile(path))

	got, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
