// Package config loads and persists upkeep's configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultConfigFileName = "config.toml"

var (
	DefaultConfigDir      = os.ExpandEnv("$HOME/.config/upkeep")
	DefaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)
)

type Config struct {
	// SkipSteps lists step descriptions to exclude from the run.
	// Entries must match a step description exactly; anything else is ignored.
	SkipSteps []string `toml:"skip_steps"`

	CustomCommands []CustomCommand `toml:"custom_commands"`

	Cleanup       CleanupSettings      `toml:"cleanup_settings"`
	Notifications NotificationSettings `toml:"notification_settings"`
}

// CustomCommand is a user-defined maintenance step. Disabled entries stay in
// the file as documentation but never run.
type CustomCommand struct {
	Name     string   `toml:"name"`
	Commands []string `toml:"commands"`
	Enabled  bool     `toml:"enabled"`
}

type CleanupSettings struct {
	DownloadsDaysOld   int  `toml:"downloads_days_old"`
	ScreenshotsDaysOld int  `toml:"screenshots_days_old"`
	DmgFilesDaysOld    int  `toml:"dmg_files_days_old"`
	ClearBrowserCaches bool `toml:"clear_browser_caches"`
	ClearSystemLogs    bool `toml:"clear_system_logs"`
}

type NotificationSettings struct {
	Enabled      bool `toml:"enabled"`
	SuccessOnly  bool `toml:"success_only"`
	IncludeStats bool `toml:"include_stats"`
}

// Default returns the configuration used when no file exists on disk.
func Default() *Config {
	return &Config{
		CustomCommands: []CustomCommand{
			{
				Name:     "Prune Docker Resources",
				Commands: []string{"docker system prune -f"},
				Enabled:  false,
			},
		},
		Cleanup: CleanupSettings{
			DownloadsDaysOld:   30,
			ScreenshotsDaysOld: 14,
			DmgFilesDaysOld:    7,
			ClearBrowserCaches: true,
			ClearSystemLogs:    true,
		},
		Notifications: NotificationSettings{
			Enabled:      true,
			SuccessOnly:  false,
			IncludeStats: true,
		},
	}
}

func (c *Config) Save() error {
	return c.SaveToFile(DefaultConfigFilePath)
}

func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return err
	}
	return nil
}

// Load reads the default config file. A missing file is not an error: upkeep
// runs with Default() in that case. A file that exists but cannot be read or
// parsed is an error and aborts the run.
func Load() (*Config, error) {
	return LoadFromFile(DefaultConfigFilePath)
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}
