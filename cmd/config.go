package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/display"
	"github.com/getupkeep/upkeep-cli/theme"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage upkeep's configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.DefaultConfigFilePath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file with the defaults",
	Run:   configInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func configInit(cmd *cobra.Command, _ []string) {
	logger := loggerFromCtx(cmd.Context()).With("command", "config")

	if _, err := os.Stat(config.DefaultConfigFilePath); err == nil {
		overwrite := false
		confirmOverwrite := huh.NewConfirm().
			Title(config.DefaultConfigFilePath + " already exists. Overwrite it?").
			Affirmative("Overwrite").
			Negative("Keep it").
			Value(&overwrite)
		if err := huh.NewForm(huh.NewGroup(confirmOverwrite)).WithTheme(theme.New()).Run(); err != nil {
			display.Error(err)
			return
		}
		if !overwrite {
			display.Info("Keeping the existing config.")
			return
		}
	}

	if err := config.Default().Save(); err != nil {
		logger.Error("failed to write config", "error", err)
		display.FatalErr(err)
		return
	}
	display.Success("Wrote " + config.DefaultConfigFilePath)
}
