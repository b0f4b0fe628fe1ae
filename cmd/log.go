package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/getupkeep/upkeep-cli/display"
	"github.com/getupkeep/upkeep-cli/tail"
	"github.com/spf13/cobra"
)

var logLines int64

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the tail of upkeep's run log",
	Run:   showLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().Int64VarP(&logLines, "lines", "n", 50, "Number of log lines to show")
}

func showLog(cmd *cobra.Command, _ []string) {
	rc, err := tail.Tail(logFilePath(), logLines)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			display.Info("No log yet. Run `upkeep run` first.")
			return
		}
		if errors.Is(err, tail.ErrEmptyFile) {
			display.Info("The log is empty.")
			return
		}
		display.FatalErr(err)
		return
	}
	defer rc.Close()

	if _, err := io.Copy(os.Stdout, rc); err != nil {
		display.Error(err)
	}
}
