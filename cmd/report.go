package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/glamour"
	"github.com/getupkeep/upkeep-cli/display"
	"github.com/getupkeep/upkeep-cli/report"
	"github.com/getupkeep/upkeep-cli/storage"
	"github.com/spf13/cobra"
)

var reportExportFlag bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the report of the most recent run",
	Long: `
  Report renders the stored report of the last completed run, so you can
  review what happened without running everything again.
  `,
	Run: showReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportExportFlag, "export", false, "Write the report to a markdown file")
}

func showReport(cmd *cobra.Command, _ []string) {
	logger := loggerFromCtx(cmd.Context()).With("command", "report")

	rep, err := storage.ReadLastRun()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			display.Info("No completed runs yet. Run `upkeep run` first.")
			return
		}
		logger.Error("failed to read last run", "error", err)
		display.FatalErr(err)
		return
	}

	if reportExportFlag {
		name, err := report.WriteMarkdown(rep)
		if err != nil {
			display.FatalErr(err)
			return
		}
		display.Success("Report written to " + name + " and copied to your clipboard.")
		return
	}

	md, err := report.Markdown(rep)
	if err != nil {
		display.FatalErr(err)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
