package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/display"
	"github.com/getupkeep/upkeep-cli/notify"
	"github.com/getupkeep/upkeep-cli/pipeline"
	"github.com/getupkeep/upkeep-cli/report"
	"github.com/getupkeep/upkeep-cli/runner"
	"github.com/getupkeep/upkeep-cli/step"
	"github.com/getupkeep/upkeep-cli/storage"
	"github.com/getupkeep/upkeep-cli/theme"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Run the maintenance pipeline",
	Example: "upkeep run -i",
	Long: `
  Run works through every maintenance step in order: built-in steps first,
  then the custom commands enabled in your config.

  A failing step never aborts the run; it is recorded and the remaining
  steps still execute. Ctrl-C stops the run between steps and lets the
  step already in flight finish.
  `,
	Run: upkeepRun,
}

var (
	interactiveFlag bool
	quietFlag       bool
	exportFlag      bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Confirm every step before it runs")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Reduce output to one line per step")
	runCmd.Flags().BoolVar(&exportFlag, "export", false, "Write a markdown report of the run")
}

func upkeepRun(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	logger := loggerFromCtx(ctx).With("command", "run")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		display.FatalErr(err, "Fix or remove "+config.DefaultConfigFilePath+" and try again.")
		return
	}

	steps := pipeline.Build(cfg)
	if len(steps) == 0 {
		display.Info("Nothing to do: every step is skipped in your config.")
		return
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := display.NewProgress(quietFlag)
	opts := []runner.Option{
		runner.WithEvents(progress),
		runner.WithOutput(progress.Output()),
		runner.WithLogger(logger),
	}
	if interactiveFlag {
		opts = append(opts, runner.WithConfirmer(stepConfirmer{}))
	}

	rep := runner.New(steps, opts...).Run(ctx)
	sum := report.Summarize(rep)

	if err := storage.WriteLastRun(rep); err != nil {
		logger.Error("failed to store run report", "error", err)
	}

	if err := notify.Deliver(notify.NewDesktop(), cfg.Notifications, sum); err != nil {
		logger.Debug("notification not delivered", "error", err)
	}

	if exportFlag {
		name, err := report.WriteMarkdown(rep)
		if err != nil {
			display.Error(err)
			return
		}
		display.Success("Report written to " + name + " and copied to your clipboard.")
	}
}

// stepConfirmer prompts before each step in interactive mode.
type stepConfirmer struct{}

var _ runner.Confirmer = stepConfirmer{}

func (stepConfirmer) Confirm(s step.Step) (bool, error) {
	confirmation := true
	confirmStep := huh.NewConfirm().
		Title(fmt.Sprintf("Proceed with: %s?", s.Description)).
		Affirmative("Run it").
		Negative("Skip").
		Value(&confirmation)
	if err := huh.NewForm(huh.NewGroup(confirmStep)).WithTheme(theme.New()).Run(); err != nil {
		return false, err
	}
	return confirmation, nil
}
