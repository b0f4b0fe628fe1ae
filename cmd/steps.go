package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/getupkeep/upkeep-cli/cmd/component/list"
	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/display"
	"github.com/getupkeep/upkeep-cli/slice"
	"github.com/getupkeep/upkeep-cli/step"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Show the maintenance steps a run would execute",
	Long: `
  Steps lists every built-in maintenance step in run order, marks the ones
  your config skips, and appends your enabled custom commands.
  `,
	Run: showSteps,
}

var (
	browseFlag bool
	docFlag    bool
)

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().BoolVarP(&browseFlag, "browse", "b", false, "Browse steps and their commands interactively")
	stepsCmd.Flags().BoolVar(&docFlag, "doc", false, "Render the step reference as markdown")
}

var skippedNote = lipgloss.NewStyle().Faint(true).Render("(skipped)")

func showSteps(cmd *cobra.Command, _ []string) {
	logger := loggerFromCtx(cmd.Context()).With("command", "steps")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		display.FatalErr(err)
		return
	}

	steps := step.Catalog(cfg)
	customs := enabledCustoms(cfg)

	switch {
	case docFlag:
		renderStepsDoc(steps, customs)
	case browseFlag:
		browseSteps(steps, customs, cfg)
	default:
		printSteps(steps, customs, cfg)
	}
}

func enabledCustoms(cfg *config.Config) []step.Step {
	enabled := slice.Filter(cfg.CustomCommands, func(cc config.CustomCommand) bool {
		return cc.Enabled
	})
	return slice.Map(enabled, func(cc config.CustomCommand) step.Step {
		return step.Custom(cc.Name, cc.Commands)
	})
}

func printSteps(steps, customs []step.Step, cfg *config.Config) {
	for i, s := range steps {
		line := fmt.Sprintf("%2d. %s", i+1, s.Description)
		if slice.Has(cfg.SkipSteps, s.Description) {
			line += " " + skippedNote
		}
		fmt.Println(line)
	}
	for i, s := range customs {
		fmt.Printf("%2d. %s (custom)\n", len(steps)+i+1, s.Description)
	}
}

func renderStepsDoc(steps, customs []step.Step) {
	var b strings.Builder
	b.WriteString("# upkeep maintenance steps\n\n")

	writeSection := func(title string, section []step.Step) {
		if len(section) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, s := range section {
			fmt.Fprintf(&b, "### %s\n\n", s.Description)
			cmds := s.Commands()
			if len(cmds) == 0 {
				b.WriteString("_No commands with the current settings._\n\n")
				continue
			}
			for _, c := range cmds {
				fmt.Fprintf(&b, "- `%s`\n", c)
			}
			b.WriteString("\n")
		}
	}
	writeSection("Built-in steps", steps)
	writeSection("Custom commands", customs)

	out, err := glamour.Render(b.String(), "auto")
	if err != nil {
		display.Error(err)
		return
	}
	fmt.Print(out)
}

func browseSteps(steps, customs []step.Step, cfg *config.Config) {
	var items []list.Item
	for _, s := range append(append([]step.Step(nil), steps...), customs...) {
		detail := fmt.Sprintf("%d commands", len(s.Commands()))
		if len(s.Commands()) == 1 {
			detail = s.Commands()[0]
		}
		if slice.Has(cfg.SkipSteps, s.Description) {
			detail += " (skipped)"
		}
		items = append(items, list.Item{
			Name:     s.Description,
			Detail:   detail,
			Commands: s.Commands(),
		})
	}

	m := list.NewModel(items, "upkeep steps")
	programOutput := termenv.NewOutput(os.Stdout, termenv.WithColorCache(true))
	p := tea.NewProgram(m, tea.WithOutput(programOutput), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		display.Error(err)
	}
}
