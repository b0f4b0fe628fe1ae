package display

import (
	"fmt"
	"io"
	"os"
	"time"

	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/getupkeep/upkeep-cli/report"
	"github.com/getupkeep/upkeep-cli/runner"
	"github.com/getupkeep/upkeep-cli/step"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	stepStyle = lipgloss.NewStyle().Bold(true)

	okMark   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("ok")
	failMark = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("failed")
	skipMark = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("skipped")

	dimStyle = lipgloss.NewStyle().Faint(true)
)

// Progress renders run events to the terminal. In quiet mode each step is
// reduced to a single result line and command output is suppressed.
type Progress struct {
	quiet bool

	spinDone   chan struct{}
	spinExited chan struct{}
}

var _ runner.Events = (*Progress)(nil)

func NewProgress(quiet bool) *Progress {
	return &Progress{quiet: quiet}
}

// Output returns the writer live step output should go to.
func (p *Progress) Output() io.Writer {
	if p.quiet {
		return io.Discard
	}
	return os.Stdout
}

func (p *Progress) RunStarted(total int) {
	if p.quiet {
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("Running %d maintenance steps", total)))
	fmt.Println()
}

func (p *Progress) ConfirmRequested(s step.Step, num, total int) {}

func (p *Progress) StepStarted(s step.Step, num, total int) {
	if p.quiet {
		return
	}

	label := fmt.Sprintf("[%d/%d] %s", num, total, s.Description)
	if !s.IsCustom() {
		fmt.Println(stepStyle.Render(label))
		return
	}

	// Custom commands run with captured output, so a spinner is the only
	// sign of life until they finish.
	p.spinDone = make(chan struct{})
	p.spinExited = make(chan struct{})
	done, exited := p.spinDone, p.spinExited
	go func() {
		defer close(exited)
		_ = huhSpinner.New().Title(label).Action(func() { <-done }).Run()
	}()
}

func (p *Progress) StepFinished(s step.Step, num, total int, oc step.Outcome) {
	p.stopSpinner()

	line := fmt.Sprintf("[%d/%d] %s %s", num, total, statusMark(oc.Status), s.Description)
	if oc.Reason != "" {
		line += " " + dimStyle.Render("("+oc.Reason+")")
	}
	if d := roundedDuration(oc.Duration); d != "" {
		line += " " + dimStyle.Render(d)
	}
	fmt.Println(line)
}

func (p *Progress) RunFinished(sum report.Summary) {
	if p.quiet {
		fmt.Printf("done: %s\n", sum)
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Run Summary"))
	fmt.Printf("   Total steps: %d\n", sum.Total())
	fmt.Printf("   Succeeded: %d\n", sum.Succeeded)
	if sum.Skipped > 0 {
		fmt.Printf("   Skipped: %d\n", sum.Skipped)
	}
	if sum.Failed > 0 {
		fmt.Printf("   Failed: %d\n", sum.Failed)
	}
	fmt.Printf("   Duration: %s\n", report.FormatDuration(sum.Duration))
}

func (p *Progress) stopSpinner() {
	if p.spinDone == nil {
		return
	}
	close(p.spinDone)
	<-p.spinExited
	p.spinDone, p.spinExited = nil, nil
}

func statusMark(status step.Status) string {
	switch status {
	case step.StatusSucceeded:
		return okMark
	case step.StatusFailed:
		return failMark
	default:
		return skipMark
	}
}

// roundedDuration renders durations of a second or more; instant steps
// don't need one.
func roundedDuration(d time.Duration) string {
	if d < time.Second {
		return ""
	}
	return d.Round(time.Second).String()
}
