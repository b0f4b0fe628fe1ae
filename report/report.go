// Package report collects step outcomes for a run and summarizes them.
package report

import (
	"fmt"
	"time"

	"github.com/getupkeep/upkeep-cli/idgen"
	"github.com/getupkeep/upkeep-cli/step"
)

// Report is the record of one run. It is owned by the component driving
// the run; nothing else mutates it.
type Report struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []step.Outcome
}

func New() *Report {
	return &Report{
		ID:        idgen.New(idgen.RunPrefix),
		StartedAt: time.Now(),
	}
}

func (r *Report) Append(oc step.Outcome) {
	r.Outcomes = append(r.Outcomes, oc)
}

func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary condenses a report into counts and a total duration.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

func (s Summary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

func (s Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped in %s",
		s.Succeeded, s.Failed, s.Skipped, FormatDuration(s.Duration))
}

// Summarize derives a Summary from the report's outcomes. It does not
// modify the report.
func Summarize(r *Report) Summary {
	s := Summary{Duration: r.Duration()}
	for _, oc := range r.Outcomes {
		switch oc.Status {
		case step.StatusSucceeded:
			s.Succeeded++
		case step.StatusFailed:
			s.Failed++
		case step.StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// FormatDuration renders d as whole minutes and seconds, e.g. "2m 3s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
