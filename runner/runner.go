// Package runner drives a pipeline of steps through a single run.
package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getupkeep/upkeep-cli/executor"
	"github.com/getupkeep/upkeep-cli/report"
	"github.com/getupkeep/upkeep-cli/step"
)

// Skip reasons the runner attaches to steps it never ran.
const (
	ReasonUserDeclined = "user declined"
	ReasonRunCancelled = "run cancelled"
)

// Events receives progress callbacks while a run advances. Every step in
// the pipeline produces exactly one StepFinished; StepStarted only fires
// for steps that actually execute.
type Events interface {
	RunStarted(total int)
	ConfirmRequested(s step.Step, num, total int)
	StepStarted(s step.Step, num, total int)
	StepFinished(s step.Step, num, total int, oc step.Outcome)
	RunFinished(sum report.Summary)
}

// Confirmer asks the user whether a step should run.
type Confirmer interface {
	Confirm(s step.Step) (bool, error)
}

type Runner struct {
	steps       []step.Step
	exec        executor.Executor
	events      Events
	confirmer   Confirmer
	interactive bool
	out         io.Writer
	logger      *slog.Logger
}

type Option func(*Runner)

func WithExecutor(exec executor.Executor) Option {
	return func(r *Runner) {
		r.exec = exec
	}
}

func WithEvents(events Events) Option {
	return func(r *Runner) {
		r.events = events
	}
}

// WithConfirmer enables interactive mode: every step is confirmed before
// it runs.
func WithConfirmer(c Confirmer) Option {
	return func(r *Runner) {
		r.confirmer = c
		r.interactive = true
	}
}

// WithOutput sets the writer that receives live output from built-in
// steps.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.out = out
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

func New(steps []step.Step, opts ...Option) *Runner {
	r := &Runner{
		steps:  steps,
		exec:   executor.New(),
		events: nopEvents{},
		out:    io.Discard,
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step in order and returns the completed report. A
// failed step never aborts the run. Cancelling ctx stops the run between
// steps: the step in flight finishes normally and everything after it is
// recorded as skipped.
func (r *Runner) Run(ctx context.Context) *report.Report {
	rep := report.New()
	total := len(r.steps)

	r.logger.Info("run started", "run_id", rep.ID, "steps", total)
	r.events.RunStarted(total)

	// Steps run on a detached context: cancellation is observed between
	// steps only, never by killing a command midway.
	stepCtx := context.WithoutCancel(ctx)
	rc := step.RunContext{Exec: r.exec, Out: r.out}

	cancelled := false
	for i, s := range r.steps {
		num := i + 1

		if cancelled || ctx.Err() != nil {
			cancelled = true
			r.record(rep, s, num, total, step.Skip(s, ReasonRunCancelled))
			continue
		}

		if r.interactive && r.confirmer != nil {
			r.events.ConfirmRequested(s, num, total)
			ok, err := r.confirmer.Confirm(s)
			if err != nil {
				// Aborting the prompt cancels the rest of the run.
				cancelled = true
				r.record(rep, s, num, total, step.Skip(s, ReasonRunCancelled))
				continue
			}
			if !ok {
				r.record(rep, s, num, total, step.Skip(s, ReasonUserDeclined))
				continue
			}
		}

		r.events.StepStarted(s, num, total)
		start := time.Now()
		oc := s.Run(stepCtx, rc)
		oc.Duration = time.Since(start)
		r.record(rep, s, num, total, oc)
	}

	rep.Finish()
	sum := report.Summarize(rep)
	r.logger.Info("run finished", "run_id", rep.ID,
		"succeeded", sum.Succeeded, "failed", sum.Failed, "skipped", sum.Skipped,
		"duration", sum.Duration.Round(time.Second).String())
	r.events.RunFinished(sum)
	return rep
}

func (r *Runner) record(rep *report.Report, s step.Step, num, total int, oc step.Outcome) {
	rep.Append(oc)
	r.logger.Info("step finished",
		"step", s.ID, "status", string(oc.Status), "reason", oc.Reason)
	r.events.StepFinished(s, num, total, oc)
}

type nopEvents struct{}

func (nopEvents) RunStarted(int)                                 {}
func (nopEvents) ConfirmRequested(step.Step, int, int)           {}
func (nopEvents) StepStarted(step.Step, int, int)                {}
func (nopEvents) StepFinished(step.Step, int, int, step.Outcome) {}
func (nopEvents) RunFinished(report.Summary)                     {}
