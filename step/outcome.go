package step

import "time"

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Outcome records what happened to one step during a run. Reason is empty
// for succeeded steps and explains failed and skipped ones.
type Outcome struct {
	StepID      string
	Description string
	Status      Status
	Reason      string
	Duration    time.Duration
}

func Succeed(s Step) Outcome {
	return Outcome{StepID: s.ID, Description: s.Description, Status: StatusSucceeded}
}

func Fail(s Step, reason string) Outcome {
	return Outcome{StepID: s.ID, Description: s.Description, Status: StatusFailed, Reason: reason}
}

func Skip(s Step, reason string) Outcome {
	return Outcome{StepID: s.ID, Description: s.Description, Status: StatusSkipped, Reason: reason}
}
