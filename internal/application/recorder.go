package application

import (
	"context"
	"time"
)

type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunReport summarises one finished run.
type RunReport struct {
	RunID      string
	Status     RunStatus
	Date       string
	Base       string
	Attempted  int
	Err        error
	FinishedAt time.Time
}

// RunRecorder publishes the outcome of a run somewhere other than the log file.
type RunRecorder interface {
	Record(ctx context.Context, r RunReport) error
}

// NoopRecorder drops every report; used when no status backend is configured.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, RunReport) error { return nil }
