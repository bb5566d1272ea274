package domain

import "time"

// AIRun is a transcription (or other AI) run against a call.
// Created queued; a worker moves it through running to completed/failed.
type AIRun struct {
	ID          string
	CallID      string
	SystemID    string
	Model       string
	Status      Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	Output      []byte // JSONB; nil until completed
}

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)
