package domain

import "time"

// Recording is a call recording reported by the provider callback.
// StartCall never creates these; only the callback path does.
type Recording struct {
	ID              string
	CallID          string
	OrgID           string
	RecordingSID    string
	RecordingURL    string
	DurationSeconds int
	Status          Status
	ToolID          string
	CreatedAt       time.Time
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusDeleted   Status = "deleted"
)
