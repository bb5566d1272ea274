package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is one append-only audit event with before/after snapshots.
// Intent records (action "intent:*") record that something was requested,
// distinct from the record confirming it happened.
type AuditLog struct {
	ID           string
	OrgID        string
	UserID       string
	SystemID     string
	ResourceType string
	ResourceID   string
	Action       string
	Before       json.RawMessage // nil for creates and intents
	After        json.RawMessage
	CreatedAt    time.Time
}

// Resource types used by the call workflow.
const (
	ResourceCalls         = "calls"
	ResourceAIRuns        = "ai_runs"
	ResourceRecordings    = "recordings"
	ResourceOrganizations = "organizations"
)

// Actions used by the call workflow.
const (
	ActionCreate                 = "create"
	ActionUpdate                 = "update"
	ActionIntentRecordingRequest = "intent:recording_requested"
)
