package domain

import (
	"errors"
	"time"
)

// Call represents a phone call managed by CallMonitor.
// Created in pending status; transitions to in-progress once the provider accepts.
type Call struct {
	ID        string
	OrgID     string
	SystemID  string
	Status    Status
	StartedAt *time.Time
	EndedAt   *time.Time
	CreatedBy string
	CallSID   string
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Modulations are the per-call feature toggles.
type Modulations struct {
	Record          bool `json:"record"`
	Transcribe      bool `json:"transcribe"`
	Translate       bool `json:"translate"`
	Survey          bool `json:"survey"`
	SyntheticCaller bool `json:"synthetic_caller"`
}

// Capabilities reports which modulations an organization may enable.
// Keyed by modulation name, matching the Modulations JSON field names.
type Capabilities map[string]bool

// Validate validates the call for persistence.
func (c *Call) Validate() error {
	if c.OrgID == "" {
		return errors.New("organization_id is required")
	}
	if c.SystemID == "" {
		return errors.New("system_id is required")
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return nil
}
