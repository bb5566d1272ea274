package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Org represents an organization/tenant. Identity fields are immutable once
// seeded; VoiceConfig is the only mutable column (admin-updated call
// defaults, stored as JSON).
type Org struct {
	ID          string
	Name        string
	Plan        Plan
	ToolID      string
	CreatedBy   string
	VoiceConfig json.RawMessage
	CreatedAt   time.Time
}

type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// Validate validates the organization for persistence. Returns an error describing the first validation failure.
func (o *Org) Validate() error {
	if o.Name == "" {
		return errors.New("name is required")
	}
	if o.Plan == "" {
		o.Plan = PlanFree
	}
	return nil
}
