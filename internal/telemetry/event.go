// Package telemetry defines the call-event model and the emitter used for
// fire-and-forget event publishing.
package telemetry

import (
	"context"
	"time"
)

// Event is one call-lifecycle telemetry event. The JSON field names are the
// wire contract shared with the Kafka consumer and the Loki label extractor.
type Event struct {
	OrgID     string    `json:"orgId"`
	UserID    string    `json:"userId,omitempty"`
	CallID    string    `json:"callId,omitempty"`
	EventType string    `json:"eventType"`
	Source    string    `json:"source"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventEmitter emits telemetry events. Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
