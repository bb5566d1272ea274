package domain

import "time"

// Well-known system keys. Calls are attributed to the control-plane system;
// transcription runs require the AI system.
const (
	KeyControlPlane = "system-cpid"
	KeyAI           = "system-ai"
)

// System is a static registry row mapping a symbolic key to an id.
type System struct {
	ID        string
	Key       string
	CreatedAt time.Time
}
