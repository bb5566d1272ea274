package otel

import (
	"context"
	"testing"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"

	"callmonitor/internal/telemetry"
)

func TestNewEventEmitterNilProvider(t *testing.T) {
	e := NewEventEmitter(nil)
	if e == nil {
		t.Fatal("NewEventEmitter(nil) = nil, want no-op emitter")
	}
	if err := e.Emit(context.Background(), &telemetry.Event{OrgID: "org-1"}); err != nil {
		t.Errorf("no-op Emit() error = %v", err)
	}
}

func TestEmitNilEvent(t *testing.T) {
	e := NewEventEmitter(sdklog.NewLoggerProvider())
	if err := e.Emit(context.Background(), nil); err != nil {
		t.Errorf("Emit(nil) error = %v", err)
	}
}

func TestEmitEvent(t *testing.T) {
	e := NewEventEmitter(sdklog.NewLoggerProvider())
	err := e.Emit(context.Background(), &telemetry.Event{
		OrgID:     "org-1",
		CallID:    "call-1",
		EventType: "call_started",
		Source:    "server",
		Metadata:  []byte(`{"status":"in-progress"}`),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Errorf("Emit() error = %v", err)
	}
}
