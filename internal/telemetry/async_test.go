package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeEmitter struct {
	got chan *Event
	err error
}

func (f *fakeEmitter) Emit(ctx context.Context, event *Event) error {
	f.got <- event
	return f.err
}

func TestEmitAsyncNilEmitter(t *testing.T) {
	// Must not panic or block.
	EmitAsync(nil, context.Background(), &Event{OrgID: "org-1"})
}

func TestEmitAsyncNilEvent(t *testing.T) {
	f := &fakeEmitter{got: make(chan *Event, 1)}
	EmitAsync(f, context.Background(), nil)
	select {
	case <-f.got:
		t.Error("Emit called for nil event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEmitAsyncDeliversEvent(t *testing.T) {
	f := &fakeEmitter{got: make(chan *Event, 1)}
	want := &Event{OrgID: "org-1", EventType: "call_started", Source: "server"}
	EmitAsync(f, context.Background(), want)
	select {
	case got := <-f.got:
		if got.OrgID != want.OrgID || got.EventType != want.EventType {
			t.Errorf("emitted event = %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("Emit not called within 1s")
	}
}

func TestEmitAsyncSwallowsErrors(t *testing.T) {
	f := &fakeEmitter{got: make(chan *Event, 1), err: errors.New("broker down")}
	EmitAsync(f, context.Background(), &Event{OrgID: "org-1"})
	select {
	case <-f.got:
	case <-time.After(time.Second):
		t.Fatal("Emit not called within 1s")
	}
}
