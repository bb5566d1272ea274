package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestPushEventJSONExtractsLabelsAndTimestamp(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q, want /loki/api/v1/push", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode push request: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := `{"orgId":"org-1","eventType":"call_started","source":"api","createdAt":"2026-02-01T10:00:00Z"}`
	if err := PushEventJSON(context.Background(), srv.URL, []byte(raw)); err != nil {
		t.Fatalf("PushEventJSON returned error: %v", err)
	}

	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	s := got.Streams[0]
	if s.Stream["job"] != "callmonitor" {
		t.Errorf("job label = %q, want %q", s.Stream["job"], "callmonitor")
	}
	if s.Stream["org_id"] != "org-1" || s.Stream["event_type"] != "call_started" || s.Stream["source"] != "api" {
		t.Errorf("labels = %v, want org_id/event_type/source set", s.Stream)
	}
	if len(s.Values) != 1 || len(s.Values[0]) != 2 {
		t.Fatalf("values = %v, want one [ts, line] pair", s.Values)
	}
	ns, err := strconv.ParseInt(s.Values[0][0], 10, 64)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	want := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC).UnixNano()
	if ns != want {
		t.Errorf("timestamp = %d, want %d", ns, want)
	}
	if s.Values[0][1] != raw {
		t.Errorf("line = %q, want original JSON", s.Values[0][1])
	}
}

func TestPushEventJSONMalformedFallsBack(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := PushEventJSON(context.Background(), srv.URL, []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON returned error: %v", err)
	}
	s := got.Streams[0]
	if len(s.Stream) != 1 || s.Stream["job"] != "callmonitor" {
		t.Errorf("labels = %v, want only the job label", s.Stream)
	}
	if s.Values[0][1] != "not json" {
		t.Errorf("line = %q, want raw input", s.Values[0][1])
	}
}

func TestPushEventSanitizesLabels(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	labels := map[string]string{"event_type": "call started!", "empty": "  "}
	if err := PushEvent(context.Background(), srv.URL, time.Now(), "line", labels); err != nil {
		t.Fatalf("PushEvent returned error: %v", err)
	}
	s := got.Streams[0]
	if s.Stream["event_type"] != "call_started_" {
		t.Errorf("event_type = %q, want %q", s.Stream["event_type"], "call_started_")
	}
	if _, ok := s.Stream["empty"]; ok {
		t.Error("empty label value was not dropped")
	}
}

func TestPushEventErrors(t *testing.T) {
	if err := PushEvent(context.Background(), "", time.Now(), "line", nil); err == nil {
		t.Error("PushEvent accepted an empty base URL")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ingestion disabled", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if err := PushEvent(context.Background(), srv.URL, time.Now(), "line", nil); err == nil {
		t.Error("PushEvent accepted a 503 response")
	}
}
