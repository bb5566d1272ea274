package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	auditdomain "callmonitor/internal/audit/domain"
	calldomain "callmonitor/internal/call/domain"
	"callmonitor/internal/evidence"
	membershipdomain "callmonitor/internal/membership/domain"
)

const validManifest = `{
	"manifest_id": "mani-1",
	"created_at": "2026-08-24T10:00:00Z",
	"artifacts": [{"type": "recording", "id": "rec-sid-1"}],
	"manifest_hash": "abc123"
}`

func startCall(t *testing.T, f *fixture) *StartCallResult {
	t.Helper()
	res, err := f.svc.StartCall(context.Background(), StartCallInput{
		OrgID:       "org-1",
		PhoneNumber: "+15550001111",
		Modulations: calldomain.Modulations{Record: true},
	}, "user-1")
	if err != nil {
		t.Fatalf("StartCall() error = %v", err)
	}
	return res
}

func TestRecordingCallbackCreatesRecordingAndCompletesCall(t *testing.T) {
	f := newFixture(t)
	res := startCall(t, f)
	rec, err := f.svc.HandleRecordingCallback(context.Background(), RecordingCallbackInput{
		CallID:          res.CallID,
		CallSID:         res.CallSID,
		RecordingSID:    "RS_1",
		RecordingURL:    "https://cdn.example.com/rec/RS_1.mp3",
		DurationSeconds: 42,
		Manifest:        json.RawMessage(validManifest),
	})
	if err != nil {
		t.Fatalf("HandleRecordingCallback() error = %v", err)
	}
	if rec.Status != "available" {
		t.Errorf("rec.Status = %q, want available", rec.Status)
	}
	if rec.ToolID != "tool-1" {
		t.Errorf("rec.ToolID = %q, want tool-1", rec.ToolID)
	}
	call, _ := f.calls.GetCallByID(context.Background(), res.CallID)
	if call.Status != calldomain.StatusCompleted {
		t.Errorf("call.Status = %q, want completed", call.Status)
	}
	if call.EndedAt == nil {
		t.Error("call.EndedAt is nil")
	}

	recEntries, _ := f.audits.ListByResource(context.Background(), auditdomain.ResourceRecordings, rec.ID)
	if len(recEntries) != 1 || recEntries[0].Action != auditdomain.ActionCreate {
		t.Errorf("recording audit = %v, want one create", recEntries)
	}
	callEntries, _ := f.audits.ListByResource(context.Background(), auditdomain.ResourceCalls, res.CallID)
	last := callEntries[len(callEntries)-1]
	if last.Action != auditdomain.ActionUpdate {
		t.Errorf("last call audit = %q, want update", last.Action)
	}
	if last.Before == nil {
		t.Error("update audit Before should carry the pre-completion snapshot")
	}
}

func TestRecordingCallbackUnknownCall(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HandleRecordingCallback(context.Background(), RecordingCallbackInput{
		CallID:       "call-missing",
		RecordingSID: "RS_1",
		RecordingURL: "https://cdn.example.com/rec/RS_1.mp3",
	})
	if !errors.Is(err, ErrCallNotFound) {
		t.Errorf("err = %v, want ErrCallNotFound", err)
	}
}

func TestRecordingCallbackSIDMismatch(t *testing.T) {
	f := newFixture(t)
	res := startCall(t, f)
	_, err := f.svc.HandleRecordingCallback(context.Background(), RecordingCallbackInput{
		CallID:       res.CallID,
		CallSID:      "SW_other",
		RecordingSID: "RS_1",
		RecordingURL: "https://cdn.example.com/rec/RS_1.mp3",
	})
	if !errors.Is(err, ErrCallNotFound) {
		t.Errorf("err = %v, want ErrCallNotFound", err)
	}
	if f.recordings.Len() != 0 {
		t.Errorf("recordings = %d, want 0", f.recordings.Len())
	}
}

func TestRecordingCallbackInvalidManifest(t *testing.T) {
	f := newFixture(t)
	res := startCall(t, f)
	_, err := f.svc.HandleRecordingCallback(context.Background(), RecordingCallbackInput{
		CallID:       res.CallID,
		RecordingSID: "RS_1",
		RecordingURL: "https://cdn.example.com/rec/RS_1.mp3",
		Manifest:     json.RawMessage(`{"manifest_id": "mani-1"}`),
	})
	if !errors.Is(err, evidence.ErrInvalidManifest) {
		t.Errorf("err = %v, want ErrInvalidManifest", err)
	}
	if f.recordings.Len() != 0 {
		t.Errorf("recordings = %d, want 0", f.recordings.Len())
	}
}

func TestUpdateVoiceConfigRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.members.CreateMembership(ctx, &membershipdomain.Membership{ID: "m-3", OrgID: "org-1", UserID: "user-3", Role: membershipdomain.RoleMember}); err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	cfg := calldomain.VoiceConfig{Modulations: calldomain.Modulations{Record: true}}
	if _, err := f.svc.UpdateVoiceConfig(ctx, "org-1", "user-3", cfg); !errors.Is(err, ErrAdminRequired) {
		t.Errorf("err = %v, want ErrAdminRequired", err)
	}
}

func TestUpdateVoiceConfigInvalidLanguage(t *testing.T) {
	f := newFixture(t)
	cfg := calldomain.VoiceConfig{
		Modulations:   calldomain.Modulations{Translate: true},
		TranslateFrom: "english",
		TranslateTo:   "es",
	}
	if _, err := f.svc.UpdateVoiceConfig(context.Background(), "org-1", "user-1", cfg); !errors.Is(err, calldomain.ErrInvalidLanguage) {
		t.Errorf("err = %v, want ErrInvalidLanguage", err)
	}
}

func TestUpdateVoiceConfigPersistsAndRecordsAudit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cfg := calldomain.VoiceConfig{
		Modulations:   calldomain.Modulations{Translate: true},
		TranslateFrom: "en",
		TranslateTo:   "es",
	}
	applied, err := f.svc.UpdateVoiceConfig(ctx, "org-1", "user-1", cfg)
	if err != nil {
		t.Fatalf("UpdateVoiceConfig() error = %v", err)
	}
	if applied.TranslateTo != "es" {
		t.Errorf("applied.TranslateTo = %q, want es", applied.TranslateTo)
	}

	org, err := f.orgs.GetOrganizationByID(ctx, "org-1")
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	var stored calldomain.VoiceConfig
	if err := json.Unmarshal(org.VoiceConfig, &stored); err != nil {
		t.Fatalf("unmarshal stored config: %v", err)
	}
	if stored.TranslateFrom != "en" || stored.TranslateTo != "es" {
		t.Errorf("stored config = %+v, want en/es translation", stored)
	}

	entries, _ := f.audits.ListByResource(ctx, auditdomain.ResourceOrganizations, "org-1")
	if len(entries) != 1 || entries[0].Action != auditdomain.ActionUpdate {
		t.Fatalf("audit = %v, want one organizations update", entries)
	}
	if entries[0].Before != nil {
		t.Errorf("first update Before = %s, want nil", entries[0].Before)
	}

	second := calldomain.VoiceConfig{Modulations: calldomain.Modulations{Record: true}}
	if _, err := f.svc.UpdateVoiceConfig(ctx, "org-1", "user-1", second); err != nil {
		t.Fatalf("UpdateVoiceConfig() second error = %v", err)
	}
	entries, _ = f.audits.ListByResource(ctx, auditdomain.ResourceOrganizations, "org-1")
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	var beforeCfg calldomain.VoiceConfig
	if err := json.Unmarshal(entries[1].Before, &beforeCfg); err != nil {
		t.Fatalf("unmarshal second Before: %v", err)
	}
	if beforeCfg.TranslateTo != "es" {
		t.Errorf("second update Before.TranslateTo = %q, want es", beforeCfg.TranslateTo)
	}
}
