package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"callmonitor/internal/audit"
	auditdomain "callmonitor/internal/audit/domain"
	calldomain "callmonitor/internal/call/domain"
	"callmonitor/internal/evidence"
	recordingdomain "callmonitor/internal/recording/domain"
)

// RecordingCallbackInput is the provider's recording-complete callback.
// Manifest is the optional evidence manifest JSON; when present it must pass
// shape validation.
type RecordingCallbackInput struct {
	CallSID         string
	CallID          string
	RecordingSID    string
	RecordingURL    string
	DurationSeconds int
	Manifest        json.RawMessage
}

// HandleRecordingCallback creates the Recording row for a completed provider
// call, transitions the call to completed, and writes the paired audit
// entries. This is the only path that creates recordings; StartCall records
// intent only.
func (s *Service) HandleRecordingCallback(ctx context.Context, input RecordingCallbackInput) (*recordingdomain.Recording, error) {
	call, err := s.callRepo.GetCallByID(ctx, input.CallID)
	if err != nil {
		return nil, fmt.Errorf("resolve call: %w", err)
	}
	if call == nil {
		return nil, ErrCallNotFound
	}
	if input.CallSID != "" && call.CallSID != input.CallSID {
		return nil, fmt.Errorf("%w: call_sid mismatch", ErrCallNotFound)
	}
	if len(input.Manifest) > 0 {
		if _, err := evidence.Parse(input.Manifest); err != nil {
			return nil, err
		}
	}

	org, err := s.orgRepo.GetOrganizationByID(ctx, call.OrgID)
	if err != nil {
		return nil, fmt.Errorf("resolve organization: %w", err)
	}
	toolID := ""
	if org != nil {
		toolID = org.ToolID
	}

	rec := &recordingdomain.Recording{
		ID:              uuid.New().String(),
		CallID:          call.ID,
		OrgID:           call.OrgID,
		RecordingSID:    input.RecordingSID,
		RecordingURL:    input.RecordingURL,
		DurationSeconds: input.DurationSeconds,
		Status:          recordingdomain.StatusAvailable,
		ToolID:          toolID,
		CreatedAt:       s.nowF(),
	}
	if err := s.recordingRepo.CreateRecording(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	if _, err := s.recorder.Record(ctx, audit.Change{
		OrgID:        call.OrgID,
		SystemID:     call.SystemID,
		ResourceType: auditdomain.ResourceRecordings,
		ResourceID:   rec.ID,
		Action:       auditdomain.ActionCreate,
		After:        rec,
	}); err != nil {
		return nil, err
	}

	before := snapshotCall(call, nil)
	now := s.nowF()
	call.Status = calldomain.StatusCompleted
	call.EndedAt = &now
	if err := s.callRepo.UpdateCall(ctx, call); err != nil {
		return nil, fmt.Errorf("update call: %w", err)
	}
	if _, err := s.recorder.Record(ctx, audit.Change{
		OrgID:        call.OrgID,
		SystemID:     call.SystemID,
		ResourceType: auditdomain.ResourceCalls,
		ResourceID:   call.ID,
		Action:       auditdomain.ActionUpdate,
		Before:       before,
		After:        snapshotCall(call, nil),
	}); err != nil {
		return nil, err
	}
	return rec, nil
}
