// Package service implements the call lifecycle workflows: start call,
// status reads, transcription triggering, the provider recording callback,
// and the org activity feed.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	airundomain "callmonitor/internal/airun/domain"
	"callmonitor/internal/audit"
	auditdomain "callmonitor/internal/audit/domain"
	calldomain "callmonitor/internal/call/domain"
	membershipdomain "callmonitor/internal/membership/domain"
	orgdomain "callmonitor/internal/organization/domain"
	"callmonitor/internal/platform/rbac"
	"callmonitor/internal/provider"
	recordingdomain "callmonitor/internal/recording/domain"
	systemdomain "callmonitor/internal/system/domain"
)

// OrgRepo is the minimal organization repository needed by the call service.
type OrgRepo interface {
	GetOrganizationByID(ctx context.Context, id string) (*orgdomain.Org, error)
	UpdateOrganizationVoiceConfig(ctx context.Context, id string, cfg json.RawMessage) error
}

// MembershipRepo is the minimal membership repository needed by the call service.
type MembershipRepo interface {
	GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*membershipdomain.Membership, error)
}

// SystemRepo is the minimal system registry needed by the call service.
type SystemRepo interface {
	GetSystemByKey(ctx context.Context, key string) (*systemdomain.System, error)
}

// CallRepo is the minimal call repository needed by the call service.
type CallRepo interface {
	GetCallByID(ctx context.Context, id string) (*calldomain.Call, error)
	CreateCall(ctx context.Context, c *calldomain.Call) error
	UpdateCall(ctx context.Context, c *calldomain.Call) error
}

// AIRunRepo is the minimal AI run repository needed by the call service.
type AIRunRepo interface {
	ListAIRunsByCall(ctx context.Context, callID string) ([]*airundomain.AIRun, error)
	CreateAIRun(ctx context.Context, a *airundomain.AIRun) error
}

// RecordingRepo is the minimal recording repository needed by the call service.
type RecordingRepo interface {
	ListRecordingsByCall(ctx context.Context, callID string) ([]*recordingdomain.Recording, error)
	CreateRecording(ctx context.Context, rec *recordingdomain.Recording) error
}

// AuditReader lists audit entries for the activity feed and status reads.
type AuditReader interface {
	ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*auditdomain.AuditLog, error)
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*auditdomain.AuditLog, error)
}

// Service implements the call workflows against injected repositories, the
// call provider, and the audit recorder.
type Service struct {
	orgRepo        OrgRepo
	membershipRepo MembershipRepo
	systemRepo     SystemRepo
	callRepo       CallRepo
	airunRepo      AIRunRepo
	recordingRepo  RecordingRepo
	auditReader    AuditReader
	recorder       *audit.Recorder
	dialer         provider.CallProvider
	model          string
	nowF           func() time.Time
}

// New returns a call Service with the given dependencies. model is recorded
// on transcription runs (e.g. assemblyai-v1).
func New(
	orgRepo OrgRepo,
	membershipRepo MembershipRepo,
	systemRepo SystemRepo,
	callRepo CallRepo,
	airunRepo AIRunRepo,
	recordingRepo RecordingRepo,
	auditReader AuditReader,
	recorder *audit.Recorder,
	dialer provider.CallProvider,
	model string,
) *Service {
	if model == "" {
		model = "assemblyai-v1"
	}
	return &Service{
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		systemRepo:     systemRepo,
		callRepo:       callRepo,
		airunRepo:      airunRepo,
		recordingRepo:  recordingRepo,
		auditReader:    auditReader,
		recorder:       recorder,
		dialer:         dialer,
		model:          model,
		nowF:           func() time.Time { return time.Now().UTC() },
	}
}

// StartCallInput is the request to start a call.
type StartCallInput struct {
	OrgID       string
	PhoneNumber string
	Modulations calldomain.Modulations
}

// StartCallResult is the successful outcome. Warnings may be non-empty on
// success (e.g. transcription skipped); callers must inspect them.
type StartCallResult struct {
	CallID   string
	CallSID  string
	Warnings []Warning
}

// callSnapshot is the audit "after" image of a call row, with the applied
// modulations attached under config (matching the stored audit contract).
type callSnapshot struct {
	ID        string                  `json:"id"`
	OrgID     string                  `json:"organization_id"`
	SystemID  string                  `json:"system_id"`
	Status    calldomain.Status       `json:"status"`
	StartedAt *time.Time              `json:"started_at"`
	EndedAt   *time.Time              `json:"ended_at"`
	CreatedBy string                  `json:"created_by"`
	CallSID   string                  `json:"call_sid"`
	Config    *calldomain.Modulations `json:"config,omitempty"`
}

func snapshotCall(c *calldomain.Call, mods *calldomain.Modulations) callSnapshot {
	return callSnapshot{
		ID:        c.ID,
		OrgID:     c.OrgID,
		SystemID:  c.SystemID,
		Status:    c.Status,
		StartedAt: c.StartedAt,
		EndedAt:   c.EndedAt,
		CreatedBy: c.CreatedBy,
		CallSID:   c.CallSID,
		Config:    mods,
	}
}

// StartCall runs the call-start workflow for actor. Hard preconditions are
// checked in order and abort on first failure; soft failures (missing AI
// system when transcription was requested) are collected as warnings on a
// successful result.
func (s *Service) StartCall(ctx context.Context, input StartCallInput, actor string) (*StartCallResult, error) {
	if actor == "" {
		return nil, ErrAuthRequired
	}
	org, err := s.orgRepo.GetOrganizationByID(ctx, input.OrgID)
	if err != nil {
		return nil, fmt.Errorf("resolve organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	if _, err := s.requireMember(ctx, actor, org.ID); err != nil {
		return nil, err
	}
	controlSys, err := s.systemRepo.GetSystemByKey(ctx, systemdomain.KeyControlPlane)
	if err != nil {
		return nil, fmt.Errorf("resolve control system: %w", err)
	}
	if controlSys == nil {
		return nil, ErrControlSystemMissing
	}

	call := &calldomain.Call{
		ID:        uuid.New().String(),
		OrgID:     org.ID,
		SystemID:  controlSys.ID,
		Status:    calldomain.StatusPending,
		CreatedBy: actor,
	}
	if err := s.callRepo.CreateCall(ctx, call); err != nil {
		return nil, fmt.Errorf("create call: %w", err)
	}

	callSID, err := s.dialer.Dial(ctx, provider.DialRequest{
		OrgID:       org.ID,
		PhoneNumber: input.PhoneNumber,
		Record:      input.Modulations.Record,
	})
	if err != nil {
		s.failCall(ctx, call, actor, controlSys.ID)
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}
	now := s.nowF()
	call.CallSID = callSID
	call.Status = calldomain.StatusInProgress
	call.StartedAt = &now
	if err := s.callRepo.UpdateCall(ctx, call); err != nil {
		return nil, fmt.Errorf("update call: %w", err)
	}

	var warnings []Warning
	if input.Modulations.Transcribe {
		aiSys, err := s.systemRepo.GetSystemByKey(ctx, systemdomain.KeyAI)
		if err != nil {
			return nil, fmt.Errorf("resolve AI system: %w", err)
		}
		if aiSys == nil {
			warnings = append(warnings, WarnAISystemMissing)
		} else {
			run := &airundomain.AIRun{
				ID:       uuid.New().String(),
				CallID:   call.ID,
				SystemID: aiSys.ID,
				Model:    s.model,
				Status:   airundomain.StatusQueued,
			}
			if err := s.airunRepo.CreateAIRun(ctx, run); err != nil {
				return nil, fmt.Errorf("create ai run: %w", err)
			}
		}
	}

	if input.Modulations.Record {
		// Intent only; the Recording row is created later by the provider callback.
		_, err := s.recorder.Record(ctx, audit.Change{
			OrgID:        org.ID,
			UserID:       actor,
			SystemID:     controlSys.ID,
			ResourceType: auditdomain.ResourceCalls,
			ResourceID:   call.ID,
			Action:       auditdomain.ActionIntentRecordingRequest,
			After: map[string]any{
				"tool_id":      org.ToolID,
				"requested_at": s.nowF().Format(time.RFC3339Nano),
			},
		})
		if err != nil {
			return nil, err
		}
	}

	mods := input.Modulations
	if _, err := s.recorder.Record(ctx, audit.Change{
		OrgID:        org.ID,
		UserID:       actor,
		SystemID:     controlSys.ID,
		ResourceType: auditdomain.ResourceCalls,
		ResourceID:   call.ID,
		Action:       auditdomain.ActionCreate,
		After:        snapshotCall(call, &mods),
	}); err != nil {
		return nil, err
	}

	return &StartCallResult{CallID: call.ID, CallSID: callSID, Warnings: warnings}, nil
}

// requireMember checks the actor's membership and maps rbac failures to the
// workflow's coded errors.
func (s *Service) requireMember(ctx context.Context, actor, orgID string) (*membershipdomain.Membership, error) {
	m, err := rbac.RequireOrgMember(ctx, s.membershipRepo, actor, orgID)
	switch {
	case errors.Is(err, rbac.ErrUnauthenticated):
		return nil, ErrAuthRequired
	case errors.Is(err, rbac.ErrNotMember):
		return nil, ErrOrgMismatch
	case err != nil:
		return nil, err
	}
	return m, nil
}

// failCall marks the call failed after a provider rejection. Best-effort: the
// caller is already returning the dial error.
func (s *Service) failCall(ctx context.Context, call *calldomain.Call, actor, systemID string) {
	before := snapshotCall(call, nil)
	call.Status = calldomain.StatusFailed
	if err := s.callRepo.UpdateCall(ctx, call); err != nil {
		return
	}
	s.recorder.RecordBestEffort(ctx, audit.Change{
		OrgID:        call.OrgID,
		UserID:       actor,
		SystemID:     systemID,
		ResourceType: auditdomain.ResourceCalls,
		ResourceID:   call.ID,
		Action:       auditdomain.ActionUpdate,
		Before:       before,
		After:        snapshotCall(call, nil),
	})
}
