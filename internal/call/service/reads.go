package service

import (
	"context"
	"fmt"

	airundomain "callmonitor/internal/airun/domain"
	auditdomain "callmonitor/internal/audit/domain"
	calldomain "callmonitor/internal/call/domain"
	orgdomain "callmonitor/internal/organization/domain"
	recordingdomain "callmonitor/internal/recording/domain"
)

// CallStatus is the full read model for one call.
type CallStatus struct {
	Call       *calldomain.Call
	AIRuns     []*airundomain.AIRun
	Recordings []*recordingdomain.Recording
	Activity   []*auditdomain.AuditLog
}

// GetCallStatus returns the call with its AI runs, recordings, and audit
// activity. The actor must be a member of the call's organization.
func (s *Service) GetCallStatus(ctx context.Context, callID, actor string) (*CallStatus, error) {
	call, err := s.authorizeCall(ctx, callID, actor)
	if err != nil {
		return nil, err
	}
	runs, err := s.airunRepo.ListAIRunsByCall(ctx, call.ID)
	if err != nil {
		return nil, fmt.Errorf("list ai runs: %w", err)
	}
	recs, err := s.recordingRepo.ListRecordingsByCall(ctx, call.ID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	activity, err := s.auditReader.ListByResource(ctx, auditdomain.ResourceCalls, call.ID)
	if err != nil {
		return nil, fmt.Errorf("list call activity: %w", err)
	}
	return &CallStatus{Call: call, AIRuns: runs, Recordings: recs, Activity: activity}, nil
}

// CallActivity returns the org's audit feed, newest first. The actor must be
// a member of the organization.
func (s *Service) CallActivity(ctx context.Context, orgID, actor string, limit, offset int32) ([]*auditdomain.AuditLog, error) {
	if _, err := s.requireMember(ctx, actor, orgID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.auditReader.ListByOrg(ctx, orgID, limit, offset)
}

// Capabilities returns which modulations the organization may enable,
// derived from its plan. Paid plans unlock record and transcribe; translate,
// survey, and synthetic_caller are not yet offered on any plan.
func (s *Service) Capabilities(ctx context.Context, orgID, actor string) (calldomain.Capabilities, error) {
	if actor == "" {
		return nil, ErrAuthRequired
	}
	org, err := s.orgRepo.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	if _, err := s.requireMember(ctx, actor, org.ID); err != nil {
		return nil, err
	}
	paid := org.Plan == orgdomain.PlanPaid
	return calldomain.Capabilities{
		"record":           paid,
		"transcribe":       paid,
		"translate":        false,
		"survey":           false,
		"synthetic_caller": false,
	}, nil
}

// authorizeCall loads the call and checks the actor's membership in its org.
func (s *Service) authorizeCall(ctx context.Context, callID, actor string) (*calldomain.Call, error) {
	if actor == "" {
		return nil, ErrAuthRequired
	}
	call, err := s.callRepo.GetCallByID(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("resolve call: %w", err)
	}
	if call == nil {
		return nil, ErrCallNotFound
	}
	if _, err := s.requireMember(ctx, actor, call.OrgID); err != nil {
		return nil, err
	}
	return call, nil
}
