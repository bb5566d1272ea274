package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	airundomain "callmonitor/internal/airun/domain"
	"callmonitor/internal/audit"
	auditdomain "callmonitor/internal/audit/domain"
	systemdomain "callmonitor/internal/system/domain"
)

// TriggerTranscription creates a queued AI run for an existing call. Unlike
// the start-call path, a missing AI system is a hard failure here: the run is
// the whole point of the request.
func (s *Service) TriggerTranscription(ctx context.Context, callID, actor string) (*airundomain.AIRun, error) {
	call, err := s.authorizeCall(ctx, callID, actor)
	if err != nil {
		return nil, err
	}
	aiSys, err := s.systemRepo.GetSystemByKey(ctx, systemdomain.KeyAI)
	if err != nil {
		return nil, fmt.Errorf("resolve AI system: %w", err)
	}
	if aiSys == nil {
		return nil, ErrAISystemMissing
	}

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

	if _, err := s.recorder.Record(ctx, audit.Change{
		OrgID:        call.OrgID,
		UserID:       actor,
		SystemID:     aiSys.ID,
		ResourceType: auditdomain.ResourceAIRuns,
		ResourceID:   run.ID,
		Action:       auditdomain.ActionCreate,
		After:        run,
	}); err != nil {
		return nil, err
	}
	return run, nil
}
