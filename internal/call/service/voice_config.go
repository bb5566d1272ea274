package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"callmonitor/internal/audit"
	auditdomain "callmonitor/internal/audit/domain"
	calldomain "callmonitor/internal/call/domain"
	membershipdomain "callmonitor/internal/membership/domain"
	"callmonitor/internal/platform/rbac"
)

// UpdateVoiceConfig validates and persists the org voice configuration. Only
// org admins and owners may change it; the change lands in the audit trail
// with the previous config as the before image.
func (s *Service) UpdateVoiceConfig(ctx context.Context, orgID, actor string, cfg calldomain.VoiceConfig) (*calldomain.VoiceConfig, error) {
	org, err := s.orgRepo.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	if _, err := s.requireAdmin(ctx, actor, org.ID); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal voice config: %w", err)
	}
	if err := s.orgRepo.UpdateOrganizationVoiceConfig(ctx, org.ID, raw); err != nil {
		return nil, fmt.Errorf("update voice config: %w", err)
	}
	var before any
	if len(org.VoiceConfig) > 0 {
		before = org.VoiceConfig
	}
	if _, err := s.recorder.Record(ctx, audit.Change{
		OrgID:        org.ID,
		UserID:       actor,
		ResourceType: auditdomain.ResourceOrganizations,
		ResourceID:   org.ID,
		Action:       auditdomain.ActionUpdate,
		Before:       before,
		After:        cfg,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Service) requireAdmin(ctx context.Context, actor, orgID string) (*membershipdomain.Membership, error) {
	m, err := rbac.RequireOrgAdmin(ctx, s.membershipRepo, actor, orgID)
	switch {
	case errors.Is(err, rbac.ErrUnauthenticated):
		return nil, ErrAuthRequired
	case errors.Is(err, rbac.ErrNotMember):
		return nil, ErrOrgMismatch
	case errors.Is(err, rbac.ErrNotAdmin):
		return nil, ErrAdminRequired
	case err != nil:
		return nil, err
	}
	return m, nil
}
