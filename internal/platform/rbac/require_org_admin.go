package rbac

import (
	"context"

	"callmonitor/internal/membership/domain"
)

// RequireOrgAdmin ensures the caller is authenticated and has role owner or admin in the org.
// Returns the membership on success.
func RequireOrgAdmin(ctx context.Context, getter OrgMembershipGetter, userID, orgID string) (*domain.Membership, error) {
	m, err := RequireOrgMember(ctx, getter, userID, orgID)
	if err != nil {
		return nil, err
	}
	if m.Role != domain.RoleOwner && m.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return m, nil
}
