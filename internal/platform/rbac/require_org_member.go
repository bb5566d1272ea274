// Package rbac provides the membership checks shared by the call workflows.
package rbac

import (
	"context"
	"errors"
	"fmt"

	"callmonitor/internal/membership/domain"
)

// OrgMembershipGetter returns a user's membership in an org. Used to resolve caller role.
type OrgMembershipGetter interface {
	GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error)
}

var (
	// ErrUnauthenticated is returned when the caller identity is missing.
	ErrUnauthenticated = errors.New("user and org context required")
	// ErrNotMember is returned when the caller has no membership in the org.
	ErrNotMember = errors.New("not a member of this organization")
	// ErrNotAdmin is returned when the caller is a member but lacks the admin or owner role.
	ErrNotAdmin = errors.New("organization admin or owner required")
)

// RequireOrgMember ensures the caller is authenticated and is a member of the org (any role).
// Returns the membership on success.
func RequireOrgMember(ctx context.Context, getter OrgMembershipGetter, userID, orgID string) (*domain.Membership, error) {
	if userID == "" || orgID == "" {
		return nil, ErrUnauthenticated
	}
	m, err := getter.GetMembershipByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve membership: %w", err)
	}
	if m == nil {
		return nil, ErrNotMember
	}
	return m, nil
}
