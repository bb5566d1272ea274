package domain

import "time"

// Membership links a user to an organization with a role (org_members row).
type Membership struct {
	ID        string
	OrgID     string
	UserID    string
	Role      Role
	CreatedAt time.Time
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)
