// Package server exposes the HTTP API: routing, authentication middleware,
// request metrics, and the call handlers.
package server

import "context"

type identityKey struct{}

type identity struct {
	UserID string
	OrgID  string
}

// WithIdentity returns a context carrying the authenticated user and org.
func WithIdentity(ctx context.Context, userID, orgID string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{UserID: userID, OrgID: orgID})
}

// GetUserID returns the authenticated user id from ctx.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	if !ok || id.UserID == "" {
		return "", false
	}
	return id.UserID, true
}

// GetOrgID returns the token's org scope from ctx.
func GetOrgID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	if !ok || id.OrgID == "" {
		return "", false
	}
	return id.OrgID, true
}
