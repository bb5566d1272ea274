// Package provider abstracts the external call provider (telephony service).
package provider

import "context"

// DialRequest carries what the provider needs to place a call.
type DialRequest struct {
	OrgID       string
	PhoneNumber string
	Record      bool
}

// CallProvider places calls with the external telephony service and returns
// the provider call identifier (call SID).
type CallProvider interface {
	Dial(ctx context.Context, req DialRequest) (callSID string, err error)
}
