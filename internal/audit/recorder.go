// Package audit writes the append-only audit trail. Every state-changing
// action on a call or AI run must be paired with exactly one change entry;
// intent entries are additional, never substitutes.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"callmonitor/internal/audit/domain"
	auditrepo "callmonitor/internal/audit/repository"
)

// Change describes one audit entry to record. Before and After are marshaled
// to JSON; Before may be nil for creates and intents.
type Change struct {
	OrgID        string
	UserID       string
	SystemID     string
	ResourceType string
	ResourceID   string
	Action       string
	Before       any
	After        any
}

// Recorder persists audit entries. The call workflow uses Record (errors
// propagate, keeping the entry-per-mutation invariant); paths that are
// already returning another error use RecordBestEffort.
type Recorder struct {
	repo auditrepo.Repository
	nowF func() time.Time
}

// NewRecorder returns a Recorder persisting to repo.
func NewRecorder(repo auditrepo.Repository) *Recorder {
	return &Recorder{repo: repo, nowF: func() time.Time { return time.Now().UTC() }}
}

// Record writes one audit entry and returns it. Fails when marshaling or
// persistence fails; callers in mutation paths must treat that as fatal for
// the mutation.
func (r *Recorder) Record(ctx context.Context, ch Change) (*domain.AuditLog, error) {
	before, err := marshalSnapshot(ch.Before)
	if err != nil {
		return nil, fmt.Errorf("audit: marshal before: %w", err)
	}
	after, err := marshalSnapshot(ch.After)
	if err != nil {
		return nil, fmt.Errorf("audit: marshal after: %w", err)
	}
	entry := &domain.AuditLog{
		ID:           uuid.New().String(),
		OrgID:        ch.OrgID,
		UserID:       ch.UserID,
		SystemID:     ch.SystemID,
		ResourceType: ch.ResourceType,
		ResourceID:   ch.ResourceID,
		Action:       ch.Action,
		Before:       before,
		After:        after,
		CreatedAt:    r.nowF(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("audit: create entry: %w", err)
	}
	return entry, nil
}

// RecordBestEffort writes one audit entry, logging and swallowing failures.
// For request-level auditing where the request must not fail on audit errors.
func (r *Recorder) RecordBestEffort(ctx context.Context, ch Change) {
	if _, err := r.Record(ctx, ch); err != nil {
		log.Printf("audit: best-effort record %s/%s failed: %v", ch.Action, ch.ResourceType, err)
	}
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}
