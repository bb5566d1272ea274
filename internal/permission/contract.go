package permission

import (
	"fmt"
	"sort"

	"callmonitor/internal/schema"
)

// TableAccess maps table name to the columns an action touches.
type TableAccess map[string][]string

// Contract declares the tables and columns one API action reads and writes.
type Contract struct {
	Reads  TableAccess
	Writes TableAccess
}

// APIContracts is the declared read/write surface of each server action,
// checked against the schema so column renames surface as lint errors instead
// of runtime failures.
var APIContracts = map[string]Contract{
	"startCall": {
		Reads: TableAccess{
			"organizations": {"id", "plan", "tool_id", "created_by"},
			"org_members":   {"id", "organization_id", "user_id"},
			"systems":       {"id", "key"},
		},
		Writes: TableAccess{
			"calls":      {"id", "organization_id", "system_id", "status", "started_at", "ended_at", "created_by", "call_sid"},
			"ai_runs":    {"id", "call_id", "system_id", "model", "status"},
			"audit_logs": {"id", "organization_id", "user_id", "system_id", "resource_type", "resource_id", "action", "before", "after"},
		},
	},
	"getCallStatus": {
		Reads: TableAccess{
			"calls":              {"id", "organization_id", "system_id", "status", "started_at", "ended_at", "created_by", "call_sid"},
			"ai_runs":            {"id", "call_id", "system_id", "model", "status", "started_at", "completed_at", "output"},
			"audit_logs":         {"id", "action", "after", "created_at"},
			"recordings":         {"id", "recording_sid", "recording_url", "duration_seconds", "status", "created_at", "tool_id"},
			"evidence_manifests": {"id", "recording_id", "manifest", "created_at"},
		},
		Writes: TableAccess{
			"audit_logs": {"id", "organization_id", "user_id", "system_id", "resource_type", "resource_id", "action", "before", "after"},
		},
	},
	"triggerTranscription": {
		Reads: TableAccess{
			"recordings": {"id", "organization_id", "recording_url", "status", "tool_id"},
		},
		Writes: TableAccess{
			"ai_runs":    {"id", "call_id", "system_id", "model", "status", "started_at"},
			"audit_logs": {"id", "organization_id", "user_id", "system_id", "resource_type", "resource_id", "action", "before", "after"},
		},
	},
	"getCallActivity": {
		Reads: TableAccess{
			"audit_logs": {"id", "organization_id", "user_id", "system_id", "resource_type", "resource_id", "action", "before", "after", "created_at"},
		},
		Writes: TableAccess{},
	},
}

// ContractResult is the contract validation outcome.
type ContractResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateContracts checks every declared API contract against the schema and
// reports missing tables or columns.
func ValidateContracts(s *schema.Schema, contracts map[string]Contract) ContractResult {
	var errs []string
	for action, c := range contracts {
		errs = append(errs, checkAccess(s, action, c.Reads)...)
		errs = append(errs, checkAccess(s, action, c.Writes)...)
	}
	if errs == nil {
		errs = []string{}
	}
	sort.Strings(errs)
	return ContractResult{Valid: len(errs) == 0, Errors: errs}
}

func checkAccess(s *schema.Schema, action string, access TableAccess) []string {
	var errs []string
	for tbl, cols := range access {
		t, ok := s.Tables[tbl]
		if !ok {
			errs = append(errs, fmt.Sprintf("Action %s references missing table %s", action, tbl))
			continue
		}
		for _, c := range cols {
			if !t.HasColumn(c) {
				errs = append(errs, fmt.Sprintf("Action %s references missing column %s.%s", action, tbl, c))
			}
		}
	}
	return errs
}
