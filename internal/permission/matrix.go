// Package permission builds the per-table permission matrix from the tool
// alignment file and the parsed schema, and validates API contracts against
// the schema. The matrix is a lint aid for reviewers, not a runtime
// enforcement layer.
package permission

import (
	"encoding/json"
	"fmt"
	"sort"

	"callmonitor/internal/schema"
)

// Operations are the HTTP verbs a matrix entry tracks, in output order.
var Operations = []string{"GET", "POST", "PUT", "DELETE"}

// AllowedModules maps each operation to the application modules permitted to
// perform it. Reads are open to all module kinds; writes go through server
// actions only.
var AllowedModules = map[string][]string{
	"GET":    {"ui", "server_actions", "api_routes"},
	"POST":   {"server_actions"},
	"PUT":    {"server_actions"},
	"DELETE": {"server_actions"},
}

// TableEntry is the per-table matrix entry: allowed columns per operation
// plus the module allowlist.
type TableEntry struct {
	GET            []string            `json:"GET"`
	POST           []string            `json:"POST"`
	PUT            []string            `json:"PUT"`
	DELETE         []string            `json:"DELETE"`
	AllowedModules map[string][]string `json:"allowed_modules"`
}

// Matrix is the built permission matrix with its validation report.
type Matrix struct {
	Matrix     map[string]*TableEntry `json:"matrix"`
	Validation Validation             `json:"validation"`
}

// Validation summarizes the schema cross-check.
type Validation struct {
	TablesInSchema []string `json:"tables_in_schema"`
	Errors         []string `json:"errors"`
}

// forceIncluded tables get a full-column GET entry even when the tool
// alignment file omits them.
var forceIncluded = []string{"calls", "ai_runs"}

// BuildMatrix parses the tool alignment JSON (table -> op -> columns), drops
// tables absent from the schema, filters stale columns, and attaches the
// module allowlist per table.
func BuildMatrix(toolJSON []byte, s *schema.Schema) (*Matrix, error) {
	var tool map[string]map[string][]string
	if err := json.Unmarshal(toolJSON, &tool); err != nil {
		return nil, fmt.Errorf("parse tool alignment: %w", err)
	}

	updated := map[string]*TableEntry{}
	for tbl, perms := range tool {
		t, ok := s.Tables[tbl]
		if !ok {
			continue
		}
		entry := &TableEntry{AllowedModules: cloneAllowedModules()}
		for _, op := range Operations {
			filtered := []string{}
			for _, c := range perms[op] {
				if t.HasColumn(c) {
					filtered = append(filtered, c)
				}
			}
			entry.set(op, filtered)
		}
		updated[tbl] = entry
	}

	for _, required := range forceIncluded {
		if _, ok := updated[required]; ok {
			continue
		}
		t, ok := s.Tables[required]
		if !ok {
			continue
		}
		entry := &TableEntry{AllowedModules: cloneAllowedModules()}
		for _, op := range Operations {
			entry.set(op, []string{})
		}
		entry.GET = append([]string{}, t.ColumnNames()...)
		updated[required] = entry
	}

	var errs []string
	for tbl, entry := range updated {
		t := s.Tables[tbl]
		for _, op := range Operations {
			for _, c := range entry.get(op) {
				if t == nil || !t.HasColumn(c) {
					errs = append(errs, fmt.Sprintf("%s.%s includes unknown column %s", tbl, op, c))
				}
			}
		}
	}
	sort.Strings(errs)

	inSchema := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		inSchema = append(inSchema, name)
	}
	sort.Strings(inSchema)

	return &Matrix{
		Matrix: updated,
		Validation: Validation{
			TablesInSchema: inSchema,
			Errors:         errs,
		},
	}, nil
}

func cloneAllowedModules() map[string][]string {
	out := make(map[string][]string, len(AllowedModules))
	for op, mods := range AllowedModules {
		out[op] = append([]string{}, mods...)
	}
	return out
}

func (e *TableEntry) set(op string, cols []string) {
	switch op {
	case "GET":
		e.GET = cols
	case "POST":
		e.POST = cols
	case "PUT":
		e.PUT = cols
	case "DELETE":
		e.DELETE = cols
	}
}

func (e *TableEntry) get(op string) []string {
	switch op {
	case "GET":
		return e.GET
	case "POST":
		return e.POST
	case "PUT":
		return e.PUT
	case "DELETE":
		return e.DELETE
	}
	return nil
}
