package permission

import (
	"testing"

	"callmonitor/internal/schema"
)

const testDDL = `CREATE TABLE public.organizations (
    id uuid NOT NULL,
    name text NOT NULL,
    plan text NOT NULL,
    CONSTRAINT organizations_pkey PRIMARY KEY (id)
);

CREATE TABLE public.calls (
    id uuid NOT NULL,
    organization_id uuid NOT NULL,
    status text NOT NULL,
    call_sid text,
    CONSTRAINT calls_pkey PRIMARY KEY (id)
);

CREATE TABLE public.ai_runs (
    id uuid NOT NULL,
    call_id uuid NOT NULL,
    model text NOT NULL,
    CONSTRAINT ai_runs_pkey PRIMARY KEY (id)
);
`

func TestBuildMatrixFiltersStaleColumns(t *testing.T) {
	s := schema.Parse(testDDL)
	toolJSON := []byte(`{
		"organizations": {"GET": ["id", "name", "legacy_flag"], "PUT": ["plan"]}
	}`)
	m, err := BuildMatrix(toolJSON, s)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	entry := m.Matrix["organizations"]
	if entry == nil {
		t.Fatal("organizations entry missing")
	}
	if len(entry.GET) != 2 || entry.GET[0] != "id" || entry.GET[1] != "name" {
		t.Errorf("GET = %v, want [id name]", entry.GET)
	}
	if len(entry.PUT) != 1 || entry.PUT[0] != "plan" {
		t.Errorf("PUT = %v, want [plan]", entry.PUT)
	}
	if len(m.Validation.Errors) != 0 {
		t.Errorf("errors = %v, want none", m.Validation.Errors)
	}
}

func TestBuildMatrixDropsUnknownTables(t *testing.T) {
	s := schema.Parse(testDDL)
	toolJSON := []byte(`{"legacy_table": {"GET": ["id"]}}`)
	m, err := BuildMatrix(toolJSON, s)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	if _, ok := m.Matrix["legacy_table"]; ok {
		t.Error("legacy_table should be dropped, not present in matrix")
	}
}

func TestBuildMatrixForceIncludesCallTables(t *testing.T) {
	s := schema.Parse(testDDL)
	m, err := BuildMatrix([]byte(`{}`), s)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	calls := m.Matrix["calls"]
	if calls == nil {
		t.Fatal("calls entry missing despite force-include")
	}
	want := []string{"id", "organization_id", "status", "call_sid"}
	if len(calls.GET) != len(want) {
		t.Fatalf("calls.GET = %v, want %v", calls.GET, want)
	}
	for i := range want {
		if calls.GET[i] != want[i] {
			t.Errorf("calls.GET[%d] = %q, want %q", i, calls.GET[i], want[i])
		}
	}
	if len(calls.POST) != 0 {
		t.Errorf("calls.POST = %v, want empty", calls.POST)
	}
	if m.Matrix["ai_runs"] == nil {
		t.Error("ai_runs entry missing despite force-include")
	}
}

func TestBuildMatrixAllowedModules(t *testing.T) {
	s := schema.Parse(testDDL)
	m, err := BuildMatrix([]byte(`{"calls": {"GET": ["id"]}}`), s)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	mods := m.Matrix["calls"].AllowedModules
	if len(mods["GET"]) != 3 {
		t.Errorf("GET modules = %v, want 3 entries", mods["GET"])
	}
	for _, op := range []string{"POST", "PUT", "DELETE"} {
		if len(mods[op]) != 1 || mods[op][0] != "server_actions" {
			t.Errorf("%s modules = %v, want [server_actions]", op, mods[op])
		}
	}
}

func TestBuildMatrixInvalidJSON(t *testing.T) {
	s := schema.Parse(testDDL)
	if _, err := BuildMatrix([]byte(`not json`), s); err == nil {
		t.Error("BuildMatrix() error = nil, want parse error")
	}
}
