package permission

import (
	"os"
	"strings"
	"testing"

	"callmonitor/internal/schema"
)

func TestValidateContractsAgainstRealSchema(t *testing.T) {
	ddl, err := os.ReadFile("../db/migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	s := schema.Parse(string(ddl))
	res := ValidateContracts(s, APIContracts)
	if !res.Valid {
		t.Errorf("contracts invalid against live schema: %v", res.Errors)
	}
}

func TestValidateContractsMissingTable(t *testing.T) {
	s := schema.Parse(`CREATE TABLE public.calls (
    id uuid NOT NULL,
    CONSTRAINT calls_pkey PRIMARY KEY (id)
);
`)
	contracts := map[string]Contract{
		"getCallStatus": {
			Reads: TableAccess{"recordings": {"id"}},
		},
	}
	res := ValidateContracts(s, contracts)
	if res.Valid {
		t.Fatal("res.Valid = true, want false")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "missing table recordings") {
		t.Errorf("errors = %v, want missing table recordings", res.Errors)
	}
}

func TestValidateContractsMissingColumn(t *testing.T) {
	s := schema.Parse(`CREATE TABLE public.calls (
    id uuid NOT NULL,
    status text NOT NULL,
    CONSTRAINT calls_pkey PRIMARY KEY (id)
);
`)
	contracts := map[string]Contract{
		"startCall": {
			Writes: TableAccess{"calls": {"id", "call_sid"}},
		},
	}
	res := ValidateContracts(s, contracts)
	if res.Valid {
		t.Fatal("res.Valid = true, want false")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "missing column calls.call_sid") {
		t.Errorf("errors = %v, want missing column calls.call_sid", res.Errors)
	}
}
