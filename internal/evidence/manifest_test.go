package evidence

import (
	"errors"
	"testing"
)

const validManifest = `{
	"manifest_id": "mf-1",
	"created_at": "2026-02-01T10:00:00Z",
	"artifacts": [
		{"type": "audio", "id": "art-1"},
		{"type": "waveform", "id": "art-2"}
	],
	"manifest_hash": "abc123"
}`

func TestParseValidManifest(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if m.ManifestID != "mf-1" {
		t.Errorf("ManifestID = %q, want %q", m.ManifestID, "mf-1")
	}
	if len(m.Artifacts) != 2 {
		t.Fatalf("len(Artifacts) = %d, want 2", len(m.Artifacts))
	}
	if m.Artifacts[1].Type != "waveform" {
		t.Errorf("Artifacts[1].Type = %q, want %q", m.Artifacts[1].Type, "waveform")
	}
}

func TestParseHashOptional(t *testing.T) {
	raw := `{"manifest_id":"mf-2","created_at":"2026-02-01T10:00:00Z","artifacts":[{"type":"audio","id":"a"}]}`
	m, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if m.ManifestHash != "" {
		t.Errorf("ManifestHash = %q, want empty", m.ManifestHash)
	}
}

func TestParseInvalidManifests(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"hash not a string", `{"manifest_id":"m","created_at":"t","artifacts":[{"type":"a","id":"b"}],"manifest_hash":42}`},
		{"missing manifest_id", `{"created_at":"t","artifacts":[{"type":"a","id":"b"}]}`},
		{"missing created_at", `{"manifest_id":"m","artifacts":[{"type":"a","id":"b"}]}`},
		{"empty artifacts", `{"manifest_id":"m","created_at":"t","artifacts":[]}`},
		{"artifact missing type", `{"manifest_id":"m","created_at":"t","artifacts":[{"id":"b"}]}`},
		{"artifact missing id", `{"manifest_id":"m","created_at":"t","artifacts":[{"type":"a"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.raw)); !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("Parse error = %v, want ErrInvalidManifest", err)
			}
		})
	}
}
