// Package evidence validates evidence manifests attached to recordings by the
// provider callback.
package evidence

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Artifact is one item in an evidence manifest.
type Artifact struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Manifest is the evidence manifest shape the provider attaches to recording
// callbacks.
type Manifest struct {
	ManifestID   string     `json:"manifest_id"`
	CreatedAt    string     `json:"created_at"`
	Artifacts    []Artifact `json:"artifacts"`
	ManifestHash string     `json:"manifest_hash"`
}

// ErrInvalidManifest is returned when the manifest fails shape validation.
var ErrInvalidManifest = errors.New("invalid evidence manifest")

// Parse unmarshals and validates raw as a Manifest. manifest_hash is optional
// but must be a string when present; manifest_id, created_at, and a non-empty
// artifacts list (each with type and id) are required.
func Parse(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks required fields and artifact entries.
func (m *Manifest) Validate() error {
	if m.ManifestID == "" {
		return fmt.Errorf("%w: manifest_id missing", ErrInvalidManifest)
	}
	if m.CreatedAt == "" {
		return fmt.Errorf("%w: created_at missing", ErrInvalidManifest)
	}
	if len(m.Artifacts) == 0 {
		return fmt.Errorf("%w: artifacts list is empty", ErrInvalidManifest)
	}
	for i, a := range m.Artifacts {
		if a.Type == "" {
			return fmt.Errorf("%w: artifact[%d].type missing", ErrInvalidManifest, i)
		}
		if a.ID == "" {
			return fmt.Errorf("%w: artifact[%d].id missing", ErrInvalidManifest, i)
		}
	}
	return nil
}
