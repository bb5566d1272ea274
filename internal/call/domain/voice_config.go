package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// VoiceConfig is the per-org voice configuration applied to new calls.
// Translation requires valid ISO-639-1 source and target language codes.
type VoiceConfig struct {
	Modulations   Modulations `json:"modulations"`
	TranslateFrom string      `json:"translate_from,omitempty"`
	TranslateTo   string      `json:"translate_to,omitempty"`
}

// ErrInvalidLanguage is returned when translation language codes are not ISO-639-1.
var ErrInvalidLanguage = errors.New("invalid language codes for translation")

var iso639 = regexp.MustCompile(`^[a-z]{2}$`)

// Validate checks the voice config. Translation toggled on requires two-letter
// ISO-639-1 codes for both directions (e.g. "en", "es").
func (v *VoiceConfig) Validate() error {
	if !v.Modulations.Translate {
		return nil
	}
	if !iso639.MatchString(v.TranslateFrom) || !iso639.MatchString(v.TranslateTo) {
		return fmt.Errorf("%w: from=%q to=%q", ErrInvalidLanguage, v.TranslateFrom, v.TranslateTo)
	}
	if v.TranslateFrom == v.TranslateTo {
		return fmt.Errorf("%w: source and target are identical", ErrInvalidLanguage)
	}
	return nil
}
