package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"vietkey/internal/charset"
	"vietkey/internal/keys"
)

// CustomTrigger is one user-supplied trigger override for a scheme.
// Kind "none" unbinds the key; "tone", "shape", "stroke" and "remove"
// rebind it. Targets names the vowel letters a shape trigger may modify.
type CustomTrigger struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Tone    string `json:"tone"`
	Shape   string `json:"shape"`
	Targets string `json:"targets"`
	WVowel  bool   `json:"w_vowel"`
}

// LoadCustomTriggers reads trigger overrides from a JSON file.
func LoadCustomTriggers(path string) ([]CustomTrigger, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open custom trigger file: %w", err)
	}
	defer file.Close()

	var triggers []CustomTrigger
	if err := json.NewDecoder(file).Decode(&triggers); err != nil {
		return nil, fmt.Errorf("parse custom trigger file: %w", err)
	}
	return triggers, nil
}

// ApplyCustomTriggers merges overrides into a scheme in place.
func ApplyCustomTriggers(s *Scheme, triggers []CustomTrigger) error {
	if s == nil {
		return fmt.Errorf("no scheme to customize")
	}
	for _, ct := range triggers {
		code, err := resolveKeyName(ct.Key)
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(ct.Kind)) {
		case "none":
			s.unbind(code)
		case "stroke":
			s.bind(code, Trigger{Kind: TriggerStroke})
		case "remove":
			s.bind(code, Trigger{Kind: TriggerRemove})
		case "tone":
			tone, err := parseTone(ct.Tone)
			if err != nil {
				return err
			}
			s.bind(code, toneTrigger(tone))
		case "shape":
			shape, err := parseShape(ct.Shape)
			if err != nil {
				return err
			}
			targets, err := parseTargets(ct.Targets)
			if err != nil {
				return err
			}
			t := Trigger{Kind: TriggerShape, Shape: shape, Targets: targets, WVowel: ct.WVowel}
			s.bind(code, t)
		default:
			return fmt.Errorf("unsupported custom trigger kind '%s'", ct.Kind)
		}
	}
	return nil
}

func parseTone(name string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sac", "acute":
		return charset.ToneSac, nil
	case "huyen", "grave":
		return charset.ToneHuyen, nil
	case "hoi", "hook":
		return charset.ToneHoi, nil
	case "nga", "tilde":
		return charset.ToneNga, nil
	case "nang", "dot":
		return charset.ToneNang, nil
	}
	return 0, fmt.Errorf("unknown tone name '%s'", name)
}

func parseShape(name string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circumflex":
		return charset.ShapeCircumflex, nil
	case "horn", "breve":
		return charset.ShapeHorn, nil
	}
	return 0, fmt.Errorf("unknown shape name '%s'", name)
}

func parseTargets(value string) ([]uint16, error) {
	targets := make([]uint16, 0, len(value))
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		code, ok := keys.CodeForChar(r)
		if !ok || !keys.IsVowel(code) {
			return nil, fmt.Errorf("shape target must be a vowel letter, got %q", r)
		}
		targets = append(targets, code)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("shape trigger needs at least one target vowel")
	}
	return targets, nil
}

func resolveKeyName(name string) (uint16, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("empty key name")
	}
	r := []rune(strings.ToLower(trimmed))
	if len(r) != 1 {
		return 0, fmt.Errorf("key name must be a single character, got %q", name)
	}
	code, ok := keys.CodeForChar(r[0])
	if !ok {
		return 0, fmt.Errorf("unknown key '%s'", name)
	}
	return code, nil
}
