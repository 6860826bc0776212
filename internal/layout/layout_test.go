package layout

import (
	"os"
	"path/filepath"
	"testing"

	"vietkey/internal/charset"
	"vietkey/internal/keys"
)

func TestAvailableSchemes(t *testing.T) {
	names := AvailableSchemes()
	expected := []string{"telex", "vni"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d schemes, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Fatalf("expected scheme %d to be %q, got %q", i, name, names[i])
		}
	}
}

func TestLoadTelex(t *testing.T) {
	s, err := Load("telex")
	if err != nil {
		t.Fatalf("unexpected error loading telex: %v", err)
	}

	trig, ok := s.Resolve(keys.S)
	if !ok || trig.Kind != TriggerTone || trig.Tone != charset.ToneSac {
		t.Fatalf("unexpected trigger for s: %#v", trig)
	}

	trig, ok = s.Resolve(keys.W)
	if !ok || trig.Kind != TriggerShape || trig.Shape != charset.ShapeHorn || !trig.WVowel {
		t.Fatalf("unexpected trigger for w: %#v", trig)
	}
	if len(trig.Targets) != 3 {
		t.Fatalf("w should target a, o and u, got %v", trig.Targets)
	}

	if trig, ok = s.Resolve(keys.D); !ok || trig.Kind != TriggerStroke {
		t.Fatalf("d should trigger the stroke, got %#v", trig)
	}
	if trig, ok = s.Resolve(keys.Z); !ok || trig.Kind != TriggerRemove {
		t.Fatalf("z should trigger removal, got %#v", trig)
	}
	if _, ok = s.Resolve(keys.B); ok {
		t.Fatalf("b must not be a trigger under telex")
	}
	if _, ok = s.Resolve(keys.N1); ok {
		t.Fatalf("digits must not be triggers under telex")
	}
}

func TestLoadVNI(t *testing.T) {
	s, err := Load("vni")
	if err != nil {
		t.Fatalf("unexpected error loading vni: %v", err)
	}

	trig, ok := s.Resolve(keys.N5)
	if !ok || trig.Kind != TriggerTone || trig.Tone != charset.ToneNang {
		t.Fatalf("unexpected trigger for 5: %#v", trig)
	}
	trig, ok = s.Resolve(keys.N6)
	if !ok || trig.Kind != TriggerShape || trig.Shape != charset.ShapeCircumflex || len(trig.Targets) != 3 {
		t.Fatalf("unexpected trigger for 6: %#v", trig)
	}
	if trig, ok = s.Resolve(keys.N9); !ok || trig.Kind != TriggerStroke {
		t.Fatalf("9 should trigger the stroke, got %#v", trig)
	}
	if _, ok = s.Resolve(keys.S); ok {
		t.Fatalf("s must not be a trigger under vni")
	}
	if trig, _ := s.Resolve(keys.W); trig.WVowel {
		t.Fatalf("vni has no w vowel shorthand")
	}
}

func TestLoadUnknownScheme(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatalf("expected error for unknown scheme")
	}
}

func TestMethodString(t *testing.T) {
	if MethodTelex.String() != "telex" || MethodVNI.String() != "vni" {
		t.Fatalf("method names broken: %s %s", MethodTelex, MethodVNI)
	}
}

func TestApplyCustomTriggers(t *testing.T) {
	s, err := Load("telex")
	if err != nil {
		t.Fatalf("load telex: %v", err)
	}
	overrides := []CustomTrigger{
		{Key: "z", Kind: "none"},
		{Key: "b", Kind: "tone", Tone: "nang"},
		{Key: "q", Kind: "shape", Shape: "horn", Targets: "aou", WVowel: false},
	}
	if err := ApplyCustomTriggers(s, overrides); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}
	if _, ok := s.Resolve(keys.Z); ok {
		t.Fatalf("z should be unbound")
	}
	trig, ok := s.Resolve(keys.B)
	if !ok || trig.Kind != TriggerTone || trig.Tone != charset.ToneNang {
		t.Fatalf("b override missing: %#v", trig)
	}
	trig, ok = s.Resolve(keys.Q)
	if !ok || trig.Kind != TriggerShape || len(trig.Targets) != 3 {
		t.Fatalf("q override missing: %#v", trig)
	}
}

func TestApplyCustomTriggersRejectsBadInput(t *testing.T) {
	s, _ := Load("telex")
	if err := ApplyCustomTriggers(s, []CustomTrigger{{Key: "s", Kind: "warp"}}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if err := ApplyCustomTriggers(s, []CustomTrigger{{Key: "", Kind: "none"}}); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if err := ApplyCustomTriggers(s, []CustomTrigger{{Key: "s", Kind: "shape", Shape: "horn", Targets: "bk"}}); err == nil {
		t.Fatalf("expected error for consonant shape targets")
	}
}

func TestLoadCustomTriggersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triggers.json")
	contents := `[{"key":"z","kind":"none"},{"key":"b","kind":"tone","tone":"hoi"}]`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write triggers file: %v", err)
	}

	triggers, err := LoadCustomTriggers(path)
	if err != nil {
		t.Fatalf("LoadCustomTriggers: %v", err)
	}
	if len(triggers) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(triggers))
	}
	if triggers[1].Tone != "hoi" {
		t.Fatalf("unexpected parse result: %#v", triggers[1])
	}
}
