package ime

import (
	"os"
	"path/filepath"
	"testing"

	"vietkey/internal/config"
	"vietkey/internal/engine"
	"vietkey/internal/keys"
)

// resetState puts the process-wide engine back into a known configuration;
// the singleton is shared across tests.
func resetState() {
	Init()
	SetEnabled(true)
	SetMethod(0)
	SetToneStyle(true)
	SetOutputForm(FormNFC)
	Clear()
}

func TestInitIsIdempotent(t *testing.T) {
	resetState()
	ProcessKey(keys.A, false, false, false)
	Init()
	if got := Preedit(); got != "a" {
		t.Fatalf("second Init must not alter state, buffer is %q", got)
	}
	Clear()
}

func TestProcessKeyTelex(t *testing.T) {
	resetState()
	if res := ProcessKey(keys.A, false, false, false); res.Action != engine.ActionNone {
		t.Fatalf("first key: %+v", res)
	}
	res := ProcessKey(keys.S, false, false, false)
	if res.Action != engine.ActionSend || res.Backspace != 1 || string(res.Output) != "á" {
		t.Fatalf("a s: %+v", res)
	}
}

func TestSetMethodValidation(t *testing.T) {
	resetState()
	ProcessKey(keys.A, false, false, false)
	SetMethod(9) // ignored, state untouched
	if got := Preedit(); got != "a" {
		t.Fatalf("invalid method value must be a no-op, buffer is %q", got)
	}
	SetMethod(1) // valid switch resets
	if got := Preedit(); got != "" {
		t.Fatalf("method switch must reset, buffer is %q", got)
	}
	ProcessKey(keys.A, false, false, false)
	res := ProcessKey(keys.N1, false, false, false)
	if res.Action != engine.ActionSend || string(res.Output) != "á" {
		t.Fatalf("vni a1: %+v", res)
	}
}

func TestDisabledPassesEverythingThrough(t *testing.T) {
	resetState()
	SetEnabled(false)
	for _, code := range []uint16{keys.A, keys.S, keys.D, keys.N1, keys.Space} {
		if res := ProcessKey(code, false, false, false); res.Action != engine.ActionNone {
			t.Fatalf("disabled engine returned %+v for %#x", res, code)
		}
	}
	SetEnabled(true)
}

func TestClearIsIdempotent(t *testing.T) {
	resetState()
	ProcessKey(keys.A, false, false, false)
	Clear()
	Clear()
	if got := Preedit(); got != "" {
		t.Fatalf("buffer after clear: %q", got)
	}
}

func TestShortcutRoundTrip(t *testing.T) {
	resetState()
	AddShortcut("vn", "Việt Nam", 0)
	ProcessKey(keys.V, false, false, false)
	ProcessKey(keys.N, false, false, false)
	res := ProcessKey(keys.Space, false, false, false)
	if res.Action != engine.ActionSend || res.Backspace != 2 || string(res.Output) != "Việt Nam " {
		t.Fatalf("shortcut expansion: %+v", res)
	}
	RemoveShortcut("vn")
	ProcessKey(keys.V, false, false, false)
	ProcessKey(keys.N, false, false, false)
	if res := ProcessKey(keys.Space, false, false, false); res.Action != engine.ActionNone {
		t.Fatalf("removed shortcut still expands: %+v", res)
	}
}

func TestNFDOutputForm(t *testing.T) {
	resetState()
	SetOutputForm(FormNFD)
	ProcessKey(keys.A, false, false, false)
	res := ProcessKey(keys.S, false, false, false)
	if res.Action != engine.ActionSend {
		t.Fatalf("expected send, got %+v", res)
	}
	if len(res.Output) != 2 || res.Output[0] != 'a' || res.Output[1] != 0x0301 {
		t.Fatalf("expected decomposed output, got %U", res.Output)
	}
	SetOutputForm(FormNFC)
}

func TestConfigure(t *testing.T) {
	resetState()
	dir := t.TempDir()
	path := filepath.Join(dir, "vietkey.ini")
	contents := "[input]\nscheme = vni\ntone_style = modern\n\n[shortcuts]\nvn = Việt Nam\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	ProcessKey(keys.A, false, false, false)
	res := ProcessKey(keys.N2, false, false, false)
	if res.Action != engine.ActionSend || string(res.Output) != "à" {
		t.Fatalf("configured vni broken: %+v", res)
	}
	Clear()
	ProcessKey(keys.V, false, false, false)
	ProcessKey(keys.N, false, false, false)
	if res := ProcessKey(keys.Space, false, false, false); res.Action != engine.ActionSend {
		t.Fatalf("configured shortcuts broken: %+v", res)
	}
	resetState()
}
