// Package ime exposes the process-wide Vietnamese input engine. Exactly
// one engine exists per process; every entry point serializes on a mutex
// so keyboard-hook threads and UI threads can call in freely.
package ime

import (
	"sync"

	"golang.org/x/text/unicode/norm"

	"vietkey/internal/config"
	"vietkey/internal/engine"
	"vietkey/internal/layout"
)

// Form selects the Unicode normalization applied to result output.
type Form int

const (
	// FormNFC emits precomposed characters (the default).
	FormNFC Form = iota
	// FormNFD emits decomposed sequences for hosts that want them.
	FormNFD
)

var (
	mu   sync.Mutex
	eng  *engine.Engine
	form Form
)

func instance() *engine.Engine {
	if eng == nil {
		eng = engine.New()
	}
	return eng
}

// Init creates the engine if it does not exist yet. Calling it again is a
// no-op and never alters state.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	instance()
}

// ProcessKey is the hot path: one key event in, one edit decision out.
func ProcessKey(code uint16, caps, ctrl, shift bool) engine.Result {
	mu.Lock()
	defer mu.Unlock()
	res := instance().ProcessKey(code, caps, ctrl, shift)
	if form == FormNFD && res.Action != engine.ActionNone && len(res.Output) > 0 {
		decomposed := []rune(norm.NFD.String(string(res.Output)))
		// The decomposed form only replaces the output when it still fits
		// the fixed-size result.
		if len(decomposed) <= 31 {
			res.Output = decomposed
		}
	}
	return res
}

// SetMethod selects the input method: 0 is Telex, 1 is VNI. Other values
// are ignored. A valid switch resets the session.
func SetMethod(m uint8) {
	mu.Lock()
	defer mu.Unlock()
	switch m {
	case 0:
		instance().SetMethod(layout.MethodTelex)
	case 1:
		instance().SetMethod(layout.MethodVNI)
	}
}

// SetEnabled toggles pass-through mode.
func SetEnabled(on bool) {
	mu.Lock()
	defer mu.Unlock()
	instance().SetEnabled(on)
}

// Clear resets the session buffer and undo record.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	instance().Clear()
}

// SetToneStyle switches between modern and traditional tone placement.
func SetToneStyle(modern bool) {
	mu.Lock()
	defer mu.Unlock()
	instance().SetToneStyle(modern)
}

// SetOutputForm selects the normalization of result output.
func SetOutputForm(f Form) {
	mu.Lock()
	defer mu.Unlock()
	form = f
}

// AddShortcut registers an abbreviation.
func AddShortcut(trigger, expansion string, priority int) {
	mu.Lock()
	defer mu.Unlock()
	instance().Shortcuts().Add(trigger, expansion, priority)
}

// RemoveShortcut drops an abbreviation.
func RemoveShortcut(trigger string) {
	mu.Lock()
	defer mu.Unlock()
	instance().Shortcuts().Remove(trigger)
}

// Preedit reports the visible text of the in-progress syllable.
func Preedit() string {
	mu.Lock()
	defer mu.Unlock()
	return instance().Preedit()
}

// Configure applies a loaded configuration wholesale: method, enabled
// flag, tone style, output form and the shortcut table.
func Configure(cfg config.Config) error {
	mu.Lock()
	defer mu.Unlock()
	e := instance()
	e.SetMethod(cfg.Method())
	e.SetToneStyle(cfg.ModernTone())
	e.SetEnabled(cfg.Enabled)
	if cfg.OutputForm == "nfd" {
		form = FormNFD
	} else {
		form = FormNFC
	}
	table, err := cfg.BuildShortcuts()
	if err != nil {
		return err
	}
	e.SetShortcuts(table)
	return nil
}
