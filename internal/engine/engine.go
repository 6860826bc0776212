package engine

import (
	"vietkey/internal/charset"
	"vietkey/internal/keys"
	"vietkey/internal/layout"
	"vietkey/internal/phonology"
	"vietkey/internal/shortcut"
)

// undoRecord remembers the buffer state right before the most recent
// transformation together with the key that triggered it. Its presence is
// the "just transformed" state: the same key again restores prev and types
// itself literally.
type undoRecord struct {
	key  uint16
	prev []Char
}

// Engine is one typing session. It is not safe for concurrent use; the
// facade in pkg/ime serializes access.
type Engine struct {
	buf       buffer
	scheme    *layout.Scheme
	method    layout.Method
	enabled   bool
	modern    bool
	undo      *undoRecord
	shortcuts *shortcut.Table
}

// Option configures a new Engine.
type Option func(*Engine)

// WithMethod selects the initial input method.
func WithMethod(m layout.Method) Option {
	return func(e *Engine) {
		e.method = m
		e.scheme = layout.ForMethod(m)
	}
}

// WithToneStyle picks modern (hoà) or traditional (hóa) placement for the
// open oa/oe/uy clusters.
func WithToneStyle(modern bool) Option {
	return func(e *Engine) { e.modern = modern }
}

// WithShortcuts installs a prebuilt shortcut table.
func WithShortcuts(t *shortcut.Table) Option {
	return func(e *Engine) { e.shortcuts = t }
}

// WithScheme installs a customized trigger scheme in place of the method's
// built-in one.
func WithScheme(s *layout.Scheme) Option {
	return func(e *Engine) { e.scheme = s }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		method:  layout.MethodTelex,
		scheme:  layout.ForMethod(layout.MethodTelex),
		enabled: true,
		modern:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.shortcuts == nil {
		e.shortcuts = shortcut.NewTable()
	}
	return e
}

// Method reports the active input method.
func (e *Engine) Method() layout.Method { return e.method }

// SetMethod switches schemes and resets the session.
func (e *Engine) SetMethod(m layout.Method) {
	e.method = m
	e.scheme = layout.ForMethod(m)
	e.reset()
}

// Enabled reports whether keys are being processed.
func (e *Engine) Enabled() bool { return e.enabled }

// SetEnabled toggles pass-through mode. Any flip resets the session.
func (e *Engine) SetEnabled(on bool) {
	if e.enabled != on {
		e.reset()
	}
	e.enabled = on
}

// SetToneStyle switches between modern and traditional tone placement.
func (e *Engine) SetToneStyle(modern bool) {
	e.modern = modern
}

// Shortcuts exposes the abbreviation table for host configuration.
func (e *Engine) Shortcuts() *shortcut.Table { return e.shortcuts }

// SetShortcuts replaces the abbreviation table.
func (e *Engine) SetShortcuts(t *shortcut.Table) {
	if t == nil {
		t = shortcut.NewTable()
	}
	e.shortcuts = t
}

// Clear empties the buffer and the undo record.
func (e *Engine) Clear() { e.reset() }

// Preedit renders the visible text the buffer currently stands for.
func (e *Engine) Preedit() string { return string(e.buf.runes()) }

func (e *Engine) reset() {
	e.buf.clear()
	e.undo = nil
}

// ProcessKey decides what a single key event does. It never fails: keys
// the engine cannot use pass through as ActionNone.
func (e *Engine) ProcessKey(code uint16, caps, ctrl, shift bool) Result {
	if !e.enabled {
		return Result{}
	}
	tok := keys.Classify(code, caps, shift, ctrl)
	switch tok.Kind {
	case keys.TokenPassthrough:
		e.reset()
		return Result{}
	case keys.TokenBackspace:
		e.buf.pop()
		e.undo = nil
		return Result{}
	case keys.TokenNavigation:
		e.reset()
		return Result{}
	case keys.TokenSeparator:
		res := e.expandShortcut(tok.Char)
		e.reset()
		return res
	case keys.TokenDigit:
		if _, ok := e.scheme.Resolve(code); ok {
			return e.process(code, tok)
		}
		e.reset()
		return Result{}
	case keys.TokenLetter:
		return e.process(code, tok)
	}
	e.reset()
	return Result{}
}

// process runs the transformation pipeline for a letter or trigger key.
// Stages are tried in order; a stage that cannot produce a valid candidate
// is skipped, and a key that triggers nothing is appended literally.
func (e *Engine) process(code uint16, tok keys.Token) Result {
	if trig, ok := e.scheme.Resolve(code); ok {
		switch trig.Kind {
		case layout.TriggerStroke:
			if res, ok := e.tryStroke(code); ok {
				return res
			}
		case layout.TriggerTone:
			if res, ok := e.tryTone(trig, code); ok {
				return res
			}
		case layout.TriggerShape:
			if res, ok := e.tryShape(trig, code); ok {
				return res
			}
		case layout.TriggerRemove:
			if res, ok := e.tryRemove(); ok {
				return res
			}
		}
		if res, ok := e.tryRevert(code, tok.Caps); ok {
			return res
		}
		if trig.WVowel {
			if res, ok := e.tryWVowel(code, tok.Caps); ok {
				return res
			}
		}
	}
	return e.appendLetter(code, tok)
}

// commit swaps the candidate in, records the undo snapshot and reports the
// edit. A candidate whose edit cannot be expressed is rejected whole.
func (e *Engine) commit(candidate []Char, trigger uint16) (Result, bool) {
	res, ok := diff(e.buf.runes(), renderChars(candidate))
	if !ok || res.Action != ActionSend {
		return Result{}, false
	}
	e.undo = &undoRecord{key: trigger, prev: e.buf.clone()}
	e.buf.chars = candidate
	return res, true
}

// tryStroke turns the first unstroked d into đ. The candidate is only
// checked against phonology once the syllable has a vowel, so đ can be
// prepared before its vowel is typed.
func (e *Engine) tryStroke(code uint16) (Result, bool) {
	pos := -1
	for i, c := range e.buf.chars {
		if c.Key == keys.D && !c.Stroke {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Result{}, false
	}
	candidate := e.buf.clone()
	candidate[pos].Stroke = true
	if hasVowelKey(candidate) && !phonology.Validate(lettersOf(candidate)) {
		return Result{}, false
	}
	return e.commit(candidate, code)
}

// tryTone places one of the five tone marks, replacing whatever tone the
// syllable already carries. Re-typing the tone the target already has is a
// no-op candidate, which lets the key fall through to revert or append.
func (e *Engine) tryTone(trig layout.Trigger, code uint16) (Result, bool) {
	if e.buf.len() == 0 {
		return Result{}, false
	}
	if !phonology.Validate(lettersOf(e.buf.chars)) {
		return Result{}, false
	}
	vowels, hasQu, hasGi := vowelsOf(e.buf.chars)
	if len(vowels) == 0 {
		return Result{}, false
	}
	lastVowel := vowels[len(vowels)-1].Pos
	pos := phonology.TonePosition(vowels, hasFinalAfter(e.buf.chars, lastVowel), e.modern, hasQu, hasGi)
	if pos < 0 || pos >= e.buf.len() {
		return Result{}, false
	}
	if e.buf.chars[pos].Tone == trig.Tone {
		return Result{}, false
	}
	candidate := e.buf.clone()
	for i := range candidate {
		candidate[i].Tone = charset.ToneNone
	}
	candidate[pos].Tone = trig.Tone
	return e.commit(candidate, code)
}

// tryShape applies a circumflex, horn or breve. When a horn trigger meets
// an adjacent u+o pair both vowels take the horn, which is how ươ forms.
// An existing tone mark is repositioned afterwards if the new shape moved
// the placement.
func (e *Engine) tryShape(trig layout.Trigger, code uint16) (Result, bool) {
	if e.buf.len() == 0 {
		return Result{}, false
	}
	candidate := e.buf.clone()
	changed := false

	if trig.Shape == charset.ShapeHorn && targetsInclude(trig.Targets, keys.U) && targetsInclude(trig.Targets, keys.O) {
		if first := uoPairAt(candidate); first >= 0 {
			for _, i := range []int{first, first + 1} {
				if candidate[i].Shape == charset.ShapeNone {
					candidate[i].Shape = charset.ShapeHorn
					changed = true
				}
			}
		}
	}
	if !changed {
		for i := e.buf.len() - 1; i >= 0; i-- {
			c := candidate[i]
			if keys.IsVowel(c.Key) && c.Shape == charset.ShapeNone && targetsInclude(trig.Targets, c.Key) {
				candidate[i].Shape = trig.Shape
				changed = true
				break
			}
		}
	}
	if !changed {
		return Result{}, false
	}
	repositionTone(candidate, e.modern)
	if !phonology.Validate(lettersOf(candidate)) {
		return Result{}, false
	}
	return e.commit(candidate, code)
}

// tryRevert is the double-key undo: the same trigger again restores the
// pre-transform buffer and types itself literally.
func (e *Engine) tryRevert(code uint16, caps bool) (Result, bool) {
	if e.undo == nil || e.undo.key != code {
		return Result{}, false
	}
	restored := make([]Char, len(e.undo.prev), len(e.undo.prev)+1)
	copy(restored, e.undo.prev)
	restored = append(restored, Char{Key: code, Caps: caps})
	res, ok := diff(e.buf.runes(), renderChars(restored))
	if !ok || res.Action != ActionSend {
		return Result{}, false
	}
	e.buf.chars = restored
	e.undo = nil
	return res, true
}

// tryWVowel turns a bare w into ư when the syllable allows it. The undo
// snapshot keeps the literal w so a second w yields "ww" again.
func (e *Engine) tryWVowel(code uint16, caps bool) (Result, bool) {
	candidate := e.buf.clone()
	candidate = append(candidate, Char{Key: keys.U, Caps: caps, Shape: charset.ShapeHorn})
	if !phonology.Validate(lettersOf(candidate)) {
		return Result{}, false
	}
	res, ok := diff(e.buf.runes(), renderChars(candidate))
	if !ok || res.Action != ActionSend {
		return Result{}, false
	}
	literal := e.buf.clone()
	literal = append(literal, Char{Key: code, Caps: caps})
	e.undo = &undoRecord{key: code, prev: literal}
	e.buf.chars = candidate
	return res, true
}

// tryRemove strips the tone mark of the current syllable if it has one,
// otherwise its vowel shape, working back from the last vowel. Removals
// are not revertible.
func (e *Engine) tryRemove() (Result, bool) {
	for i := e.buf.len() - 1; i >= 0; i-- {
		c := e.buf.chars[i]
		if !keys.IsVowel(c.Key) {
			continue
		}
		if c.Tone != charset.ToneNone {
			candidate := e.buf.clone()
			candidate[i].Tone = charset.ToneNone
			return e.commitWithoutUndo(candidate)
		}
		if c.Shape != charset.ShapeNone {
			candidate := e.buf.clone()
			candidate[i].Shape = charset.ShapeNone
			return e.commitWithoutUndo(candidate)
		}
	}
	return Result{}, false
}

func (e *Engine) commitWithoutUndo(candidate []Char) (Result, bool) {
	res, ok := diff(e.buf.runes(), renderChars(candidate))
	if !ok || res.Action != ActionSend {
		return Result{}, false
	}
	e.buf.chars = candidate
	e.undo = nil
	return res, true
}

// appendLetter is the final pipeline stage: the key types itself. When the
// grown buffer stops validating while it already carries a transformation,
// the letter starts a new syllable instead; the visible text is untouched
// either way.
func (e *Engine) appendLetter(code uint16, tok keys.Token) Result {
	e.undo = nil
	if tok.Kind != keys.TokenLetter {
		e.reset()
		return Result{}
	}
	e.buf.push(Char{Key: code, Caps: tok.Caps})
	if hasTransformed(e.buf.chars) && !phonology.Validate(lettersOf(e.buf.chars)) {
		last := e.buf.chars[e.buf.len()-1]
		e.buf.clear()
		e.buf.push(last)
	}
	return Result{}
}

// expandShortcut resolves the completed word against the shortcut table.
// The separator that closed the word rides along in the expansion output.
func (e *Engine) expandShortcut(sep rune) Result {
	if e.buf.len() == 0 || e.shortcuts == nil {
		return Result{}
	}
	word := string(e.buf.runes())
	entry, ok := e.shortcuts.Match(word)
	if !ok {
		return Result{}
	}
	output := []rune(entry.Expansion)
	if sep != 0 {
		output = append(output, sep)
	}
	backspace := e.buf.len()
	if backspace > maxEdit || len(output) > maxEdit {
		return Result{}
	}
	return Result{Action: ActionSend, Backspace: backspace, Output: output}
}

func targetsInclude(targets []uint16, code uint16) bool {
	for _, t := range targets {
		if t == code {
			return true
		}
	}
	return false
}

// uoPairAt finds an adjacent u+o (either order) vowel pair by raw key.
func uoPairAt(chars []Char) int {
	for i := 0; i+1 < len(chars); i++ {
		a, b := chars[i].Key, chars[i+1].Key
		if (a == keys.U && b == keys.O) || (a == keys.O && b == keys.U) {
			return i
		}
	}
	return -1
}

// repositionTone moves an existing tone mark when shape changes shift the
// placement the cluster table dictates.
func repositionTone(chars []Char, modern bool) {
	tonePos, tone := -1, charset.ToneNone
	for i, c := range chars {
		if c.Tone != charset.ToneNone {
			tonePos, tone = i, c.Tone
			break
		}
	}
	if tonePos < 0 {
		return
	}
	vowels, hasQu, hasGi := vowelsOf(chars)
	if len(vowels) == 0 {
		return
	}
	lastVowel := vowels[len(vowels)-1].Pos
	pos := phonology.TonePosition(vowels, hasFinalAfter(chars, lastVowel), modern, hasQu, hasGi)
	if pos < 0 || pos == tonePos {
		return
	}
	chars[tonePos].Tone = charset.ToneNone
	chars[pos].Tone = tone
}
