// Package screen mirrors what a host does with engine results: delete a
// number of characters before the caret, then insert the replacement. The
// tty demo renders through it.
package screen

import "vietkey/internal/engine"

// Line is a shadow of the text at the caret.
type Line struct {
	runes []rune
}

func (l *Line) String() string { return string(l.runes) }

func (l *Line) Len() int { return len(l.runes) }

// Reset discards the line.
func (l *Line) Reset() { l.runes = l.runes[:0] }

// Backspace removes one character, tolerating an empty line the way real
// text fields do.
func (l *Line) Backspace() {
	if len(l.runes) > 0 {
		l.runes = l.runes[:len(l.runes)-1]
	}
}

// Insert appends text at the caret.
func (l *Line) Insert(text string) {
	l.runes = append(l.runes, []rune(text)...)
}

// Apply plays an engine result against the line. For pass-through results
// the original key's character is typed instead, when it has one.
func (l *Line) Apply(res engine.Result, passthrough rune) {
	if res.Action == engine.ActionNone {
		if passthrough != 0 {
			l.runes = append(l.runes, passthrough)
		}
		return
	}
	for i := 0; i < res.Backspace; i++ {
		l.Backspace()
	}
	l.runes = append(l.runes, res.Output...)
}
