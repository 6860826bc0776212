package engine

import (
	"vietkey/internal/charset"
	"vietkey/internal/keys"
	"vietkey/internal/phonology"
)

// bufferCap bounds the session buffer. Overflow drops the oldest half so a
// pathological run of letters without a boundary cannot grow without limit.
const bufferCap = 32

// Char is one committed keystroke with the modifiers the pipeline has
// attached to it since.
type Char struct {
	Key    uint16
	Caps   bool
	Shape  uint8
	Tone   uint8
	Stroke bool
}

// Rune renders the visible character for this buffer entry.
func (c Char) Rune() (rune, bool) {
	if c.Stroke && c.Key == keys.D {
		return charset.StrokedD(c.Caps), true
	}
	if keys.IsVowel(c.Key) {
		return charset.Compose(c.Key, c.Caps, c.Shape, c.Tone)
	}
	return charset.Plain(c.Key, c.Caps)
}

// letter is the shape-aware, tone-free view the validator works on.
func (c Char) letter() phonology.Letter {
	base, ok := keys.Letter(c.Key)
	if !ok {
		if d, dok := keys.Digit(c.Key); dok {
			base = d
		}
	}
	full := base
	if c.Stroke && c.Key == keys.D {
		full = 'đ'
	} else if keys.IsVowel(c.Key) {
		if shaped, ok := charset.Base(c.Key, c.Shape); ok {
			full = shaped
		}
	}
	return phonology.Letter{Base: base, Full: full}
}

type buffer struct {
	chars []Char
}

func (b *buffer) len() int { return len(b.chars) }

func (b *buffer) clear() { b.chars = b.chars[:0] }

// push appends a keystroke, halving the buffer first when it is full.
func (b *buffer) push(c Char) {
	if len(b.chars) >= bufferCap {
		tracer().Debugf("session buffer overflow, dropping oldest %d entries", bufferCap/2)
		kept := len(b.chars) - bufferCap/2
		copy(b.chars, b.chars[kept:])
		b.chars = b.chars[:bufferCap/2]
	}
	b.chars = append(b.chars, c)
}

// pop drops the most recent keystroke entirely, keeping the buffer in step
// with a host-side backspace that deletes one glyph.
func (b *buffer) pop() {
	if len(b.chars) > 0 {
		b.chars = b.chars[:len(b.chars)-1]
	}
}

func (b *buffer) clone() []Char {
	out := make([]Char, len(b.chars))
	copy(out, b.chars)
	return out
}

// runes renders the visible text the buffer stands for.
func (b *buffer) runes() []rune {
	return renderChars(b.chars)
}

func renderChars(chars []Char) []rune {
	out := make([]rune, 0, len(chars))
	for _, c := range chars {
		if r, ok := c.Rune(); ok {
			out = append(out, r)
		}
	}
	return out
}

func lettersOf(chars []Char) []phonology.Letter {
	out := make([]phonology.Letter, len(chars))
	for i, c := range chars {
		out[i] = c.letter()
	}
	return out
}

// vowelsOf collects the vowel occurrences plus the onset-glide context the
// placement rules need.
func vowelsOf(chars []Char) (vowels []phonology.Vowel, hasQu, hasGi bool) {
	for i, c := range chars {
		if !keys.IsVowel(c.Key) {
			continue
		}
		full, _ := charset.Base(c.Key, c.Shape)
		vowels = append(vowels, phonology.Vowel{Full: full, Pos: i})
	}
	if len(chars) >= 2 && len(vowels) > 1 {
		if chars[0].Key == keys.Q && chars[1].Key == keys.U {
			hasQu = true
		}
		if chars[0].Key == keys.G && chars[1].Key == keys.I {
			hasGi = true
		}
	}
	return vowels, hasQu, hasGi
}

// hasFinalAfter reports a consonant anywhere past the given position.
func hasFinalAfter(chars []Char, pos int) bool {
	for i := pos + 1; i < len(chars); i++ {
		if keys.IsLetter(chars[i].Key) && !keys.IsVowel(chars[i].Key) {
			return true
		}
	}
	return false
}

func hasVowelKey(chars []Char) bool {
	for _, c := range chars {
		if keys.IsVowel(c.Key) {
			return true
		}
	}
	return false
}

func hasTransformed(chars []Char) bool {
	for _, c := range chars {
		if c.Shape != charset.ShapeNone || c.Tone != charset.ToneNone || c.Stroke {
			return true
		}
	}
	return false
}
