package charset

import (
	"unicode"

	"vietkey/internal/keys"
)

// Shape modifiers change the base form of a vowel before any tone applies.
// ShapeHorn doubles as the breve on 'a' (the two never collide on one base).
const (
	ShapeNone uint8 = iota
	ShapeCircumflex
	ShapeHorn
)

// The five Vietnamese tone marks, in the order of the vowel table columns.
const (
	ToneNone uint8 = iota
	ToneSac
	ToneHuyen
	ToneHoi
	ToneNga
	ToneNang
)

// vowelTable maps each of the 12 base vowel forms to its five toned
// variants. 12 bases x 6 forms = the full 72-glyph vowel repertoire.
var vowelTable = []struct {
	base  rune
	toned [5]rune
}{
	{'a', [5]rune{'á', 'à', 'ả', 'ã', 'ạ'}},
	{'ă', [5]rune{'ắ', 'ằ', 'ẳ', 'ẵ', 'ặ'}},
	{'â', [5]rune{'ấ', 'ầ', 'ẩ', 'ẫ', 'ậ'}},
	{'e', [5]rune{'é', 'è', 'ẻ', 'ẽ', 'ẹ'}},
	{'ê', [5]rune{'ế', 'ề', 'ể', 'ễ', 'ệ'}},
	{'i', [5]rune{'í', 'ì', 'ỉ', 'ĩ', 'ị'}},
	{'o', [5]rune{'ó', 'ò', 'ỏ', 'õ', 'ọ'}},
	{'ô', [5]rune{'ố', 'ồ', 'ổ', 'ỗ', 'ộ'}},
	{'ơ', [5]rune{'ớ', 'ờ', 'ở', 'ỡ', 'ợ'}},
	{'u', [5]rune{'ú', 'ù', 'ủ', 'ũ', 'ụ'}},
	{'ư', [5]rune{'ứ', 'ừ', 'ử', 'ữ', 'ự'}},
	{'y', [5]rune{'ý', 'ỳ', 'ỷ', 'ỹ', 'ỵ'}},
}

// Base resolves a vowel key plus shape to its base form (a, ă, â, ...).
func Base(code uint16, shape uint8) (rune, bool) {
	switch code {
	case keys.A:
		switch shape {
		case ShapeCircumflex:
			return 'â', true
		case ShapeHorn:
			return 'ă', true
		}
		return 'a', true
	case keys.E:
		if shape == ShapeCircumflex {
			return 'ê', true
		}
		return 'e', true
	case keys.I:
		return 'i', true
	case keys.O:
		switch shape {
		case ShapeCircumflex:
			return 'ô', true
		case ShapeHorn:
			return 'ơ', true
		}
		return 'o', true
	case keys.U:
		if shape == ShapeHorn {
			return 'ư', true
		}
		return 'u', true
	case keys.Y:
		return 'y', true
	}
	return 0, false
}

// ApplyTone returns the toned variant of a base vowel form, or the base
// unchanged when tone is out of range or the base is unknown.
func ApplyTone(base rune, tone uint8) rune {
	if tone == ToneNone || tone > ToneNang {
		return base
	}
	for _, entry := range vowelTable {
		if entry.base == base {
			return entry.toned[tone-1]
		}
	}
	return base
}

// Compose builds the visible character for a vowel key with its modifiers.
// Non-vowel keys resolve through their plain letter or digit.
func Compose(code uint16, caps bool, shape, tone uint8) (rune, bool) {
	base, ok := Base(code, shape)
	if !ok {
		return Plain(code, caps)
	}
	ch := ApplyTone(base, tone)
	if caps {
		ch = unicode.ToUpper(ch)
	}
	return ch, true
}

// Plain returns the unmodified character a key types, if any.
func Plain(code uint16, caps bool) (rune, bool) {
	if ch, ok := keys.Letter(code); ok {
		if caps {
			ch = unicode.ToUpper(ch)
		}
		return ch, true
	}
	if d, ok := keys.Digit(code); ok {
		return d, true
	}
	return 0, false
}

// StrokedD is the đ/Đ glyph.
func StrokedD(caps bool) rune {
	if caps {
		return 'Đ'
	}
	return 'đ'
}
