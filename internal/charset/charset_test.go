package charset

import (
	"testing"

	"vietkey/internal/keys"
)

func compose(t *testing.T, code uint16, caps bool, shape, tone uint8) rune {
	t.Helper()
	ch, ok := Compose(code, caps, shape, tone)
	if !ok {
		t.Fatalf("Compose(%#x, %v, %d, %d) failed", code, caps, shape, tone)
	}
	return ch
}

func TestPlainVowels(t *testing.T) {
	cases := map[uint16]rune{
		keys.A: 'a', keys.E: 'e', keys.I: 'i', keys.O: 'o', keys.U: 'u', keys.Y: 'y',
	}
	for code, want := range cases {
		if got := compose(t, code, false, ShapeNone, ToneNone); got != want {
			t.Fatalf("plain vowel for %#x: got %q want %q", code, got, want)
		}
	}
}

func TestShapedVowels(t *testing.T) {
	cases := []struct {
		code  uint16
		shape uint8
		want  rune
	}{
		{keys.A, ShapeCircumflex, 'â'},
		{keys.E, ShapeCircumflex, 'ê'},
		{keys.O, ShapeCircumflex, 'ô'},
		{keys.A, ShapeHorn, 'ă'},
		{keys.O, ShapeHorn, 'ơ'},
		{keys.U, ShapeHorn, 'ư'},
	}
	for _, c := range cases {
		if got := compose(t, c.code, false, c.shape, ToneNone); got != c.want {
			t.Fatalf("shape %d on %#x: got %q want %q", c.shape, c.code, got, c.want)
		}
	}
}

func TestTonedVowels(t *testing.T) {
	cases := []struct {
		tone uint8
		want rune
	}{
		{ToneSac, 'á'}, {ToneHuyen, 'à'}, {ToneHoi, 'ả'}, {ToneNga, 'ã'}, {ToneNang, 'ạ'},
	}
	for _, c := range cases {
		if got := compose(t, keys.A, false, ShapeNone, c.tone); got != c.want {
			t.Fatalf("tone %d: got %q want %q", c.tone, got, c.want)
		}
	}
}

func TestShapeAndToneCombine(t *testing.T) {
	cases := []struct {
		code        uint16
		shape, tone uint8
		want        rune
	}{
		{keys.A, ShapeCircumflex, ToneSac, 'ấ'},
		{keys.O, ShapeHorn, ToneHuyen, 'ờ'},
		{keys.U, ShapeHorn, ToneNang, 'ự'},
		{keys.E, ShapeCircumflex, ToneNga, 'ễ'},
	}
	for _, c := range cases {
		if got := compose(t, c.code, false, c.shape, c.tone); got != c.want {
			t.Fatalf("%#x shape %d tone %d: got %q want %q", c.code, c.shape, c.tone, got, c.want)
		}
	}
}

func TestUppercase(t *testing.T) {
	cases := []struct {
		code        uint16
		shape, tone uint8
		want        rune
	}{
		{keys.A, ShapeNone, ToneNone, 'A'},
		{keys.A, ShapeNone, ToneSac, 'Á'},
		{keys.A, ShapeCircumflex, ToneSac, 'Ấ'},
		{keys.O, ShapeHorn, ToneHuyen, 'Ờ'},
		{keys.U, ShapeHorn, ToneNang, 'Ự'},
	}
	for _, c := range cases {
		if got := compose(t, c.code, true, c.shape, c.tone); got != c.want {
			t.Fatalf("caps %#x: got %q want %q", c.code, got, c.want)
		}
	}
}

func TestStrokedD(t *testing.T) {
	if StrokedD(false) != 'đ' || StrokedD(true) != 'Đ' {
		t.Fatalf("stroked d broken: %q %q", StrokedD(false), StrokedD(true))
	}
}

func TestConsonantsStayPlain(t *testing.T) {
	if got := compose(t, keys.B, false, ShapeNone, ToneNone); got != 'b' {
		t.Fatalf("consonant: got %q", got)
	}
	if got := compose(t, keys.D, true, ShapeNone, ToneNone); got != 'D' {
		t.Fatalf("caps consonant: got %q", got)
	}
}
