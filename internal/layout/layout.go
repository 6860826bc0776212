package layout

import (
	"fmt"
	"sort"

	"vietkey/internal/charset"
	"vietkey/internal/keys"
)

// Method selects the active mnemonic scheme.
type Method int

const (
	MethodTelex Method = iota
	MethodVNI
)

func (m Method) String() string {
	switch m {
	case MethodTelex:
		return "telex"
	case MethodVNI:
		return "vni"
	default:
		return "unknown"
	}
}

// TriggerKind says what a trigger key does to the current syllable.
type TriggerKind int

const (
	TriggerTone TriggerKind = iota
	TriggerShape
	TriggerStroke
	TriggerRemove
)

// Trigger describes one scheme-specific transformation key. Shape triggers
// carry the vowel keys they may target; WVowel marks the Telex w that can
// stand alone as ư.
type Trigger struct {
	Kind    TriggerKind
	Tone    uint8
	Shape   uint8
	Targets []uint16
	WVowel  bool
}

// Scheme is a named trigger map from keycodes to transformations.
type Scheme struct {
	name    string
	mapping map[uint16]Trigger
}

func NewScheme(name string) *Scheme {
	return &Scheme{name: name, mapping: make(map[uint16]Trigger)}
}

func (s *Scheme) Name() string { return s.name }

// Resolve looks up the trigger bound to a keycode, if any.
func (s *Scheme) Resolve(code uint16) (Trigger, bool) {
	if s == nil {
		return Trigger{}, false
	}
	t, ok := s.mapping[code]
	return t, ok
}

func (s *Scheme) bind(code uint16, t Trigger) {
	s.mapping[code] = t
}

// unbind removes a trigger so the key types literally again.
func (s *Scheme) unbind(code uint16) {
	delete(s.mapping, code)
}

func toneTrigger(tone uint8) Trigger {
	return Trigger{Kind: TriggerTone, Tone: tone}
}

func shapeTrigger(shape uint8, targets ...uint16) Trigger {
	return Trigger{Kind: TriggerShape, Shape: shape, Targets: targets}
}

func buildTelex() *Scheme {
	s := NewScheme("telex")
	s.bind(keys.S, toneTrigger(charset.ToneSac))
	s.bind(keys.F, toneTrigger(charset.ToneHuyen))
	s.bind(keys.R, toneTrigger(charset.ToneHoi))
	s.bind(keys.X, toneTrigger(charset.ToneNga))
	s.bind(keys.J, toneTrigger(charset.ToneNang))

	s.bind(keys.A, shapeTrigger(charset.ShapeCircumflex, keys.A))
	s.bind(keys.E, shapeTrigger(charset.ShapeCircumflex, keys.E))
	s.bind(keys.O, shapeTrigger(charset.ShapeCircumflex, keys.O))

	w := shapeTrigger(charset.ShapeHorn, keys.A, keys.O, keys.U)
	w.WVowel = true
	s.bind(keys.W, w)

	s.bind(keys.D, Trigger{Kind: TriggerStroke})
	s.bind(keys.Z, Trigger{Kind: TriggerRemove})
	return s
}

func buildVNI() *Scheme {
	s := NewScheme("vni")
	s.bind(keys.N1, toneTrigger(charset.ToneSac))
	s.bind(keys.N2, toneTrigger(charset.ToneHuyen))
	s.bind(keys.N3, toneTrigger(charset.ToneHoi))
	s.bind(keys.N4, toneTrigger(charset.ToneNga))
	s.bind(keys.N5, toneTrigger(charset.ToneNang))

	s.bind(keys.N6, shapeTrigger(charset.ShapeCircumflex, keys.A, keys.E, keys.O))
	// 7 and 8 both cover ă as well as ơ/ư; typists mix them freely
	// (mu8o8i2 and mu7o7i2 are the same word).
	s.bind(keys.N7, shapeTrigger(charset.ShapeHorn, keys.A, keys.O, keys.U))
	s.bind(keys.N8, shapeTrigger(charset.ShapeHorn, keys.A, keys.O, keys.U))

	s.bind(keys.N9, Trigger{Kind: TriggerStroke})
	s.bind(keys.N0, Trigger{Kind: TriggerRemove})
	return s
}

// AvailableSchemes lists the built-in scheme names.
func AvailableSchemes() []string {
	names := []string{"telex", "vni"}
	sort.Strings(names)
	return names
}

// Load builds a scheme by name. The empty name loads telex.
func Load(name string) (*Scheme, error) {
	switch name {
	case "", "telex":
		return buildTelex(), nil
	case "vni":
		return buildVNI(), nil
	default:
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
}

// ForMethod builds the scheme matching a method value.
func ForMethod(m Method) *Scheme {
	if m == MethodVNI {
		return buildVNI()
	}
	return buildTelex()
}
