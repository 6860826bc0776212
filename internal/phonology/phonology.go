package phonology

// Letter is one scalar of a candidate syllable as the validator sees it:
// the plain US-layout letter that was typed and the shaped (but untoned)
// form it currently renders as.
type Letter struct {
	Base rune
	Full rune
}

// Vowel is a vowel occurrence inside the session buffer, identified by its
// shaped form and its buffer position.
type Vowel struct {
	Full rune
	Pos  int
}

// onsets lists the recognized initial consonant clusters, longest first so
// prefix matching is greedy. Matching runs over base letters, which folds
// đ into d.
var onsets = []string{
	"ngh",
	"ch", "gh", "gi", "kh", "ng", "nh", "ph", "qu", "th", "tr",
	"b", "c", "d", "g", "h", "k", "l", "m", "n", "p", "q", "r", "s", "t", "v", "x",
}

// codas lists the recognized final consonant clusters.
var codas = map[string]struct{}{
	"c": {}, "ch": {}, "m": {}, "n": {}, "ng": {}, "nh": {}, "p": {}, "t": {},
}

// palatalCodaVowels are the nucleus endings the palatal codas ch/nh accept.
var palatalCodaVowels = map[rune]struct{}{
	'a': {}, 'ê': {}, 'i': {}, 'y': {},
}

// nucleusSingles are the twelve shaped vowel forms.
var nucleusSingles = map[rune]struct{}{
	'a': {}, 'ă': {}, 'â': {}, 'e': {}, 'ê': {}, 'i': {},
	'o': {}, 'ô': {}, 'ơ': {}, 'u': {}, 'ư': {}, 'y': {},
}

// clusterPlacement drives both nucleus recognition and tone placement for
// compound vowels. Keys are shaped (untoned) forms; the three indices pick
// the toned vowel for an open syllable in modern style, an open syllable in
// traditional style, and a closed syllable. The two styles differ only on
// the open oa/oe/uy clusters.
var clusterPlacement = map[string][3]int{
	// falling diphthongs and glide-final pairs
	"ai": {0, 0, 0}, "ao": {0, 0, 0}, "au": {0, 0, 0}, "ay": {0, 0, 0},
	"âu": {0, 0, 0}, "ây": {0, 0, 0},
	"eo": {0, 0, 0}, "êu": {0, 0, 0},
	"iu": {0, 0, 0}, "oi": {0, 0, 0}, "ôi": {0, 0, 0}, "ơi": {0, 0, 0},
	"ui": {0, 0, 0}, "ưi": {0, 0, 0}, "ưu": {0, 0, 0},
	// centering pairs
	"ia": {0, 0, 1}, "ua": {0, 0, 1}, "ưa": {0, 0, 1}, "ya": {0, 0, 1},
	// pairs whose second vowel is the nucleus head
	"iê": {1, 1, 1}, "oă": {1, 1, 1}, "oo": {1, 1, 1},
	"uâ": {1, 1, 1}, "uê": {1, 1, 1}, "uô": {1, 1, 1}, "uơ": {1, 1, 1},
	"ươ": {1, 1, 1}, "yê": {1, 1, 1},
	// in-progress forms of the u+o compounds, kept so partially composed
	// syllables like "ưo" in đ-ư-o-(w) stay recognizable
	"uo": {1, 1, 1}, "ưo": {1, 1, 1},
	// style-sensitive open pairs
	"oa": {1, 0, 1}, "oe": {1, 0, 1}, "uy": {1, 0, 1},
	// triphthongs
	"iêu": {1, 1, 1}, "yêu": {1, 1, 1},
	"oai": {1, 1, 1}, "oao": {1, 1, 1}, "oay": {1, 1, 1}, "oeo": {1, 1, 1},
	"uây": {1, 1, 1}, "uôi": {1, 1, 1}, "uoi": {1, 1, 1},
	"ươi": {1, 1, 1}, "ươu": {1, 1, 1},
	"uya": {1, 1, 1}, "uyu": {1, 1, 1},
	"uyê": {2, 2, 2},
}

func isVowelBase(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Validate reports whether the syllable satisfies the five phonotactic
// rules: it has a vowel, its initial is a recognized onset, its middle is a
// recognized nucleus, its spelling respects the c/k, g/gh, ng/ngh and qu
// constraints, and its final is a recognized coda compatible with the
// nucleus. It never fails any other way than returning false.
func Validate(word []Letter) bool {
	if len(word) == 0 {
		return false
	}
	hasVowel := false
	for _, l := range word {
		if isVowelBase(l.Base) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return false
	}

	base := make([]rune, len(word))
	for i, l := range word {
		base[i] = l.Base
	}

	// Empty onset is a candidate too; known onsets are tried longest first
	// so "ngh" beats "ng" and "gi" beats "g" when the remainder still
	// contains a vowel.
	if parsesAfterOnset("", word) {
		return true
	}
	for _, on := range onsets {
		if !hasPrefix(base, on) {
			continue
		}
		rest := word[len([]rune(on)):]
		if parsesAfterOnset(on, rest) {
			return true
		}
	}
	return false
}

func hasPrefix(base []rune, prefix string) bool {
	p := []rune(prefix)
	if len(base) < len(p) {
		return false
	}
	for i, r := range p {
		if base[i] != r {
			return false
		}
	}
	return true
}

func parsesAfterOnset(onset string, rest []Letter) bool {
	if len(rest) == 0 {
		return false
	}
	// Split the remainder into nucleus and coda: the coda is the maximal
	// trailing run of consonants.
	codaStart := len(rest)
	for codaStart > 0 && !isVowelBase(rest[codaStart-1].Base) {
		codaStart--
	}
	nucleus := rest[:codaStart]
	coda := rest[codaStart:]

	if len(nucleus) == 0 || len(nucleus) > 3 {
		return false
	}
	for _, l := range nucleus {
		if !isVowelBase(l.Base) {
			return false
		}
	}
	full := make([]rune, len(nucleus))
	for i, l := range nucleus {
		full[i] = l.Full
	}
	if len(full) == 1 {
		if _, ok := nucleusSingles[full[0]]; !ok {
			return false
		}
	} else {
		if _, ok := clusterPlacement[string(full)]; !ok {
			return false
		}
	}

	if !spellingAllowed(onset, nucleus[0].Base) {
		return false
	}

	if len(coda) > 0 {
		codaStr := make([]rune, len(coda))
		for i, l := range coda {
			codaStr[i] = l.Base
		}
		s := string(codaStr)
		if _, ok := codas[s]; !ok {
			return false
		}
		if s == "ch" || s == "nh" {
			last := full[len(full)-1]
			if _, ok := palatalCodaVowels[last]; !ok {
				return false
			}
		}
	}
	return true
}

// spellingAllowed encodes the orthographic constraints between onset and
// nucleus: c/k split on vowel frontness, g and ng take gh/ngh before front
// vowels, and q exists only as qu.
func spellingAllowed(onset string, first rune) bool {
	front := first == 'e' || first == 'i'
	switch onset {
	case "c":
		return !front
	case "k":
		return front || first == 'y'
	case "g":
		// gi- is its own onset; bare g is only barred before e (gh- takes it).
		return first != 'e'
	case "ng":
		return !front
	case "q":
		return false
	}
	return true
}

// TonePosition picks the buffer position the tone mark belongs on.
// Glide vowels swallowed by a qu- or gi- onset are skipped first; a lone
// vowel takes the mark; compound vowels resolve through the placement
// table. Returns -1 when no vowel is eligible.
func TonePosition(vowels []Vowel, hasFinal, modern, hasQu, hasGi bool) int {
	vs := vowels
	if hasQu && len(vs) > 1 && vs[0].Full == 'u' {
		vs = vs[1:]
	}
	if hasGi && len(vs) > 1 && vs[0].Full == 'i' {
		vs = vs[1:]
	}
	switch len(vs) {
	case 0:
		return -1
	case 1:
		return vs[0].Pos
	}
	full := make([]rune, len(vs))
	for i, v := range vs {
		full[i] = v.Full
	}
	info, ok := clusterPlacement[string(full)]
	if !ok {
		return vs[0].Pos
	}
	idx := info[0]
	if hasFinal {
		idx = info[2]
	} else if !modern {
		idx = info[1]
	}
	if idx >= len(vs) {
		idx = len(vs) - 1
	}
	return vs[idx].Pos
}
