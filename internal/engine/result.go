package engine

// Action tells the host what to do with the original key event.
type Action uint8

const (
	// ActionNone passes the key through unchanged.
	ActionNone Action = iota
	// ActionSend replaces the last Backspace characters with Output.
	ActionSend
	// ActionRestore is reserved; hosts treat it like ActionSend.
	ActionRestore
)

// maxEdit bounds both sides of an edit so results always fit the fixed
// FFI struct.
const maxEdit = 31

// Result is one edit decision. Output holds at most maxEdit scalars.
type Result struct {
	Action    Action
	Backspace int
	Output    []rune
}

// diff computes the smallest prefix-preserving edit turning prev into
// next. It fails when the edit would not fit the result limits.
func diff(prev, next []rune) (Result, bool) {
	l := 0
	for l < len(prev) && l < len(next) && prev[l] == next[l] {
		l++
	}
	backspace := len(prev) - l
	output := next[l:]
	if backspace > maxEdit || len(output) > maxEdit {
		return Result{}, false
	}
	if backspace == 0 && len(output) == 0 {
		return Result{}, true
	}
	out := make([]rune, len(output))
	copy(out, output)
	return Result{Action: ActionSend, Backspace: backspace, Output: out}, true
}
