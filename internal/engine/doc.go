/*
Package engine is the Vietnamese typing state machine. It keeps the
in-progress syllable as a buffer of typed keys with their accumulated
modifiers, classifies every incoming key against the scheme's trigger map,
validates each candidate transformation against Vietnamese phonotactics
before committing it, and reports the smallest backspace-and-insert edit
that brings the visible text in line with the buffer.
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'vietkey.engine'
func tracer() tracing.Trace {
	return tracing.Select("vietkey.engine")
}
