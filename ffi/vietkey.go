// C ABI for the vietkey engine. Build with -buildmode=c-shared (or
// c-archive) to produce the library the platform shells link against.
package main

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	uint32_t chars[32];
	uint8_t  action;
	uint8_t  backspace;
	uint8_t  count;
	uint8_t  _pad;
} ImeResult;
*/
import "C"

import (
	"unsafe"

	"vietkey/internal/engine"
	"vietkey/pkg/ime"
)

//export ime_init
func ime_init() {
	ime.Init()
}

//export ime_key_ext
func ime_key_ext(keycode C.uint16_t, caps C.bool, ctrl C.bool, shift C.bool) *C.ImeResult {
	res := ime.ProcessKey(uint16(keycode), bool(caps), bool(ctrl), bool(shift))
	return newResult(res)
}

//export ime_key
func ime_key(keycode C.uint16_t, caps C.bool, ctrl C.bool) *C.ImeResult {
	res := ime.ProcessKey(uint16(keycode), bool(caps), bool(ctrl), bool(caps))
	return newResult(res)
}

//export ime_method
func ime_method(m C.uint8_t) {
	ime.SetMethod(uint8(m))
}

//export ime_enabled
func ime_enabled(on C.bool) {
	ime.SetEnabled(bool(on))
}

//export ime_clear
func ime_clear() {
	ime.Clear()
}

//export ime_free
func ime_free(ptr *C.ImeResult) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

// newResult copies a decision into a C-heap struct the host owns until it
// calls ime_free.
func newResult(res engine.Result) *C.ImeResult {
	size := C.size_t(unsafe.Sizeof(C.ImeResult{}))
	out := (*C.ImeResult)(C.malloc(size))
	C.memset(unsafe.Pointer(out), 0, size)
	out.action = C.uint8_t(res.Action)
	if res.Backspace > 0 {
		out.backspace = C.uint8_t(res.Backspace)
	}
	count := len(res.Output)
	if count > len(out.chars) {
		count = len(out.chars)
	}
	for i := 0; i < count; i++ {
		out.chars[i] = C.uint32_t(res.Output[i])
	}
	out.count = C.uint8_t(count)
	return out
}

func main() {}
