package ffi

import (
	"fmt"
	"strings"
	"unsafe"
)

// ============================================================================
// String Helpers for FFI
// ============================================================================

// MarshalError reports a Go string that cannot be passed as a C string.
type MarshalError struct {
	Value  string
	Offset int
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("ffi: string %q contains a NUL byte at offset %d", e.Value, e.Offset)
}

// CString returns s as a NUL-terminated byte slice. The caller keeps the
// slice alive (runtime.KeepAlive) until the foreign call returns.
//
// A NUL byte inside s would silently truncate the value on the native side,
// so CString panics with a *MarshalError instead.
func CString(s string) []byte {
	if i := strings.IndexByte(s, 0); i >= 0 {
		panic(&MarshalError{Value: s, Offset: i})
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// Ptr returns the address of b's first byte, or 0 for an empty slice.
func Ptr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// pointer reinterprets a native address as an unsafe.Pointer. It does not
// convert from uintptr, so checkptr accepts addresses that happen to lie in
// Go memory, as they do under tests.
func pointer(addr uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func strlen(p unsafe.Pointer, max int) int {
	n := 0
	for max < 0 || n < max {
		if *(*byte)(unsafe.Add(p, n)) == 0 {
			break
		}
		n++
	}
	return n
}

// GoString copies a NUL-terminated C string into a Go string.
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := pointer(ptr)
	n := strlen(p, -1)
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// GoStringN is GoString bounded to the first max bytes, for buffers the
// native side may fill without a terminator.
func GoStringN(ptr uintptr, max int) string {
	if ptr == 0 || max <= 0 {
		return ""
	}
	p := pointer(ptr)
	n := strlen(p, max)
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// BorrowString views a C string without copying. The result is only valid
// while the native memory is, which for event records means the current
// callback frame.
func BorrowString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := pointer(ptr)
	n := strlen(p, -1)
	if n == 0 {
		return ""
	}
	return unsafe.String((*byte)(p), n)
}

// Bytes copies n bytes of native memory into a new slice.
func Bytes(ptr uintptr, n int) []byte {
	if ptr == 0 || n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(pointer(ptr)), n))
	return out
}

// Store copies src into native memory at dst. dst must hold len(src) bytes.
func Store(dst uintptr, src []byte) {
	if dst == 0 || len(src) == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(pointer(dst)), len(src)), src)
}

// PutInt32 writes v through a native int* out-parameter.
func PutInt32(ptr uintptr, v int32) {
	if ptr == 0 {
		return
	}
	*(*int32)(pointer(ptr)) = v
}
