package webui

import (
	"errors"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/agiangrant/webui/internal/ffi"
)

var (
	// ErrEventExpired is the panic value of an Event accessor called after
	// the handler that received the Event returned.
	ErrEventExpired = errors.New("webui: event used after its handler returned")

	// ErrNoEventRecord is the panic value of a record-only accessor called on
	// an Event delivered through BindInterface.
	ErrNoEventRecord = errors.New("webui: event has no native record")

	// ErrScriptFailed reports a synchronous script that failed, timed out or
	// found no connected client.
	ErrScriptFailed = errors.New("webui: script execution failed")
)

// DefaultScriptBufferSize is the result buffer capacity used when a Script
// call passes a non-positive size.
const DefaultScriptBufferSize = 8 * 1024

// Handler is called for every event of a bound element.
type Handler func(e *Event)

// Event describes one occurrence of a bound element firing.
//
// An Event is a view over native memory owned by webui and is only valid
// until its handler returns. Accessors called after that panic with
// ErrEventExpired; copy the fields out instead of keeping the Event.
type Event struct {
	WindowID WindowID
	Kind     EventKind
	// RawKind is the event code as sent by the native library.
	RawKind uintptr
	Element string
	Number  uint
	BindID  uint

	// Set only for handlers bound with Window.Bind.
	ClientID     uint
	ConnectionID uint
	Cookies      string

	b       *Bridge
	handle  uintptr
	record  uintptr
	expired atomic.Bool
}

func (e *Event) check() {
	if e.expired.Load() {
		panic(ErrEventExpired)
	}
}

func (e *Event) mustRecord() uintptr {
	e.check()
	if e.record == 0 {
		panic(ErrNoEventRecord)
	}
	return e.record
}

// Window returns a handle to the window the event belongs to.
func (e *Event) Window() *Window {
	e.check()
	return e.b.WindowFromID(e.WindowID)
}

// ============================================================================
// Arguments
// ============================================================================

// Count returns the number of arguments passed from JavaScript. Interface
// events carry no count and panic with ErrNoEventRecord.
func (e *Event) Count() int {
	return int(e.b.lib.GetCount(e.mustRecord()))
}

// IntAt returns argument i coerced to an integer by webui.
func (e *Event) IntAt(i int) int64 {
	e.check()
	if e.record == 0 {
		return e.b.lib.InterfaceGetIntAt(e.handle, uintptr(e.Number), uintptr(i))
	}
	return e.b.lib.GetIntAt(e.record, uintptr(i))
}

// Int is IntAt(0).
func (e *Event) Int() int64 { return e.IntAt(0) }

// FloatAt returns argument i coerced to a float by webui.
func (e *Event) FloatAt(i int) float64 {
	e.check()
	if e.record == 0 {
		return e.b.lib.InterfaceGetFloatAt(e.handle, uintptr(e.Number), uintptr(i))
	}
	return e.b.lib.GetFloatAt(e.record, uintptr(i))
}

// Float is FloatAt(0).
func (e *Event) Float() float64 { return e.FloatAt(0) }

// StringAt returns a copy of argument i as text.
func (e *Event) StringAt(i int) string {
	e.check()
	if e.record == 0 {
		return ffi.GoString(e.b.lib.InterfaceGetStringAt(e.handle, uintptr(e.Number), uintptr(i)))
	}
	return ffi.GoString(e.b.lib.GetStringAt(e.record, uintptr(i)))
}

// Text is StringAt(0).
func (e *Event) Text() string { return e.StringAt(0) }

// BoolAt returns argument i coerced to a boolean by webui.
func (e *Event) BoolAt(i int) bool {
	e.check()
	if e.record == 0 {
		return e.b.lib.InterfaceGetBoolAt(e.handle, uintptr(e.Number), uintptr(i))
	}
	return e.b.lib.GetBoolAt(e.record, uintptr(i))
}

// Bool is BoolAt(0).
func (e *Event) Bool() bool { return e.BoolAt(0) }

// SizeAt returns the byte length of argument i.
func (e *Event) SizeAt(i int) uint {
	e.check()
	if e.record == 0 {
		return uint(e.b.lib.InterfaceGetSizeAt(e.handle, uintptr(e.Number), uintptr(i)))
	}
	return uint(e.b.lib.GetSizeAt(e.record, uintptr(i)))
}

// Size is SizeAt(0).
func (e *Event) Size() uint { return e.SizeAt(0) }

// ============================================================================
// Responses
// ============================================================================

// ReturnInt sets the value the JavaScript caller receives. A later Return
// call replaces it.
func (e *Event) ReturnInt(n int64) {
	e.check()
	if e.record == 0 {
		e.respond(strconv.FormatInt(n, 10))
		return
	}
	e.b.lib.ReturnInt(e.record, n)
}

// ReturnFloat is ReturnInt for a float.
func (e *Event) ReturnFloat(f float64) {
	e.check()
	if e.record == 0 {
		e.respond(strconv.FormatFloat(f, 'g', -1, 64))
		return
	}
	e.b.lib.ReturnFloat(e.record, f)
}

// ReturnString is ReturnInt for text.
func (e *Event) ReturnString(s string) {
	e.check()
	if e.record == 0 {
		e.respond(s)
		return
	}
	cs := ffi.CString(s)
	e.b.lib.ReturnString(e.record, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// ReturnBool is ReturnInt for a boolean.
func (e *Event) ReturnBool(v bool) {
	e.check()
	if e.record == 0 {
		e.respond(strconv.FormatBool(v))
		return
	}
	e.b.lib.ReturnBool(e.record, v)
}

func (e *Event) respond(s string) {
	cs := ffi.CString(s)
	e.b.lib.InterfaceSetResponse(e.handle, uintptr(e.Number), ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// ============================================================================
// Client
// ============================================================================

// ShowClient shows content in the client that fired the event only.
func (e *Event) ShowClient(content string) bool {
	rec := e.mustRecord()
	cs := ffi.CString(content)
	ok := e.b.lib.ShowClient(rec, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	return ok
}

// NavigateClient navigates the client that fired the event.
func (e *Event) NavigateClient(url string) {
	rec := e.mustRecord()
	cs := ffi.CString(url)
	e.b.lib.NavigateClient(rec, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// RunClient runs script in the client that fired the event without
// waiting for a result.
func (e *Event) RunClient(script string) {
	rec := e.mustRecord()
	cs := ffi.CString(script)
	e.b.lib.RunClient(rec, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// ScriptClient runs script in the client that fired the event and returns
// its result. See Window.Script for timeout and size.
func (e *Event) ScriptClient(script string, timeout time.Duration, size int) (string, error) {
	rec := e.mustRecord()
	return e.b.script(func(s, t, buf, n uintptr) bool {
		return e.b.lib.ScriptClient(rec, s, t, buf, n)
	}, script, timeout, size)
}

// SendRawClient sends data to the JavaScript function named function in
// the client that fired the event.
func (e *Event) SendRawClient(function string, data []byte) {
	rec := e.mustRecord()
	cs := ffi.CString(function)
	e.b.lib.SendRawClient(rec, ffi.Ptr(cs), ffi.Ptr(data), uintptr(len(data)))
	runtime.KeepAlive(cs)
	runtime.KeepAlive(data)
}

// CloseClient disconnects the client that fired the event.
func (e *Event) CloseClient() {
	e.b.lib.CloseClient(e.mustRecord())
}

// String describes the event. Unlike the accessors it may be called after
// the handler returned.
func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" window=")
	b.WriteString(strconv.FormatUint(uint64(e.WindowID), 10))
	b.WriteString(" element=")
	b.WriteString(strconv.Quote(e.Element))
	b.WriteString(" number=")
	b.WriteString(strconv.FormatUint(uint64(e.Number), 10))
	return b.String()
}
