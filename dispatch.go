package webui

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/webui/internal/ffi"
)

// ============================================================================
// Trampolines
// ============================================================================

// recordTrampoline returns the C callback passed to webui_bind. It is
// created on first use and shared by every binding of the bridge.
func (b *Bridge) recordTrampoline() uintptr {
	b.cbOnce.Do(b.makeTrampolines)
	return b.recordCB
}

// interfaceTrampoline returns the C callback passed to webui_interface_bind.
func (b *Bridge) interfaceTrampoline() uintptr {
	b.cbOnce.Do(b.makeTrampolines)
	return b.interfaceCB
}

func (b *Bridge) makeTrampolines() {
	b.recordCB = b.newCallback(func(e uintptr) {
		b.dispatchRecord(e)
	})
	b.interfaceCB = b.newCallback(func(window, eventType, element, eventNumber, bindID uintptr) {
		b.dispatchInterface(window, eventType, element, eventNumber, bindID)
	})
}

// windowID maps a native window handle to the registry key.
func (b *Bridge) windowID(handle uintptr) WindowID {
	if b.lib.InterfaceGetWindowID == nil {
		return WindowID(handle)
	}
	return WindowID(b.lib.InterfaceGetWindowID(handle))
}

// ============================================================================
// Dispatch
// ============================================================================

// lookup resolves element on win, falling back to the window's "" binding
// for elements that were never bound. An unbound element keeps its slot and
// gets no fallback. The element string may borrow native memory; it is not
// retained.
func (b *Bridge) lookup(win WindowID, element string) (Handler, bool) {
	h, ok, reserved := b.reg.find(win, element)
	if ok {
		return h, true
	}
	if reserved || element == "" {
		return nil, false
	}
	return b.reg.Lookup(win, "")
}

// dispatchRecord runs on a webui thread for every event of a Bind binding.
func (b *Bridge) dispatchRecord(ptr uintptr) {
	if ptr == 0 {
		return
	}
	rec := ffi.Record(ptr)
	win := b.windowID(rec.Window)
	element := ffi.BorrowString(rec.Element)

	h, ok := b.lookup(win, element)
	if !ok {
		return
	}
	e := &Event{
		WindowID:     win,
		Kind:         eventKind(rec.EventType),
		RawKind:      rec.EventType,
		Element:      strings.Clone(element),
		Number:       uint(rec.EventNumber),
		BindID:       uint(rec.BindID),
		ClientID:     uint(rec.ClientID),
		ConnectionID: uint(rec.ConnectionID),
		Cookies:      ffi.GoString(rec.Cookies),
		b:            b,
		handle:       rec.Window,
		record:       ptr,
	}
	b.invoke(h, e)
}

// dispatchInterface runs on a webui thread for every event of a
// BindInterface binding.
func (b *Bridge) dispatchInterface(window, eventType, element, eventNumber, bindID uintptr) {
	win := b.windowID(window)
	name := ffi.BorrowString(element)

	h, ok := b.lookup(win, name)
	if !ok {
		return
	}
	e := &Event{
		WindowID: win,
		Kind:     eventKind(eventType),
		RawKind:  eventType,
		Element:  strings.Clone(name),
		Number:   uint(eventNumber),
		BindID:   uint(bindID),
		b:        b,
		handle:   window,
	}
	b.invoke(h, e)
}

// invoke calls h and expires e afterwards. A panic must not unwind into
// webui's frames, so it is logged and dropped.
func (b *Bridge) invoke(h Handler, e *Event) {
	defer e.expired.Store(true)
	defer func() {
		if r := recover(); r != nil {
			b.log.WithFields(logrus.Fields{
				"window":  e.WindowID,
				"element": e.Element,
				"event":   e.Kind,
				"panic":   r,
			}).Error("event handler panicked")
		}
	}()

	if e.Kind == EventUnknown {
		b.log.WithFields(logrus.Fields{
			"window":  e.WindowID,
			"element": e.Element,
			"code":    e.RawKind,
		}).Debug("unknown event kind")
	}
	h(e)
}

// serveFile is the body of a window's file handler callback. length is a
// native int* receiving the response size.
func (b *Bridge) serveFile(st *windowState, filename, length uintptr) uintptr {
	fn := st.fileHandler.Load()
	if fn == nil || st.destroyed.Load() {
		return 0
	}

	var resp []byte
	func() {
		defer func() {
			if r := recover(); r != nil {
				b.log.WithFields(logrus.Fields{
					"window": st.id,
					"panic":  r,
				}).Error("file handler panicked")
				resp = nil
			}
		}()
		resp = (*fn)(ffi.GoString(filename))
	}()
	if len(resp) == 0 {
		return 0
	}

	// webui frees the response with webui_free.
	out := b.lib.Malloc(uintptr(len(resp)))
	if out == 0 {
		return 0
	}
	ffi.Store(out, resp)
	ffi.PutInt32(length, int32(len(resp)))
	return out
}
