package webui

import (
	"encoding/base64"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"unsafe"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/agiangrant/webui/internal/ffi"
)

// fakeNative stands in for the webui shared library. Its Lib fields are Go
// functions, and events are fired by calling the trampolines the bridge
// registered, the same way webui's threads do.
type fakeNative struct {
	mu sync.Mutex

	next      uintptr
	open      map[uintptr]bool
	destroyed map[uintptr]int
	callbacks []any
	bound     map[uintptr]map[string]uintptr
	records   map[uintptr]*fakeEvent
	numbers   map[uintptr]*fakeEvent
	number    uintptr
	allocs    map[uintptr][]byte
	frees     int
	shown     map[uintptr]string
	browsers  map[uintptr]uintptr
	settings  map[string]any
	files     map[uintptr]uintptr
	timeout   uintptr
	config    map[int32]bool

	scriptOK  bool
	scriptOut string
	scriptTO  uintptr
}

type fakeEvent struct {
	rec      *ffi.EventC
	keep     [][]byte
	args     []string
	returned any
	response string
	closed   bool
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		open:      make(map[uintptr]bool),
		destroyed: make(map[uintptr]int),
		bound:     make(map[uintptr]map[string]uintptr),
		records:   make(map[uintptr]*fakeEvent),
		numbers:   make(map[uintptr]*fakeEvent),
		allocs:    make(map[uintptr][]byte),
		shown:     make(map[uintptr]string),
		browsers:  make(map[uintptr]uintptr),
		settings:  make(map[string]any),
		files:     make(map[uintptr]uintptr),
		config:    make(map[int32]bool),
	}
}

func newTestBridge(t *testing.T) (*Bridge, *fakeNative, *test.Hook) {
	t.Helper()
	return newTestBridgeConfig(t, DefaultConfig())
}

func newTestBridgeConfig(t *testing.T, cfg Config) (*Bridge, *fakeNative, *test.Hook) {
	t.Helper()
	f := newFakeNative()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	b := newBridge(f.lib(), cfg, log.WithField("component", "webui"))
	b.newCallback = f.newCallback
	t.Cleanup(b.Close)
	return b, f, hook
}

func (f *fakeNative) newCallback(fn any) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, fn)
	return uintptr(len(f.callbacks))
}

func (f *fakeNative) callback(token uintptr) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == 0 || int(token) > len(f.callbacks) {
		return nil
	}
	return f.callbacks[token-1]
}

func (f *fakeNative) set(key string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = v
}

func (f *fakeNative) setting(key string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings[key]
}

func (f *fakeNative) bind(window uintptr, element string, fn uintptr) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.bound[window]
	if !ok {
		row = make(map[string]uintptr)
		f.bound[window] = row
	}
	row[element] = fn
	return uintptr(len(row))
}

// target returns the callback webui would call for element.
func (f *fakeNative) target(window uintptr, element string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fn := f.bound[window][element]; fn != 0 {
		return fn
	}
	return f.bound[window][""]
}

func (f *fakeNative) malloc(size uintptr) uintptr {
	buf := make([]byte, size)
	p := ffi.Ptr(buf)
	f.mu.Lock()
	f.allocs[p] = buf
	f.mu.Unlock()
	return p
}

func (f *fakeNative) free(p uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.allocs, p)
	f.frees++
}

func (f *fakeNative) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.allocs)
}

func (f *fakeNative) cstring(s string) uintptr {
	p := f.malloc(uintptr(len(s) + 1))
	ffi.Store(p, []byte(s))
	return p
}

func (f *fakeNative) record(e uintptr) *fakeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[e]
}

func (f *fakeNative) byNumber(window, number uintptr) *fakeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numbers[number]
}

func (ev *fakeEvent) arg(i uintptr) string {
	if int(i) >= len(ev.args) {
		return ""
	}
	return ev.args[i]
}

func (ev *fakeEvent) str(i uintptr) uintptr {
	b := ffi.CString(ev.arg(i))
	ev.keep = append(ev.keep, b)
	return ffi.Ptr(b)
}

// fire delivers an event through the record convention. It reports whether
// a callback was registered for element.
func (f *fakeNative) fire(window uintptr, kind uintptr, element string, args ...string) (*fakeEvent, bool) {
	fn, _ := f.callback(f.target(window, element)).(func(uintptr))
	if fn == nil {
		return nil, false
	}
	name := ffi.CString(element)
	cookies := ffi.CString("session=1")
	ev := &fakeEvent{
		rec: &ffi.EventC{
			Window:       window,
			EventType:    kind,
			Element:      ffi.Ptr(name),
			ClientID:     7,
			ConnectionID: 9,
			Cookies:      ffi.Ptr(cookies),
		},
		keep: [][]byte{name, cookies},
		args: args,
	}
	ptr := uintptr(unsafe.Pointer(ev.rec))

	f.mu.Lock()
	f.number++
	ev.rec.EventNumber = f.number
	f.records[ptr] = ev
	f.mu.Unlock()

	fn(ptr)
	return ev, true
}

func clip(b []byte, n uintptr) []byte {
	if uintptr(len(b)) > n {
		return b[:n]
	}
	return b
}

// newRecord builds a webui_event_t outside the fake's bookkeeping, for
// dispatching directly. keep must run after the last use of the pointer.
func newRecord(window uintptr, kind EventKind, element string) (uintptr, func()) {
	name := ffi.CString(element)
	rec := &ffi.EventC{Window: window, EventType: uintptr(kind), Element: ffi.Ptr(name)}
	return uintptr(unsafe.Pointer(rec)), func() {
		runtime.KeepAlive(rec)
		runtime.KeepAlive(name)
	}
}

// fireInterface delivers an event through the scalar convention.
func (f *fakeNative) fireInterface(window uintptr, kind uintptr, element string, args ...string) (*fakeEvent, bool) {
	fn, _ := f.callback(f.target(window, element)).(func(window, eventType, element, eventNumber, bindID uintptr))
	if fn == nil {
		return nil, false
	}
	name := ffi.CString(element)
	ev := &fakeEvent{keep: [][]byte{name}, args: args}

	f.mu.Lock()
	f.number++
	number := f.number
	f.numbers[number] = ev
	f.mu.Unlock()

	fn(window, kind, ffi.Ptr(name), number, 1)
	return ev, true
}

func (f *fakeNative) lib() *ffi.Lib {
	return &ffi.Lib{
		NewWindow: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.next++
			f.open[f.next] = true
			return f.next
		},
		NewWindowID: func(n uintptr) bool {
			if n == 0 || n >= 256 {
				return false
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			f.open[n] = true
			return true
		},
		GetNewWindowID: func() uintptr { return 42 },
		Bind:           func(window, element, fn uintptr) uintptr { return f.bind(window, ffi.GoString(element), fn) },
		InterfaceBind:  func(window, element, fn uintptr) uintptr { return f.bind(window, ffi.GoString(element), fn) },
		GetBestBrowser: func(window uintptr) uintptr { return uintptr(Firefox) },
		Show: func(window, content uintptr) bool {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.shown[window] = ffi.GoString(content)
			return true
		},
		ShowBrowser: func(window, content, browser uintptr) bool {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.shown[window] = ffi.GoString(content)
			f.browsers[window] = browser
			return browser != uintptr(NoBrowser)
		},
		StartServer: func(window, content uintptr) uintptr {
			b := ffi.CString("http://localhost:" + strconv.Itoa(int(8000+window)))
			f.set("server", b)
			return ffi.Ptr(b)
		},
		SetKiosk:         func(window uintptr, status bool) { f.set("kiosk", status) },
		SetHighContrast:  func(window uintptr, status bool) { f.set("high_contrast", status) },
		IsHighContrast:   func() bool { return false },
		BrowserExist:     func(browser uintptr) bool { return browser == uintptr(Chrome) },
		Wait:             func() { f.set("wait", true) },
		Close:            func(window uintptr) { f.set("close", window) },
		Destroy: func(window uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.destroyed[window]++
			delete(f.open, window)
		},
		Exit:             func() { f.set("exit", true) },
		SetRootFolder:    func(window, path uintptr) bool { return ffi.GoString(path) != "/missing" },
		SetFileHandler: func(window, handler uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.files[window] = handler
		},
		IsShown:    func(window uintptr) bool { return true },
		SetTimeout: func(second uintptr) { f.mu.Lock(); f.timeout = second; f.mu.Unlock() },
		SetIcon: func(window, icon, iconType uintptr) {
			f.set("icon", ffi.GoString(icon)+"|"+ffi.GoString(iconType))
		},
		Encode: func(str uintptr) uintptr {
			return f.cstring(base64.StdEncoding.EncodeToString([]byte(ffi.GoString(str))))
		},
		Decode: func(str uintptr) uintptr {
			out, err := base64.StdEncoding.DecodeString(ffi.GoString(str))
			if err != nil {
				return 0
			}
			return f.cstring(string(out))
		},
		Free:   f.free,
		Malloc: f.malloc,
		SendRaw: func(window, function, raw, size uintptr) {
			f.set("raw", ffi.GoString(function)+":"+string(ffi.Bytes(raw, int(size))))
		},
		SendRawClient: func(e, function, raw, size uintptr) {
			f.set("raw_client", ffi.GoString(function)+":"+string(ffi.Bytes(raw, int(size))))
		},
		SetHide:     func(window uintptr, status bool) { f.set("hidden", status) },
		SetSize:     func(window uintptr, w, h uint32) { f.set("size", [2]uint32{w, h}) },
		SetPosition: func(window uintptr, x, y uint32) { f.set("position", [2]uint32{x, y}) },
		SetProfile: func(window, name, path uintptr) {
			f.set("profile", ffi.GoString(name)+"|"+ffi.GoString(path))
		},
		SetProxy:  func(window, proxy uintptr) { f.set("proxy", ffi.GoString(proxy)) },
		GetURL:    func(window uintptr) uintptr { return 0 },
		SetPublic: func(window uintptr, status bool) { f.set("public", status) },
		Navigate:  func(window, url uintptr) { f.set("navigate", ffi.GoString(url)) },
		NavigateClient: func(e, url uintptr) {
			f.set("navigate_client", ffi.GoString(url))
		},
		Clean:              func() { f.set("clean", true) },
		DeleteAllProfiles:  func() { f.set("delete_all_profiles", true) },
		DeleteProfile:      func(window uintptr) { f.set("delete_profile", window) },
		GetParentProcessID: func(window uintptr) uintptr { return 100 },
		GetChildProcessID:  func(window uintptr) uintptr { return 200 },
		GetPort:            func(window uintptr) uintptr { return 8080 },
		SetPort:            func(window, port uintptr) bool { return port != 1 },
		SetConfig: func(option int32, status bool) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.config[option] = status
		},
		SetEventBlocking: func(window uintptr, status bool) { f.set("event_blocking", status) },
		Run:              func(window, script uintptr) { f.set("run", ffi.GoString(script)) },
		RunClient:        func(e, script uintptr) { f.set("run_client", ffi.GoString(script)) },
		Script: func(window, script, timeout, buffer, length uintptr) bool {
			f.mu.Lock()
			ok, out := f.scriptOK, f.scriptOut
			f.scriptTO = timeout
			f.mu.Unlock()
			if ok {
				ffi.Store(buffer, clip([]byte(out), length))
			}
			return ok
		},
		ScriptClient: func(e, script, timeout, buffer, length uintptr) bool {
			ffi.Store(buffer, clip([]byte("client:"+ffi.GoString(script)), length))
			return true
		},
		SetRuntime:  func(window, rt uintptr) { f.set("runtime", rt) },
		ShowClient:  func(e, content uintptr) bool { f.set("show_client", ffi.GoString(content)); return true },
		CloseClient: func(e uintptr) { f.record(e).closed = true },
		GetCount:    func(e uintptr) uintptr { return uintptr(len(f.record(e).args)) },
		GetIntAt: func(e, i uintptr) int64 {
			n, _ := strconv.ParseInt(f.record(e).arg(i), 10, 64)
			return n
		},
		GetInt: func(e uintptr) int64 {
			n, _ := strconv.ParseInt(f.record(e).arg(0), 10, 64)
			return n
		},
		GetFloatAt: func(e, i uintptr) float64 {
			v, _ := strconv.ParseFloat(f.record(e).arg(i), 64)
			return v
		},
		GetStringAt: func(e, i uintptr) uintptr { return f.record(e).str(i) },
		GetBoolAt:   func(e, i uintptr) bool { return f.record(e).arg(i) == "true" },
		GetSizeAt:   func(e, i uintptr) uintptr { return uintptr(len(f.record(e).arg(i))) },
		ReturnInt:   func(e uintptr, n int64) { f.record(e).returned = n },
		ReturnFloat: func(e uintptr, v float64) { f.record(e).returned = v },
		ReturnString: func(e, s uintptr) {
			f.record(e).returned = ffi.GoString(s)
		},
		ReturnBool: func(e uintptr, v bool) { f.record(e).returned = v },
		InterfaceSetResponse: func(window, number, response uintptr) {
			f.byNumber(window, number).response = ffi.GoString(response)
		},
		InterfaceIsAppRunning: func() bool { return true },
		// webui answers 0 for a window it has already freed.
		InterfaceGetWindowID: func(window uintptr) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			if !f.open[window] {
				return 0
			}
			return window
		},
		InterfaceGetStringAt: func(window, number, i uintptr) uintptr {
			return f.byNumber(window, number).str(i)
		},
		InterfaceGetIntAt: func(window, number, i uintptr) int64 {
			n, _ := strconv.ParseInt(f.byNumber(window, number).arg(i), 10, 64)
			return n
		},
		InterfaceGetFloatAt: func(window, number, i uintptr) float64 {
			v, _ := strconv.ParseFloat(f.byNumber(window, number).arg(i), 64)
			return v
		},
		InterfaceGetBoolAt: func(window, number, i uintptr) bool {
			return f.byNumber(window, number).arg(i) == "true"
		},
		InterfaceGetSizeAt: func(window, number, i uintptr) uintptr {
			return uintptr(len(f.byNumber(window, number).arg(i)))
		},
	}
}
