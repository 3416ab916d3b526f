package webui

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/webui/internal/ffi"
)

// ErrWindowDestroyed is the panic value of any Window operation after
// Destroy.
var ErrWindowDestroyed = errors.New("webui: window used after destroy")

// WindowID is the number webui assigns to a window.
type WindowID uint

// FileHandler serves a request for filename. It returns the complete HTTP
// response (headers and body); nil lets webui serve the file itself.
type FileHandler func(filename string) []byte

// windowState is shared by every Window handle of the same id, so a destroy
// through one handle is seen by all of them.
type windowState struct {
	id        WindowID
	destroyed atomic.Bool
	browser   atomic.Uint32

	fileOnce    sync.Once
	fileCB      uintptr
	fileHandler atomic.Pointer[FileHandler]
}

// Window is a handle to a native webui window.
type Window struct {
	b     *Bridge
	state *windowState
}

// ID returns the window number.
func (w *Window) ID() WindowID {
	return w.state.id
}

// Destroyed reports whether the window was destroyed.
func (w *Window) Destroyed() bool {
	return w.state.destroyed.Load()
}

func (w *Window) handle() uintptr {
	if w.state.destroyed.Load() {
		panic(ErrWindowDestroyed)
	}
	return uintptr(w.state.id)
}

func (w *Window) String() string {
	return fmt.Sprintf("Window(%d)", w.state.id)
}

// ============================================================================
// Display
// ============================================================================

// Show opens the window with content, which may be HTML, a file name or a
// URL. It reports webui's success flag unchanged.
func (w *Window) Show(content string) bool {
	h := w.handle()
	cs := ffi.CString(content)
	ok := w.b.lib.Show(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	return ok
}

// ShowBrowser is Show using a specific browser.
func (w *Window) ShowBrowser(content string, browser Browser) bool {
	h := w.handle()
	cs := ffi.CString(content)
	ok := w.b.lib.ShowBrowser(h, ffi.Ptr(cs), uintptr(browser))
	runtime.KeepAlive(cs)
	return ok
}

// ShowPreferred shows content in the browser set by ApplyConfig, or as Show
// does when none was configured.
func (w *Window) ShowPreferred(content string) bool {
	if b := w.state.browser.Load(); b != 0 {
		return w.ShowBrowser(content, Browser(b-1))
	}
	return w.Show(content)
}

// StartServer serves content without opening a browser and returns the
// local URL.
func (w *Window) StartServer(content string) string {
	h := w.handle()
	cs := ffi.CString(content)
	url := ffi.GoString(w.b.lib.StartServer(h, ffi.Ptr(cs)))
	runtime.KeepAlive(cs)
	return url
}

// ShowWebView shows content in an embedded WebView. It returns false when
// the loaded library was built without WebView support.
func (w *Window) ShowWebView(content string) bool {
	h := w.handle()
	if w.b.lib.ShowWV == nil {
		w.b.log.WithField("window", w.state.id).Warn("webui library has no webview support")
		return false
	}
	cs := ffi.CString(content)
	ok := w.b.lib.ShowWV(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	return ok
}

// IsShown reports whether the window is still open.
func (w *Window) IsShown() bool {
	return w.b.lib.IsShown(w.handle())
}

// BestBrowser returns the browser webui would pick for this window.
func (w *Window) BestBrowser() Browser {
	b := Browser(w.b.lib.GetBestBrowser(w.handle()))
	if b > Webview {
		return NoBrowser
	}
	return b
}

// ============================================================================
// Bindings
// ============================================================================

// Bind calls h whenever element fires in this window. Binding "" receives
// every event of the window, including connects and disconnects, that has
// no binding of its own. Rebinding an element replaces its handler.
//
// It returns the bind id webui assigned.
func (w *Window) Bind(element string, h Handler) (uint, error) {
	return w.bind(element, h, false)
}

// BindInterface is Bind using webui's scalar callback convention. Events it
// delivers have no native record, so client operations and Count panic.
func (w *Window) BindInterface(element string, h Handler) (uint, error) {
	return w.bind(element, h, true)
}

func (w *Window) bind(element string, h Handler, iface bool) (uint, error) {
	hw := w.handle()
	cs := ffi.CString(element)
	key := w.state.id

	slot, err := w.b.reg.Register(key, element, h)
	if err != nil {
		w.b.log.WithError(err).WithFields(logrus.Fields{
			"window":  key,
			"element": element,
		}).Error("binding rejected")
		return 0, err
	}

	var id uintptr
	if iface {
		id = w.b.lib.InterfaceBind(hw, ffi.Ptr(cs), w.b.interfaceTrampoline())
	} else {
		id = w.b.lib.Bind(hw, ffi.Ptr(cs), w.b.recordTrampoline())
	}
	runtime.KeepAlive(cs)

	w.b.log.WithFields(logrus.Fields{
		"window":    key,
		"element":   element,
		"slot":      slot,
		"bind_id":   id,
		"interface": iface,
	}).Debug("element bound")
	return uint(id), nil
}

// Unbind removes the handler of element. Later events for it are ignored;
// they do not reach the window's "" binding either.
func (w *Window) Unbind(element string) bool {
	w.handle()
	return w.b.reg.Unregister(w.state.id, element)
}

// ============================================================================
// Settings
// ============================================================================

// SetKiosk starts the browser in fullscreen kiosk mode.
func (w *Window) SetKiosk(status bool) {
	w.b.lib.SetKiosk(w.handle(), status)
}

// SetHighContrast forces the high contrast theme.
func (w *Window) SetHighContrast(status bool) {
	w.b.lib.SetHighContrast(w.handle(), status)
}

// SetHidden runs the window without a visible browser UI. Call before Show.
func (w *Window) SetHidden(status bool) {
	w.b.lib.SetHide(w.handle(), status)
}

// SetSize sets the window size in pixels.
func (w *Window) SetSize(width, height uint32) {
	w.b.lib.SetSize(w.handle(), width, height)
}

// SetPosition moves the window to x, y on screen.
func (w *Window) SetPosition(x, y uint32) {
	w.b.lib.SetPosition(w.handle(), x, y)
}

// SetProfile sets the browser profile name and directory. Empty values
// select the default profile.
func (w *Window) SetProfile(name, path string) {
	h := w.handle()
	cn, cp := ffi.CString(name), ffi.CString(path)
	w.b.lib.SetProfile(h, ffi.Ptr(cn), ffi.Ptr(cp))
	runtime.KeepAlive(cn)
	runtime.KeepAlive(cp)
}

// DeleteProfile removes the browser profile directory of the window.
func (w *Window) DeleteProfile() {
	w.b.lib.DeleteProfile(w.handle())
}

// SetProxy routes the browser through server, e.g. "http://127.0.0.1:8888".
func (w *Window) SetProxy(server string) {
	h := w.handle()
	cs := ffi.CString(server)
	w.b.lib.SetProxy(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// SetPublic makes the window reachable from other devices on the network.
func (w *Window) SetPublic(status bool) {
	w.b.lib.SetPublic(w.handle(), status)
}

// SetEventBlocking processes this window's events one at a time.
func (w *Window) SetEventBlocking(status bool) {
	w.b.lib.SetEventBlocking(w.handle(), status)
}

// SetRootFolder serves static files of the window from path.
func (w *Window) SetRootFolder(path string) bool {
	h := w.handle()
	cs := ffi.CString(path)
	ok := w.b.lib.SetRootFolder(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	return ok
}

// SetIcon sets the favicon. icon is the file content, iconType its MIME
// type, e.g. "image/svg+xml".
func (w *Window) SetIcon(icon, iconType string) {
	h := w.handle()
	ci, ct := ffi.CString(icon), ffi.CString(iconType)
	w.b.lib.SetIcon(h, ffi.Ptr(ci), ffi.Ptr(ct))
	runtime.KeepAlive(ci)
	runtime.KeepAlive(ct)
}

// SetRuntime selects the runtime used to execute .js and .ts files.
func (w *Window) SetRuntime(r Runtime) {
	w.b.lib.SetRuntime(w.handle(), uintptr(r))
}

// SetPort fixes the port the window is served on. It must be called before
// Show.
func (w *Window) SetPort(port uint) bool {
	return w.b.lib.SetPort(w.handle(), uintptr(port))
}

// ApplyConfig applies every non-zero field of cfg.
func (w *Window) ApplyConfig(cfg WindowConfig) error {
	browser, err := ParseBrowser(cfg.Browser)
	if err != nil {
		return err
	}
	rt, err := ParseRuntime(cfg.Runtime)
	if err != nil {
		return err
	}

	if cfg.Browser != "" {
		w.state.browser.Store(uint32(browser) + 1)
	}
	if cfg.Kiosk {
		w.SetKiosk(true)
	}
	if cfg.HighContrast {
		w.SetHighContrast(true)
	}
	if cfg.Hidden {
		w.SetHidden(true)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		w.SetSize(cfg.Width, cfg.Height)
	}
	if cfg.X != 0 || cfg.Y != 0 {
		w.SetPosition(cfg.X, cfg.Y)
	}
	if cfg.Proxy != "" {
		w.SetProxy(cfg.Proxy)
	}
	if cfg.ProfileName != "" || cfg.ProfilePath != "" {
		w.SetProfile(cfg.ProfileName, cfg.ProfilePath)
	}
	if cfg.RootFolder != "" && !w.SetRootFolder(cfg.RootFolder) {
		return fmt.Errorf("webui: cannot use root folder %s", cfg.RootFolder)
	}
	if cfg.Port != 0 && !w.SetPort(cfg.Port) {
		return fmt.Errorf("webui: port %d is not available", cfg.Port)
	}
	if cfg.Public {
		w.SetPublic(true)
	}
	if cfg.EventBlocking {
		w.SetEventBlocking(true)
	}
	if rt != RuntimeNone {
		w.SetRuntime(rt)
	}
	return nil
}

// ============================================================================
// Navigation and scripts
// ============================================================================

// URL returns the local URL the window is served on.
func (w *Window) URL() string {
	return ffi.GoString(w.b.lib.GetURL(w.handle()))
}

// Navigate points every client of the window at url.
func (w *Window) Navigate(url string) {
	h := w.handle()
	cs := ffi.CString(url)
	w.b.lib.Navigate(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// Run executes script in every connected client without waiting.
func (w *Window) Run(script string) {
	h := w.handle()
	cs := ffi.CString(script)
	w.b.lib.Run(h, ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// Script executes script in the window and returns its result as text.
// timeout is rounded up to whole seconds; zero waits as long as webui does.
// size bounds the result in bytes and defaults to DefaultScriptBufferSize.
// Failures, including no connected client, wrap ErrScriptFailed.
func (w *Window) Script(script string, timeout time.Duration, size int) (string, error) {
	h := w.handle()
	return w.b.script(func(s, t, buf, n uintptr) bool {
		return w.b.lib.Script(h, s, t, buf, n)
	}, script, timeout, size)
}

// SendRaw passes data to the JavaScript function named function in every
// connected client.
func (w *Window) SendRaw(function string, data []byte) {
	h := w.handle()
	cs := ffi.CString(function)
	w.b.lib.SendRaw(h, ffi.Ptr(cs), ffi.Ptr(data), uintptr(len(data)))
	runtime.KeepAlive(cs)
	runtime.KeepAlive(data)
}

// ============================================================================
// Process info
// ============================================================================

// Port returns the port the window is served on.
func (w *Window) Port() uint {
	return uint(w.b.lib.GetPort(w.handle()))
}

// ParentProcessID returns the id of the process running webui.
func (w *Window) ParentProcessID() int {
	return int(w.b.lib.GetParentProcessID(w.handle()))
}

// ChildProcessID returns the id of the browser process of the window.
func (w *Window) ChildProcessID() int {
	return int(w.b.lib.GetChildProcessID(w.handle()))
}

// ============================================================================
// File handler
// ============================================================================

// SetFileHandler serves every file request of the window through fn. A nil
// fn restores webui's own file serving.
func (w *Window) SetFileHandler(fn FileHandler) {
	h := w.handle()
	if fn == nil {
		w.state.fileHandler.Store(nil)
		return
	}
	w.state.fileHandler.Store(&fn)

	// webui does not tell the callback which window it serves, so every
	// window gets its own callback. It is created once and reused.
	w.state.fileOnce.Do(func() {
		st := w.state
		w.state.fileCB = w.b.newCallback(func(filename, length uintptr) uintptr {
			return w.b.serveFile(st, filename, length)
		})
	})
	w.b.lib.SetFileHandler(h, w.state.fileCB)
}

// ============================================================================
// Lifecycle
// ============================================================================

// Close closes the window. The handle stays valid and the window may be
// shown again.
func (w *Window) Close() {
	w.b.lib.Close(w.handle())
}

// Destroy closes the window and releases it. Only the first call on any
// handle of the window has effect; every other operation afterwards panics
// with ErrWindowDestroyed.
func (w *Window) Destroy() {
	w.b.destroy(w.state)
}
