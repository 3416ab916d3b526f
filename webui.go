// Package webui drives the prebuilt webui library from Go.
//
// webui runs a local web server and a browser window and forwards events
// from bound page elements to native code. This package loads the library
// at runtime, so no C toolchain is needed:
//
//	win := webui.NewWindow()
//	win.Bind("add", func(e *webui.Event) {
//		e.ReturnInt(e.IntAt(0) + e.IntAt(1))
//	})
//	win.Show(html)
//	webui.Wait()
//
// Handlers run on webui's own threads, possibly concurrently for different
// elements and windows.
package webui

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/webui/internal/ffi"
	"github.com/agiangrant/webui/internal/release"
)

// Version is the webui release the bindings are generated from.
const Version = release.DefaultVersion

// ConfigEnv names a webui.toml used by Default.
const ConfigEnv = "WEBUI_CONFIG"

// ErrTLSRejected is returned when webui refuses a certificate pair.
var ErrTLSRejected = errors.New("webui: certificate rejected")

// Bridge owns the loaded webui library together with the callback registry
// and the state of every window created through it.
//
// The native library is process-global, so a program normally uses a single
// Bridge, usually the one returned by Default.
type Bridge struct {
	lib *ffi.Lib
	log logrus.FieldLogger
	reg *Registry[Handler]
	cfg Config

	mu      sync.Mutex
	windows map[WindowID]*windowState

	newCallback func(fn any) uintptr
	cbOnce      sync.Once
	recordCB    uintptr
	interfaceCB uintptr
}

// BridgeOption customizes Open.
type BridgeOption func(*Bridge)

// WithLogger sets the logger of the bridge.
func WithLogger(log logrus.FieldLogger) BridgeOption {
	return func(b *Bridge) {
		b.log = log.WithField("component", "webui")
	}
}

// Open loads the webui library described by cfg and applies its runtime
// settings.
func Open(cfg Config, opts ...BridgeOption) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logrus.StandardLogger().WithField("component", "webui")

	lib, err := ffi.Load(LibraryPath(cfg.Library), log)
	if err != nil {
		return nil, err
	}

	b := newBridge(lib, cfg, log)
	for _, opt := range opts {
		opt(b)
	}
	b.applyRuntime(cfg.Runtime)
	return b, nil
}

func newBridge(lib *ffi.Lib, cfg Config, log logrus.FieldLogger) *Bridge {
	return &Bridge{
		lib:         lib,
		log:         log,
		reg:         NewRegistry[Handler](cfg.Registry.MaxWindows, cfg.Registry.MaxElements),
		cfg:         cfg,
		windows:     make(map[WindowID]*windowState),
		newCallback: ffi.NewCallback,
	}
}

func (b *Bridge) applyRuntime(rc RuntimeConfig) {
	if rc.Timeout > 0 {
		b.SetTimeout(time.Duration(rc.Timeout) * time.Second)
	}
	names := make([]string, 0, len(rc.Options))
	for name := range rc.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		// Validate already rejected unknown names.
		opt, _ := ParseOption(name)
		b.SetConfig(opt, rc.Options[name])
	}
}

// Config returns the configuration the bridge was opened with.
func (b *Bridge) Config() Config {
	return b.cfg
}

// Registry exposes the bridge's callback registry.
func (b *Bridge) Registry() *Registry[Handler] {
	return b.reg
}

// ============================================================================
// Windows
// ============================================================================

// state returns the state shared by every handle of id. A destroyed
// window's state is kept so that later handles see it destroyed.
func (b *Bridge) state(id WindowID) *windowState {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.windows[id]
	if !ok {
		st = &windowState{id: id}
		b.windows[id] = st
	}
	return st
}

// openState returns the state of a window webui has just created,
// replacing the state of a destroyed window that had the same id.
func (b *Bridge) openState(id WindowID) *windowState {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.windows[id]
	if !ok || st.destroyed.Load() {
		st = &windowState{id: id}
		b.windows[id] = st
	}
	return st
}

func (b *Bridge) newWindow(id WindowID) *Window {
	w := &Window{b: b, state: b.openState(id)}
	if err := w.ApplyConfig(b.cfg.Window); err != nil {
		b.log.WithError(err).WithField("window", id).Warn("window defaults not applied")
	}
	b.log.WithField("window", id).Debug("window created")
	return w
}

// NewWindow creates a window with the next free id.
func (b *Bridge) NewWindow() *Window {
	return b.newWindow(WindowID(b.lib.NewWindow()))
}

// NewWindowWithID creates a window with a chosen id, e.g. one returned by
// NewWindowID.
func (b *Bridge) NewWindowWithID(id WindowID) (*Window, error) {
	if !b.lib.NewWindowID(uintptr(id)) {
		return nil, fmt.Errorf("webui: cannot create window %d", id)
	}
	return b.newWindow(id), nil
}

// NewWindowID returns a free window id without creating a window.
func (b *Bridge) NewWindowID() WindowID {
	return WindowID(b.lib.GetNewWindowID())
}

// WindowFromID returns another handle to a window created through b. Handles
// of the same id share their destroyed state, including handles obtained
// after Destroy, until a new window reuses the id.
func (b *Bridge) WindowFromID(id WindowID) *Window {
	return &Window{b: b, state: b.state(id)}
}

func (b *Bridge) destroy(st *windowState) {
	if !st.destroyed.CompareAndSwap(false, true) {
		return
	}
	// Registry rows are keyed by the window id, which webui no longer
	// resolves once the window is gone.
	b.reg.Forget(st.id)
	b.lib.Destroy(uintptr(st.id))

	b.log.WithField("window", st.id).Debug("window destroyed")
}

// Close destroys every window of the bridge and drops all bindings.
func (b *Bridge) Close() {
	b.mu.Lock()
	states := make([]*windowState, 0, len(b.windows))
	for _, st := range b.windows {
		states = append(states, st)
	}
	b.mu.Unlock()

	for _, st := range states {
		b.destroy(st)
	}
	b.reg.Reset()
}

// ============================================================================
// Event loop
// ============================================================================

// Wait blocks until every window is closed or Exit is called.
func (b *Bridge) Wait() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	b.lib.Wait()
}

// Exit closes every window and makes Wait return.
func (b *Bridge) Exit() {
	b.lib.Exit()
}

// SetTimeout bounds how long Show waits for the browser to connect. It is
// rounded up to whole seconds; zero waits forever.
func (b *Bridge) SetTimeout(d time.Duration) {
	b.lib.SetTimeout(seconds(d))
}

// SetConfig sets a process-wide webui option.
func (b *Bridge) SetConfig(opt Option, status bool) {
	b.lib.SetConfig(int32(opt), status)
}

// Clean frees all webui resources. Call it after Wait returns.
func (b *Bridge) Clean() {
	b.lib.Clean()
}

// DeleteAllProfiles removes the browser profiles of every window.
func (b *Bridge) DeleteAllProfiles() {
	b.lib.DeleteAllProfiles()
}

// SetDefaultRootFolder sets the static file folder of windows without their
// own root folder.
func (b *Bridge) SetDefaultRootFolder(path string) bool {
	if b.lib.SetDefaultRootFolder == nil {
		return false
	}
	cs := ffi.CString(path)
	ok := b.lib.SetDefaultRootFolder(ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	return ok
}

// IsAppRunning reports whether any window is still open.
func (b *Bridge) IsAppRunning() bool {
	return b.lib.InterfaceIsAppRunning()
}

// ============================================================================
// TLS
// ============================================================================

// SetTLSCertificate makes webui serve over HTTPS with a PEM certificate and
// key. Empty values let webui generate a self-signed pair.
func (b *Bridge) SetTLSCertificate(certPEM, keyPEM string) bool {
	if b.lib.SetTLSCertificate == nil {
		b.log.Warn("webui library was built without TLS")
		return false
	}
	cc, ck := ffi.CString(certPEM), ffi.CString(keyPEM)
	ok := b.lib.SetTLSCertificate(ffi.Ptr(cc), ffi.Ptr(ck))
	runtime.KeepAlive(cc)
	runtime.KeepAlive(ck)
	return ok
}

// LoadTLSCertificate reads a PEM certificate and key from files, checks
// that they form a pair and installs them.
func (b *Bridge) LoadTLSCertificate(certFile, keyFile string) error {
	cert, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}
	if _, err := tls.X509KeyPair(cert, key); err != nil {
		return fmt.Errorf("invalid certificate pair: %w", err)
	}
	if !b.SetTLSCertificate(string(cert), string(key)) {
		return ErrTLSRejected
	}
	return nil
}

// ============================================================================
// Utilities
// ============================================================================

// Encode returns s in base64 as webui encodes it.
func (b *Bridge) Encode(s string) string {
	return b.transcode(b.lib.Encode, s)
}

// Decode reverses Encode.
func (b *Bridge) Decode(s string) string {
	return b.transcode(b.lib.Decode, s)
}

func (b *Bridge) transcode(fn func(uintptr) uintptr, s string) string {
	cs := ffi.CString(s)
	p := fn(ffi.Ptr(cs))
	runtime.KeepAlive(cs)
	if p == 0 {
		return ""
	}
	defer b.lib.Free(p)
	return ffi.GoString(p)
}

// MimeType returns the MIME type webui uses for file.
func (b *Bridge) MimeType(file string) string {
	if b.lib.GetMimeType == nil {
		return ""
	}
	cs := ffi.CString(file)
	mime := ffi.GoString(b.lib.GetMimeType(ffi.Ptr(cs)))
	runtime.KeepAlive(cs)
	return mime
}

// OpenURL opens url in the system's default browser.
func (b *Bridge) OpenURL(url string) {
	if b.lib.OpenURL == nil {
		b.log.WithField("url", url).Warn("webui library cannot open URLs")
		return
	}
	cs := ffi.CString(url)
	b.lib.OpenURL(ffi.Ptr(cs))
	runtime.KeepAlive(cs)
}

// BrowserExists reports whether browser is installed.
func (b *Bridge) BrowserExists(browser Browser) bool {
	return b.lib.BrowserExist(uintptr(browser))
}

// FreePort returns a free TCP port, or 0 when the library cannot tell.
func (b *Bridge) FreePort() uint {
	if b.lib.GetFreePort == nil {
		return 0
	}
	return uint(b.lib.GetFreePort())
}

// IsHighContrast reports whether the OS uses a high contrast theme.
func (b *Bridge) IsHighContrast() bool {
	return b.lib.IsHighContrast()
}

// script runs a synchronous script call with a result buffer from
// webui_malloc, which is freed on every path.
func (b *Bridge) script(call func(script, timeout, buf, size uintptr) bool, script string, timeout time.Duration, size int) (string, error) {
	if size <= 0 {
		size = DefaultScriptBufferSize
	}
	cs := ffi.CString(script)
	buf := b.lib.Malloc(uintptr(size))
	if buf == 0 {
		return "", fmt.Errorf("%w: cannot allocate %d byte result buffer", ErrScriptFailed, size)
	}
	defer b.lib.Free(buf)

	ok := call(ffi.Ptr(cs), seconds(timeout), buf, uintptr(size))
	runtime.KeepAlive(cs)

	out := ffi.GoStringN(buf, size)
	if !ok {
		if out != "" {
			return "", fmt.Errorf("%w: %s", ErrScriptFailed, out)
		}
		return "", ErrScriptFailed
	}
	return out, nil
}

func seconds(d time.Duration) uintptr {
	if d <= 0 {
		return 0
	}
	return uintptr((d + time.Second - 1) / time.Second)
}

// ============================================================================
// Default bridge
// ============================================================================

var (
	defaultOnce   sync.Once
	defaultBridge *Bridge
	defaultErr    error
)

// Default returns the process-wide bridge, opening it on first use with the
// file named by $WEBUI_CONFIG, ./webui.toml when present, or DefaultConfig.
func Default() (*Bridge, error) {
	defaultOnce.Do(func() {
		cfg, err := defaultConfig()
		if err != nil {
			defaultErr = err
			return
		}
		defaultBridge, defaultErr = Open(cfg)
	})
	return defaultBridge, defaultErr
}

func defaultConfig() (Config, error) {
	if path := os.Getenv(ConfigEnv); path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(ConfigFile); err == nil {
		return LoadConfig(ConfigFile)
	}
	return DefaultConfig(), nil
}

// mustDefault panics when the library cannot be loaded; the package-level
// helpers have no other way to report it.
func mustDefault() *Bridge {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

// NewWindow creates a window on the default bridge.
func NewWindow() *Window { return mustDefault().NewWindow() }

// NewWindowWithID creates a window with a chosen id on the default bridge.
func NewWindowWithID(id WindowID) (*Window, error) { return mustDefault().NewWindowWithID(id) }

// NewWindowID returns a free window id of the default bridge.
func NewWindowID() WindowID { return mustDefault().NewWindowID() }

// WindowFromID returns a handle to a window of the default bridge.
func WindowFromID(id WindowID) *Window { return mustDefault().WindowFromID(id) }

// Wait runs the event loop of the default bridge.
func Wait() { mustDefault().Wait() }

// Exit makes Wait return.
func Exit() { mustDefault().Exit() }

// SetTimeout bounds how long Show waits for a browser.
func SetTimeout(d time.Duration) { mustDefault().SetTimeout(d) }

// SetConfig sets a process-wide webui option.
func SetConfig(opt Option, status bool) { mustDefault().SetConfig(opt, status) }

// Clean frees all webui resources.
func Clean() { mustDefault().Clean() }

// DeleteAllProfiles removes every browser profile created by webui.
func DeleteAllProfiles() { mustDefault().DeleteAllProfiles() }

// SetTLSCertificate installs a PEM certificate and key.
func SetTLSCertificate(certPEM, keyPEM string) bool {
	return mustDefault().SetTLSCertificate(certPEM, keyPEM)
}

// LoadTLSCertificate installs a certificate and key read from files.
func LoadTLSCertificate(certFile, keyFile string) error {
	return mustDefault().LoadTLSCertificate(certFile, keyFile)
}

// SetDefaultRootFolder sets the static file folder for all windows.
func SetDefaultRootFolder(path string) bool { return mustDefault().SetDefaultRootFolder(path) }

func Encode(s string) string { return mustDefault().Encode(s) }

func Decode(s string) string { return mustDefault().Decode(s) }

func MimeType(file string) string { return mustDefault().MimeType(file) }

func OpenURL(url string) { mustDefault().OpenURL(url) }

func BrowserExists(browser Browser) bool { return mustDefault().BrowserExists(browser) }

func FreePort() uint { return mustDefault().FreePort() }

func IsHighContrast() bool { return mustDefault().IsHighContrast() }

func IsAppRunning() bool { return mustDefault().IsAppRunning() }
