package webui

import (
	"fmt"
	"strings"

	"github.com/agiangrant/webui/internal/ffi"
)

// Browser selects the browser a window is shown in. Values match the
// native webui_browser encoding.
type Browser uint

const (
	NoBrowser Browser = iota
	AnyBrowser
	Chrome
	Firefox
	Edge
	Safari
	Chromium
	Opera
	Brave
	Vivaldi
	Epic
	Yandex
	ChromiumBased
	Webview
)

var browserNames = [...]string{
	NoBrowser:     "none",
	AnyBrowser:    "any",
	Chrome:        "chrome",
	Firefox:       "firefox",
	Edge:          "edge",
	Safari:        "safari",
	Chromium:      "chromium",
	Opera:         "opera",
	Brave:         "brave",
	Vivaldi:       "vivaldi",
	Epic:          "epic",
	Yandex:        "yandex",
	ChromiumBased: "chromium-based",
	Webview:       "webview",
}

func (b Browser) String() string {
	if int(b) < len(browserNames) {
		return browserNames[b]
	}
	return fmt.Sprintf("Browser(%d)", uint(b))
}

// ParseBrowser parses a browser name as written in webui.toml.
func ParseBrowser(s string) (Browser, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnyBrowser, nil
	}
	for i, name := range browserNames {
		if name == s {
			return Browser(i), nil
		}
	}
	return NoBrowser, fmt.Errorf("webui: unknown browser %q", s)
}

// Runtime selects the JavaScript runtime used for .js/.ts files served by
// a window.
type Runtime uint

const (
	RuntimeNone Runtime = iota
	RuntimeDeno
	RuntimeNodeJS
)

var runtimeNames = [...]string{
	RuntimeNone:   "none",
	RuntimeDeno:   "deno",
	RuntimeNodeJS: "nodejs",
}

func (r Runtime) String() string {
	if int(r) < len(runtimeNames) {
		return runtimeNames[r]
	}
	return fmt.Sprintf("Runtime(%d)", uint(r))
}

// ParseRuntime parses a runtime name as written in webui.toml.
func ParseRuntime(s string) (Runtime, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return RuntimeNone, nil
	case "deno":
		return RuntimeDeno, nil
	case "nodejs", "node":
		return RuntimeNodeJS, nil
	}
	return RuntimeNone, fmt.Errorf("webui: unknown runtime %q", s)
}

// Option is a process-wide webui_config flag.
type Option int32

const (
	// ShowWaitConnection makes Show block until the browser connects.
	ShowWaitConnection Option = iota
	// UIEventBlocking processes UI events one at a time per window.
	UIEventBlocking
	// FolderMonitor reloads pages when files in the root folder change.
	FolderMonitor
	// MultiClient allows several browser tabs per window.
	MultiClient
	// UseCookies identifies clients by cookie.
	UseCookies
	// AsynchronousResponse lets handlers return after the callback.
	AsynchronousResponse
)

var optionNames = [...]string{
	ShowWaitConnection:   "show_wait_connection",
	UIEventBlocking:      "ui_event_blocking",
	FolderMonitor:        "folder_monitor",
	MultiClient:          "multi_client",
	UseCookies:           "use_cookies",
	AsynchronousResponse: "asynchronous_response",
}

func (o Option) String() string {
	if o >= 0 && int(o) < len(optionNames) {
		return optionNames[o]
	}
	return fmt.Sprintf("Option(%d)", int32(o))
}

// ParseOption parses a webui_config flag name.
func ParseOption(s string) (Option, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range optionNames {
		if name == s {
			return Option(i), nil
		}
	}
	return 0, fmt.Errorf("webui: unknown option %q", s)
}

// EventKind tags why a bound handler was invoked.
type EventKind uint

const (
	EventDisconnected EventKind = iota
	EventConnected
	EventMouseClick
	EventNavigation
	EventCallback
	// EventUnknown is any code the native library sends that this binding
	// does not know; Event.RawKind keeps the original value.
	EventUnknown EventKind = 255
)

func eventKind(code uintptr) EventKind {
	if code <= uintptr(EventCallback) {
		return EventKind(code)
	}
	return EventUnknown
}

func (k EventKind) String() string {
	switch k {
	case EventDisconnected:
		return "disconnected"
	case EventConnected:
		return "connected"
	case EventMouseClick:
		return "mouse-click"
	case EventNavigation:
		return "navigation"
	case EventCallback:
		return "callback"
	}
	return "unknown"
}

// The native encodings are part of the ABI; a mismatch here fails to compile.
func _() {
	var x [1]struct{}
	_ = x[NoBrowser-ffi.WebuiBrowserNoBrowser]
	_ = x[AnyBrowser-ffi.WebuiBrowserAnyBrowser]
	_ = x[Chrome-ffi.WebuiBrowserChrome]
	_ = x[Firefox-ffi.WebuiBrowserFirefox]
	_ = x[Edge-ffi.WebuiBrowserEdge]
	_ = x[Safari-ffi.WebuiBrowserSafari]
	_ = x[Chromium-ffi.WebuiBrowserChromium]
	_ = x[Opera-ffi.WebuiBrowserOpera]
	_ = x[Brave-ffi.WebuiBrowserBrave]
	_ = x[Vivaldi-ffi.WebuiBrowserVivaldi]
	_ = x[Epic-ffi.WebuiBrowserEpic]
	_ = x[Yandex-ffi.WebuiBrowserYandex]
	_ = x[ChromiumBased-ffi.WebuiBrowserChromiumBased]
	_ = x[Webview-ffi.WebuiBrowserWebview]

	_ = x[RuntimeNone-ffi.WebuiRuntimeNone]
	_ = x[RuntimeDeno-ffi.WebuiRuntimeDeno]
	_ = x[RuntimeNodeJS-ffi.WebuiRuntimeNodeJS]

	_ = x[ShowWaitConnection-ffi.WebuiConfigShowWaitConnection]
	_ = x[UIEventBlocking-ffi.WebuiConfigUiEventBlocking]
	_ = x[FolderMonitor-ffi.WebuiConfigFolderMonitor]
	_ = x[MultiClient-ffi.WebuiConfigMultiClient]
	_ = x[UseCookies-ffi.WebuiConfigUseCookies]
	_ = x[AsynchronousResponse-ffi.WebuiConfigAsynchronousResponse]

	_ = x[EventDisconnected-ffi.WebuiEventDisconnected]
	_ = x[EventConnected-ffi.WebuiEventConnected]
	_ = x[EventMouseClick-ffi.WebuiEventMouseClick]
	_ = x[EventNavigation-ffi.WebuiEventNavigation]
	_ = x[EventCallback-ffi.WebuiEventCallback]
}
