// Package ffi provides Go bindings to the prebuilt webui library via purego.
// Loading the shared library at runtime avoids CGo, so binaries cross-compile
// without a C toolchain.
package ffi

//go:generate go run ../../cmd/webui generate --version 2.5.0-beta.2 --out zz_generated.go

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// ============================================================================
// Library Loading
// ============================================================================

// LibraryEnv overrides library discovery. It may name the library file or a
// directory containing it.
const LibraryEnv = "WEBUI_LIB_PATH"

var (
	libOnce sync.Once
	lib     *Lib
	libErr  error
)

type symbol struct {
	name string
	fptr any
}

// ErrNullSymbol is reported for an entry point the library exports with a
// null address.
var ErrNullSymbol = errors.New("symbol resolved to a null address")

// optionalSymbols are entry points missing from some release builds.
// Their Lib fields stay nil when the library does not export them.
var optionalSymbols = map[string]bool{
	"webui_show_wv":                 true,
	"webui_set_tls_certificate":     true,
	"webui_get_mime_type":           true,
	"webui_open_url":                true,
	"webui_get_free_port":           true,
	"webui_set_default_root_folder": true,
}

// EventC matches the C struct layout of webui_event_t.
type EventC struct {
	Window       uintptr
	EventType    uintptr
	Element      uintptr
	EventNumber  uintptr
	BindID       uintptr
	ClientID     uintptr
	ConnectionID uintptr
	Cookies      uintptr
}

// Record reinterprets a native webui_event_t pointer.
func Record(ptr uintptr) *EventC {
	return (*EventC)(pointer(ptr))
}

// LibraryPath returns the path of the shared library for the running target.
// dirs are searched before the working directory and the executable's
// directory; each directory is also searched for a release asset subfolder.
func LibraryPath(dirs ...string) string {
	target := CurrentTarget()
	name := target.LibraryName()

	if path := os.Getenv(LibraryEnv); path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			dirs = append([]string{path}, dirs...)
		} else {
			return path
		}
	}

	searchDirs := append([]string{}, dirs...)
	searchDirs = append(searchDirs, ".", filepath.Join(".", "lib"))
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchDirs = append(searchDirs,
			execDir,
			filepath.Join(execDir, "..", "lib"),
		)
		if runtime.GOOS == "darwin" {
			searchDirs = append(searchDirs, filepath.Join(execDir, "..", "Frameworks"))
		}
	}

	asset, _ := target.Asset()
	for _, dir := range searchDirs {
		candidates := []string{filepath.Join(dir, name)}
		if asset != "" {
			candidates = append(candidates, filepath.Join(dir, asset, name))
		}
		for _, path := range candidates {
			if _, err := os.Stat(path); err == nil {
				if abs, err := filepath.Abs(path); err == nil {
					return abs
				}
				return path
			}
		}
	}

	// Let the dynamic loader search its default paths
	return name
}

// Load opens the webui shared library and resolves every entry point. The
// library is process-global, so only the first call has effect; later calls
// return the same table or error. An empty path triggers LibraryPath.
func Load(path string, log logrus.FieldLogger) (*Lib, error) {
	libOnce.Do(func() {
		lib, libErr = load(path, log)
	})
	return lib, libErr
}

func load(path string, log logrus.FieldLogger) (*Lib, error) {
	if path == "" {
		path = LibraryPath()
	}
	log = log.WithFields(logrus.Fields{
		"goos":   runtime.GOOS,
		"goarch": runtime.GOARCH,
		"path":   path,
	})
	log.Debug("loading webui library")

	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load webui library from %s: %w", path, err)
	}

	l := &Lib{}
	err = l.resolve(func(name string) (uintptr, error) {
		return getSymbol(handle, name)
	}, log)
	if err != nil {
		return nil, fmt.Errorf("webui library %s is incomplete: %w", path, err)
	}

	log.Info("webui library loaded")
	return l, nil
}

// resolve registers every entry point found by lookup. Missing optional
// symbols leave their field nil; missing required ones are collected into
// the returned error.
func (l *Lib) resolve(lookup func(name string) (uintptr, error), log logrus.FieldLogger) error {
	var missing error
	for _, s := range l.symbols() {
		addr, err := lookup(s.name)
		if err == nil && addr == 0 {
			err = ErrNullSymbol
		}
		if err != nil {
			if optionalSymbols[s.name] {
				log.WithField("symbol", s.name).Debug("optional symbol not exported")
				continue
			}
			missing = multierr.Append(missing, fmt.Errorf("symbol %s: %w", s.name, err))
			continue
		}
		purego.RegisterFunc(s.fptr, addr)
	}
	return missing
}

// NewCallback wraps fn as a C function pointer. Callbacks are never released,
// so callers create a fixed number of them and reuse them.
func NewCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}
