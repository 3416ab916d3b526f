package webui

import "github.com/agiangrant/webui/internal/ffi"

// Target identifies an (OS, architecture) pair with a prebuilt webui
// release. This is a re-export of ffi.Target for consumer convenience.
type Target = ffi.Target

// ErrUnsupportedTarget is returned for a pair without a prebuilt release.
var ErrUnsupportedTarget = ffi.ErrUnsupportedTarget

// LibraryEnv overrides where the shared library is loaded from.
const LibraryEnv = ffi.LibraryEnv

// CurrentTarget returns the target the program is running on.
func CurrentTarget() Target {
	return ffi.CurrentTarget()
}

// Supported reports whether a prebuilt webui release exists for the running
// target.
func Supported() bool {
	_, err := ffi.CurrentTarget().Asset()
	return err == nil
}

// LibraryPath returns the shared library Open would load for cfg.
func LibraryPath(cfg LibraryConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return ffi.LibraryPath(cfg.Dir)
}
