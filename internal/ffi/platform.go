package ffi

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedTarget is returned for an (OS, architecture) pair with no
// prebuilt webui release.
var ErrUnsupportedTarget = errors.New("unsupported webui target")

// Target identifies a build target by Go's OS and architecture names.
type Target struct {
	GOOS   string
	GOARCH string
}

// CurrentTarget returns the target the binary is running on
func CurrentTarget() Target {
	return Target{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}
}

func (t Target) String() string {
	return t.GOOS + "/" + t.GOARCH
}

// releaseAssets maps every supported target to its release archive name
// (without the .zip suffix).
var releaseAssets = map[Target]string{
	{"linux", "arm"}:     "webui-linux-gcc-arm",
	{"linux", "arm64"}:   "webui-linux-gcc-arm64",
	{"linux", "amd64"}:   "webui-linux-gcc-x64",
	{"darwin", "arm64"}:  "webui-macos-clang-arm64",
	{"darwin", "amd64"}:  "webui-macos-clang-x64",
	{"windows", "amd64"}: "webui-windows-msvc-x64",
}

// Targets returns every supported target.
func Targets() []Target {
	out := make([]Target, 0, len(releaseAssets))
	for t := range releaseAssets {
		out = append(out, t)
	}
	return out
}

// Asset returns the release archive name for t.
func (t Target) Asset() (string, error) {
	asset, ok := releaseAssets[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTarget, t)
	}
	return asset, nil
}

// LibraryName returns the shared library file name shipped in the release
// archive for t.
func (t Target) LibraryName() string {
	switch t.GOOS {
	case "darwin":
		return "webui-2.dylib"
	case "windows":
		return "webui-2.dll"
	default:
		return "webui-2.so"
	}
}
