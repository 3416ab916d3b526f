//go:build !darwin && !linux && !windows

package ffi

import (
	"fmt"
	"runtime"
)

func openLibrary(path string) (uintptr, error) {
	return 0, fmt.Errorf("%w: %s/%s", ErrUnsupportedTarget, runtime.GOOS, runtime.GOARCH)
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	return 0, fmt.Errorf("library not loaded")
}
