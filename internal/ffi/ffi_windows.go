//go:build windows

package ffi

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// dll is the loaded webui-2.dll. FindProc needs the *DLL, not the HMODULE
// that is returned to the loader.
var dll *windows.DLL

func openLibrary(path string) (uintptr, error) {
	d, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL %s: %w", path, err)
	}
	dll = d
	return uintptr(d.Handle), nil
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	if dll == nil || uintptr(dll.Handle) != handle {
		return 0, errors.New("webui-2.dll is not loaded")
	}
	proc, err := dll.FindProc(name)
	if err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}
