package skyfix

import (
	"golang.org/x/sys/windows"
)

// protectRW makes [addr, addr+size) writable and executable and returns
// the protection flags the pages carried before the change.
func protectRW(addr, size uintptr) (uint32, error) {
	var old uint32
	err := windows.VirtualProtect(addr, size, windows.PAGE_EXECUTE_READWRITE, &old)
	return old, err
}

// protectRestore puts the pages back to the protection reported by
// protectRW.
func protectRestore(addr, size uintptr, prot uint32) error {
	var prev uint32
	return windows.VirtualProtect(addr, size, prot, &prev)
}
