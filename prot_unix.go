//go:build !windows

package skyfix

import (
	"golang.org/x/sys/unix"
)

var pageSize uintptr

func init() {
	pageSize = uintptr(unix.Getpagesize())
}

// protectRW makes every page covering [addr, addr+size) writable while
// keeping it readable and executable. mprotect cannot report the prior
// protection, so the returned token restores read+execute, which is
// what image code pages carry.
func protectRW(addr, size uintptr) (uint32, error) {
	if err := mprotectRange(addr, size, unix.PROT_EXEC|unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, err
	}
	return unix.PROT_EXEC | unix.PROT_READ, nil
}

// protectRestore puts the pages back to the protection reported by
// protectRW.
func protectRestore(addr, size uintptr, prot uint32) error {
	return mprotectRange(addr, size, int(prot))
}

func mprotectRange(addr, size uintptr, prot int) error {
	start := pageSize * (addr / pageSize)
	length := pageSize * ((addr + size + pageSize - 1 - start) / pageSize)
	for i := uintptr(0); i < length; i += pageSize {
		data := makeSlice(start+i, int(pageSize))
		if err := unix.Mprotect(data, prot); err != nil {
			return err
		}
	}
	return nil
}
