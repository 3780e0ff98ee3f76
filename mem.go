package skyfix

import "unsafe"

// makeSlice views raw process memory as a byte slice. The caller is
// responsible for the address range being mapped.
func makeSlice(addr uintptr, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

func slicePtr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
