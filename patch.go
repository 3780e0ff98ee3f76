package skyfix

// Patch overwrites len(pattern) bytes at addr with the literal byte
// values of a signature string such as "DE AD BE EF". The page
// protection is flipped to writable-executable only for the copy and
// restored to the previously reported flags immediately after.
//
// Patch provides no synchronization against other threads executing in
// the patched region; it is meant to run once, early, before the code
// path becomes reachable.
func Patch(addr uintptr, sig string) error {
	data, err := CompileLiteral(sig)
	if err != nil {
		return err
	}
	return writeCode(addr, data)
}

// writeCode is the protected-overwrite primitive shared by Patch and
// the hook installer.
func writeCode(addr uintptr, data []byte) error {
	size := uintptr(len(data))
	old, err := protectRW(addr, size)
	if err != nil {
		return err
	}
	copy(makeSlice(addr, len(data)), data)
	return protectRestore(addr, size, old)
}
