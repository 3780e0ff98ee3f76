package skyfix

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// armMid installs the stub for a hook at site. The stub block holds the
// Context followed by the emitted code and is allocated close enough to
// the site for a JMP rel32 to reach it.
func armMid(site uintptr, handler Handler) (*Hook, error) {
	src := makeSlice(site, 32)
	insts, length, err := analyzeSite(src, site, jmpRel32Len)
	if err != nil {
		return nil, err
	}

	block, err := allocExecNear(site, stubBlockSize)
	if err != nil {
		return nil, err
	}
	h := &Hook{
		Site:    site,
		handler: handler,
		ctx:     block,
		stub:    block + ctxSize,
	}
	thunk := syscall.NewCallback(func(ctx uintptr) uintptr {
		h.handler((*Context)(unsafe.Pointer(ctx)))
		return 0
	})

	code, err := emitStub(h.stub, h.ctx, thunk, insts, site+uintptr(length))
	if err != nil {
		return nil, err
	}
	copy(makeSlice(h.stub, len(code)), code)

	patch, err := emitSitePatch(site, h.stub, length)
	if err != nil {
		return nil, err
	}
	h.saved = make([]byte, length)
	copy(h.saved, src[:length])
	if err := writeCode(site, patch); err != nil {
		return nil, err
	}
	return h, nil
}

// allocExecNear commits a writable-executable block, preferring
// addresses within rel32 range of site so the site patch can be a five
// byte jump. Hints walk outward from the site; a final unhinted attempt
// is refused later by the rel32 check if it lands too far away.
func allocExecNear(site uintptr, size uintptr) (uintptr, error) {
	const step = uintptr(0x1000000)
	for i := uintptr(1); i <= 16; i++ {
		for _, hint := range []uintptr{site + i*step, site - i*step} {
			addr, err := windows.VirtualAlloc(hint, size,
				windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
			if err == nil {
				return addr, nil
			}
		}
	}
	return windows.VirtualAlloc(0, size,
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
}
