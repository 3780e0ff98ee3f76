package skyfix

import (
	"errors"
	"unsafe"

	"golang.org/x/arch/x86/x86asm"
)

// A mid-function hook displaces whole instructions at the site until at
// least a JMP rel32 fits, then routes execution through a stub that
// spills the thread's register state into a Context, calls the handler
// thunk, reloads the possibly mutated state, executes the displaced
// instructions and jumps back. The original code path is never skipped
// or redirected; only transient CPU state at one instruction boundary
// can change.

const (
	jmpRel32Len = 5
	nopByte     = 0x90
	// stub block: one Context followed by the emitted code
	ctxSize       = uintptr(unsafe.Sizeof(Context{}))
	stubBlockSize = 1024
)

// x86-64 register numbers as encoded in ModRM reg fields.
const (
	regAX = iota
	regCX
	regDX
	regBX
	regSP
	regBP
	regSI
	regDI
	regR8
	regR9
	regR10
	regR11
	regR12
	regR13
	regR14
	regR15
)

// Context field offsets used by the emitter. GPRs sit at reg*8 by
// construction; the rest is taken from the struct itself.
var (
	ctxOffFlags = uint32(unsafe.Offsetof(Context{}.Rflags))
	ctxOffRip   = uint32(unsafe.Offsetof(Context{}.Rip))
	ctxOffXmm   = uint32(unsafe.Offsetof(Context{}.Xmm))
)

const (
	dispCopy = iota // verbatim bytes, position-independent
	dispJcc         // conditional jump, re-encoded as Jcc rel32
	dispJmp         // JMP rel8/rel32, re-encoded as JMP rel32
	dispCall        // CALL rel32, re-encoded with a fresh displacement
)

// displacedInst is one instruction lifted out of the hook site.
type displacedInst struct {
	raw    []byte
	kind   int
	cc     byte    // condition nibble for dispJcc
	target uintptr // absolute branch target for re-encoded kinds
}

// analyzeSite decodes whole instructions at site until min bytes are
// covered. Relative branches are lifted with their absolute target so
// the stub can re-encode them; RIP-relative data references cannot be
// moved and abort the hook.
func analyzeSite(src []byte, site uintptr, min int) ([]displacedInst, int, error) {
	var insts []displacedInst
	length := 0
	for length < min {
		inst, err := x86asm.Decode(src[length:], 64)
		if err != nil {
			return nil, 0, err
		}
		raw := src[length : length+inst.Len]
		d, err := liftInst(inst, raw, site+uintptr(length))
		if err != nil {
			return nil, 0, err
		}
		insts = append(insts, d)
		length += inst.Len
	}
	return insts, length, nil
}

func liftInst(inst x86asm.Inst, raw []byte, addr uintptr) (displacedInst, error) {
	rel := x86asm.Rel(0)
	haveRel := false
	for _, a := range inst.Args {
		if a == nil {
			break
		}
		if mem, ok := a.(x86asm.Mem); ok && mem.Base == x86asm.RIP {
			return displacedInst{}, ErrRelativeAddr
		}
		if r, ok := a.(x86asm.Rel); ok {
			rel = r
			haveRel = true
		}
	}
	if !haveRel {
		return displacedInst{raw: raw, kind: dispCopy}, nil
	}
	target := addr + uintptr(inst.Len) + uintptr(int64(rel))
	switch {
	case raw[0] >= 0x70 && raw[0] <= 0x7F: // Jcc rel8
		return displacedInst{raw: raw, kind: dispJcc, cc: raw[0] & 0x0F, target: target}, nil
	case raw[0] == 0x0F && len(raw) >= 2 && raw[1] >= 0x80 && raw[1] <= 0x8F: // Jcc rel32
		return displacedInst{raw: raw, kind: dispJcc, cc: raw[1] & 0x0F, target: target}, nil
	case raw[0] == 0xEB || raw[0] == 0xE9: // JMP rel8/rel32
		return displacedInst{raw: raw, kind: dispJmp, target: target}, nil
	case raw[0] == 0xE8: // CALL rel32
		return displacedInst{raw: raw, kind: dispCall, target: target}, nil
	}
	// JCXZ, LOOP and friends have no rel32 form
	return displacedInst{}, ErrRelativeAddr
}

// emitStub assembles the stub at stub for a hook whose Context lives at
// ctx. thunk is a C-callable entry that takes the Context address and
// runs the handler. ret is the first original instruction after the
// displaced region.
func emitStub(stub, ctx, thunk uintptr, insts []displacedInst, ret uintptr) ([]byte, error) {
	spill := []int{regCX, regDX, regBX, regBP, regSI, regDI,
		regR8, regR9, regR10, regR11, regR12, regR13, regR14, regR15}

	code := []byte{
		0x9c, // PUSHFQ
		0x50, // PUSH RAX
	}
	code = movRegImm64(code, regAX, uint64(ctx))
	for _, r := range spill {
		code = movStore(code, r, uint32(r)*8)
	}
	code = append(code, 0x59) // POP RCX, the interrupted RAX
	code = movStore(code, regCX, 0)
	code = append(code, 0x59) // POP RCX, the interrupted RFLAGS
	code = movStore(code, regCX, ctxOffFlags)
	code = movStore(code, regSP, uint32(regSP)*8)
	code = movRegImm64(code, regCX, uint64(ret-uintptr(displacedLen(insts))))
	code = movStore(code, regCX, ctxOffRip)
	for n := 0; n < 16; n++ {
		code = movdqu(code, 0x7f, n, ctxOffXmm+uint32(n)*16)
	}

	// handler call, Win64 convention: context address in RCX, aligned
	// stack with shadow space
	code = movRegImm64(code, regCX, uint64(ctx))
	code = movRegImm64(code, regAX, uint64(thunk))
	code = append(code,
		0x48, 0x83, 0xe4, 0xf0, // AND RSP, -16
		0x48, 0x83, 0xec, 0x20, // SUB RSP, 0x20
		0xff, 0xd0, // CALL RAX
	)

	// reload the whole context; the handler may have changed any of it
	code = movRegImm64(code, regAX, uint64(ctx))
	for n := 0; n < 16; n++ {
		code = movdqu(code, 0x6f, n, ctxOffXmm+uint32(n)*16)
	}
	code = movLoad(code, regCX, ctxOffFlags)
	code = append(code,
		0x51, // PUSH RCX
		0x9d, // POPFQ
	)
	code = movLoad(code, regSP, uint32(regSP)*8)
	for _, r := range spill {
		code = movLoad(code, r, uint32(r)*8)
	}
	code = movLoad(code, regAX, 0)

	// displaced original instructions, branches re-encoded in place
	for _, d := range insts {
		var err error
		code, err = emitDisplaced(code, stub, d)
		if err != nil {
			return nil, err
		}
	}
	code = emitJmpAbs(code, ret)
	if len(code) > stubBlockSize-int(ctxSize) {
		return nil, errors.New("stub exceeds block")
	}
	return code, nil
}

func displacedLen(insts []displacedInst) int {
	n := 0
	for _, d := range insts {
		n += len(d.raw)
	}
	return n
}

func emitDisplaced(code []byte, stub uintptr, d displacedInst) ([]byte, error) {
	switch d.kind {
	case dispCopy:
		return append(code, d.raw...), nil
	case dispJcc:
		next := stub + uintptr(len(code)) + 6
		rel, err := rel32(next, d.target)
		if err != nil {
			return nil, err
		}
		return appendLE32(append(code, 0x0f, 0x80|d.cc), uint32(rel)), nil
	case dispJmp:
		next := stub + uintptr(len(code)) + jmpRel32Len
		rel, err := rel32(next, d.target)
		if err != nil {
			return nil, err
		}
		return appendLE32(append(code, 0xe9), uint32(rel)), nil
	case dispCall:
		next := stub + uintptr(len(code)) + jmpRel32Len
		rel, err := rel32(next, d.target)
		if err != nil {
			return nil, err
		}
		return appendLE32(append(code, 0xe8), uint32(rel)), nil
	}
	return nil, ErrRelativeAddr
}

// emitSitePatch builds the bytes written over the hook site: a JMP
// rel32 to the stub padded with NOPs to the displaced length.
func emitSitePatch(site, stub uintptr, length int) ([]byte, error) {
	rel, err := rel32(site+jmpRel32Len, stub)
	if err != nil {
		return nil, err
	}
	code := appendLE32([]byte{0xe9}, uint32(rel))
	for len(code) < length {
		code = append(code, nopByte)
	}
	return code, nil
}

// emitJmpAbs jumps to an arbitrary 64-bit address without touching any
// register: push the low half, patch the high half, return.
func emitJmpAbs(code []byte, target uintptr) []byte {
	code = appendLE32(append(code, 0x68), uint32(target))                       // PUSH imm32
	code = appendLE32(append(code, 0xc7, 0x44, 0x24, 0x04), uint32(target>>32)) // MOV [RSP+4], imm32
	return append(code, 0xc3)                                                   // RET
}

// rel32 computes a signed 32-bit displacement from next to target.
func rel32(next, target uintptr) (int32, error) {
	d := int64(target) - int64(next)
	if d > 0x7fffffff || d < -0x80000000 {
		return 0, errors.New(">32bit rel offset")
	}
	return int32(d), nil
}

// movRegImm64 emits MOV reg, imm64 for the low eight registers.
func movRegImm64(code []byte, reg int, v uint64) []byte {
	code = append(code, 0x48, 0xb8+byte(reg))
	return appendLE64(code, v)
}

// movStore emits MOV [RAX+disp32], reg.
func movStore(code []byte, reg int, disp uint32) []byte {
	return movRM(code, 0x89, reg, disp)
}

// movLoad emits MOV reg, [RAX+disp32].
func movLoad(code []byte, reg int, disp uint32) []byte {
	return movRM(code, 0x8b, reg, disp)
}

func movRM(code []byte, op byte, reg int, disp uint32) []byte {
	rex := byte(0x48)
	if reg >= regR8 {
		rex |= 0x04
	}
	modrm := byte(0x80 | byte(reg&7)<<3) // disp32, base RAX
	return appendLE32(append(code, rex, op, modrm), disp)
}

// movdqu emits MOVDQU between xmmN and [RAX+disp32]; op is 0x7f for the
// store direction and 0x6f for the load.
func movdqu(code []byte, op byte, n int, disp uint32) []byte {
	code = append(code, 0xf3)
	if n >= 8 {
		code = append(code, 0x44)
	}
	modrm := byte(0x80 | byte(n&7)<<3)
	return appendLE32(append(code, 0x0f, op, modrm), disp)
}

func appendLE32(code []byte, v uint32) []byte {
	return append(code, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendLE64(code []byte, v uint64) []byte {
	return append(code,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
