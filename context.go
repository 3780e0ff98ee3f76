package skyfix

// Rflags bits handlers commonly touch.
const (
	FlagCarry    = 0x001
	FlagZero     = 0x040
	FlagSign     = 0x080
	FlagOverflow = 0x800
)

// XmmReg holds one 128-bit vector register as two 64-bit lanes, low
// lane first.
type XmmReg [2]uint64

// Context is the register state of the thread interrupted at a hook
// site. The hook stub fills it in before the handler runs and reloads
// every field afterwards, so any mutation the handler performs is live
// in the original instruction stream. Field order is the stub's storage
// layout; do not reorder.
type Context struct {
	Rax    uint64
	Rcx    uint64
	Rdx    uint64
	Rbx    uint64
	Rsp    uint64
	Rbp    uint64
	Rsi    uint64
	Rdi    uint64
	R8     uint64
	R9     uint64
	R10    uint64
	R11    uint64
	R12    uint64
	R13    uint64
	R14    uint64
	R15    uint64
	Rflags uint64
	// Rip holds the hook site address for the handler's benefit;
	// mutating it does not redirect execution.
	Rip uint64
	Xmm [16]XmmReg
}

// SetFlags sets the given Rflags bits.
func (c *Context) SetFlags(bits uint64) { c.Rflags |= bits }

// ClearFlags clears the given Rflags bits.
func (c *Context) ClearFlags(bits uint64) { c.Rflags &^= bits }

// Flag reports whether all given Rflags bits are set.
func (c *Context) Flag(bits uint64) bool { return c.Rflags&bits == bits }

// Handler is invoked synchronously whenever execution reaches an armed
// hook site, on whichever host thread got there. Handlers must be safe
// to call from threads the engine never created.
type Handler func(*Context)
