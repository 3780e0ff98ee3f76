package skyfix

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufModule(t *testing.T, data []byte) Module {
	t.Helper()
	require.NotEmpty(t, data)
	return NewModule(uintptr(unsafe.Pointer(&data[0])), uint32(len(data)), "test.exe")
}

func mustCompile(t *testing.T, sig string) Pattern {
	t.Helper()
	p, err := Compile(sig)
	require.NoError(t, err)
	return p
}

func TestFindExact(t *testing.T) {
	buf := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	m := bufModule(t, buf)
	hits := m.Find(mustCompile(t, "22 33 44"))
	require.Len(t, hits, 1)
	assert.Equal(t, m.Base+2, hits[0])
}

func TestFindWildcardPositionsMatchAnyByte(t *testing.T) {
	buf := []byte{0xAA, 0x75, 0x99, 0xF2, 0x0F, 0xBB}
	m := bufModule(t, buf)
	// 0x99 sits at the wildcard position
	hits := m.Find(mustCompile(t, "75 ?? F2 0F"))
	require.Len(t, hits, 1)
	assert.Equal(t, m.Base+1, hits[0])
}

func TestFindAbsentPatternIsEmptyNotError(t *testing.T) {
	buf := make([]byte, 64)
	m := bufModule(t, buf)
	assert.Empty(t, m.Find(mustCompile(t, "DE AD BE EF")))
	_, ok := m.FindFirst(mustCompile(t, "DE AD BE EF"))
	assert.False(t, ok)
}

func TestFindMultipleAscendingAndFirst(t *testing.T) {
	buf := make([]byte, 64)
	pat := []byte{0xDE, 0xAD, 0xBE}
	copy(buf[5:], pat)
	copy(buf[40:], pat)
	m := bufModule(t, buf)

	p := mustCompile(t, "DE AD BE")
	hits := m.Find(p)
	require.Len(t, hits, 2)
	assert.Equal(t, m.Base+5, hits[0])
	assert.Equal(t, m.Base+40, hits[1])

	first, ok := m.FindFirst(p)
	require.True(t, ok)
	assert.Equal(t, m.Base+5, first)
}

func TestFindOverlappingMatches(t *testing.T) {
	buf := []byte{0xAA, 0xAA, 0xAA, 0xAA}
	m := bufModule(t, buf)
	hits := m.Find(mustCompile(t, "AA AA"))
	assert.Len(t, hits, 3)
}

func TestFindPatternLongerThanModule(t *testing.T) {
	buf := []byte{0x01, 0x02}
	m := bufModule(t, buf)
	assert.Empty(t, m.Find(mustCompile(t, "01 02 03 04")))
}

// The scenario from the aspect fix: pattern anchored at the start of
// the buffer, handler clears the zero flag.
func TestScanAndHandlerEndToEnd(t *testing.T) {
	buf := []byte{
		0x75, 0x10, 0xF2, 0x0F, 0x5E, 0xC8, 0xF2, 0x0F,
		0x11, 0x0D, 0x01, 0x02, 0x03, 0x04,
	}
	m := bufModule(t, buf)
	hit, ok := m.FindFirst(mustCompile(t, "75 ?? F2 0F 5E C8 F2 0F 11 0D ?? ?? ?? ??"))
	require.True(t, ok)
	assert.Equal(t, m.Base, hit)

	var handler Handler = func(ctx *Context) {
		ctx.ClearFlags(FlagZero)
	}
	ctx := &Context{Rflags: FlagZero | FlagCarry}
	handler(ctx)
	assert.False(t, ctx.Flag(FlagZero))
	assert.True(t, ctx.Flag(FlagCarry))
}
