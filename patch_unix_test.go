//go:build !windows

package skyfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/sys/unix"
)

// Patch against a real mapped page: bytes land in place and the page
// comes back readable and executable.
func TestPatchWritesThroughProtection(t *testing.T) {
	page, err := unix.Mmap(-1, 0, int(pageSize),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	require.NoError(t, err)
	defer unix.Munmap(page)

	addr := slicePtr(page) + 16
	require.NoError(t, Patch(addr, "DE AD BE EF"))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, page[16:20])

	// surrounding bytes untouched
	assert.Equal(t, byte(0), page[15])
	assert.Equal(t, byte(0), page[20])
}

func TestProtectRestoreRoundTrip(t *testing.T) {
	page, err := unix.Mmap(-1, 0, int(pageSize),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	require.NoError(t, err)
	defer unix.Munmap(page)

	addr := slicePtr(page)
	old, err := protectRW(addr, 8)
	require.NoError(t, err)
	page[0] = 0x42
	require.NoError(t, protectRestore(addr, 8, old))
	assert.Equal(t, byte(0x42), page[0])
}
