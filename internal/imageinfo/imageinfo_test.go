package imageinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedSizeOfOwnBinary(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	size, err := MappedSize(exe)
	require.NoError(t, err)
	assert.Greater(t, size, uint32(0))
}

func TestMappedSizeUnrecognized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := MappedSize(path)
	assert.Error(t, err)
}

func TestMappedSizeMissingFile(t *testing.T) {
	_, err := MappedSize(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
