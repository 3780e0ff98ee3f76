package fixes

import (
	"bytes"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsky/skyfix"
	"github.com/edsky/skyfix/internal/config"
	"github.com/edsky/skyfix/internal/logging"
)

func testDeps(t *testing.T, out *bytes.Buffer, cfg *config.Config, image []byte) Deps {
	t.Helper()
	require.NotEmpty(t, image)
	mod := skyfix.NewModule(uintptr(unsafe.Pointer(&image[0])), uint32(len(image)), "ed6_win_DX9.exe")
	return Deps{Log: logging.New(out), Cfg: cfg, Mod: mod}
}

func TestApplyMasterDisabled(t *testing.T) {
	var out bytes.Buffer
	image := make([]byte, 64)
	d := testDeps(t, &out, &config.Config{
		MasterEnable: false,
		Fixes: config.Fixes{
			Textures: config.Toggle{Enable: true},
			Zoom:     config.Zoom{Enable: true, Factor: 1.5},
		},
	}, image)

	Apply(d)

	// every fix is gated on the master switch
	assert.Equal(t, 3, strings.Count(out.String(), "fix disabled"))
	assert.NotContains(t, out.String(), "fix enabled")
	assert.Equal(t, make([]byte, 64), image)
}

func TestApplyEnabledWithoutMatches(t *testing.T) {
	var out bytes.Buffer
	image := make([]byte, 64)
	d := testDeps(t, &out, &config.Config{
		MasterEnable: true,
		Fixes: config.Fixes{
			Textures: config.Toggle{Enable: true},
			Zoom:     config.Zoom{Enable: true, Factor: 1.5},
		},
	}, image)

	Apply(d)

	// none of the signatures occur in a zeroed image: logged, non-fatal
	assert.GreaterOrEqual(t, strings.Count(out.String(), "signature not found"), 2)
	assert.Equal(t, make([]byte, 64), image)
}

func TestApplyPerFixGates(t *testing.T) {
	var out bytes.Buffer
	image := make([]byte, 64)
	d := testDeps(t, &out, &config.Config{
		MasterEnable: true,
		Fixes:        config.Fixes{},
	}, image)

	Apply(d)

	// aspect follows the master switch alone; textures and zoom have
	// their own gates and stay off
	assert.Equal(t, 2, strings.Count(out.String(), "fix disabled"))
	assert.Equal(t, 1, strings.Count(out.String(), "fix enabled"))
}

func TestLayoutTableCoversKnownVariants(t *testing.T) {
	for _, v := range []skyfix.Variant{skyfix.VariantFC, skyfix.VariantSC, skyfix.VariantThe3rd} {
		lay, ok := layouts[v]
		assert.True(t, ok, v.String())
		assert.NotZero(t, lay.cameraDistance, v.String())
	}
	_, ok := layouts[skyfix.VariantUnknown]
	assert.False(t, ok)
}
