package skyfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantForExeName(t *testing.T) {
	cases := map[string]Variant{
		"ed6_win_DX9.exe":  VariantFC,
		"ED6_WIN_DX9.EXE":  VariantFC,
		"ed6_win2_DX9.exe": VariantSC,
		"ed6_win3_DX9.exe": VariantThe3rd,
		"notepad.exe":      VariantUnknown,
	}
	for name, want := range cases {
		m := NewModule(0x400000, 0x1000, name)
		assert.Equal(t, want, m.Variant, name)
	}
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "fc", VariantFC.String())
	assert.Equal(t, "unknown", VariantUnknown.String())
	assert.Equal(t, "unknown", Variant(99).String())
}
