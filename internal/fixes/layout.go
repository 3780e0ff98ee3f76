package fixes

import (
	"github.com/edsky/skyfix"
)

// layout holds the in-memory struct offsets that moved between
// releases. All three games run the same engine code, so the hook
// signatures match everywhere; only these offsets differ.
type layout struct {
	cameraDistance uintptr // float32 inside the camera struct
}

var layouts = map[skyfix.Variant]layout{
	skyfix.VariantFC:     {cameraDistance: 0x1C8},
	skyfix.VariantSC:     {cameraDistance: 0x1D0},
	skyfix.VariantThe3rd: {cameraDistance: 0x1D0},
}
