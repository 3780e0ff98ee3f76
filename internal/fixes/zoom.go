package fixes

import (
	"unsafe"

	"github.com/edsky/skyfix"
)

// zoomOriginal remembers the camera distance the game computed before
// the first scale. Safe without synchronization: every invocation comes
// from the same hooked call site being re-entered, never from parallel
// callers.
var zoomOriginal float64

// zoomFix scales the camera distance. The hooked instruction reloads
// the distance from the camera struct each frame with the struct
// address in RSI, so the handler rewrites the field in place; the
// struct offset depends on the binary variant.
func zoomFix(d Deps) {
	spec := skyfix.Spec{
		Signature: "F3 0F 10 86 ?? ?? ?? ?? 0F 2F 05 ?? ?? ?? ?? 76 ??",
	}
	log := d.logger("zoom")
	enable := d.Cfg.MasterEnable && d.Cfg.Fixes.Zoom.Enable

	lay, known := layouts[d.Mod.Variant]
	if enable && !known {
		log.Info().Str("variant", d.Mod.Variant.String()).Msg("no layout for variant, fix disabled")
		enable = false
	}

	factor := d.Cfg.Fixes.Zoom.Factor
	if w, h, ok := desktopDimensions(); ok && h > 0 {
		// the game frames for 4:3; widen the zoom with the display
		factor *= (float64(w) / float64(h)) / (4.0 / 3.0)
		log.Info().Uint32("width", w).Uint32("height", h).Float64("factor", factor).Msg("desktop")
	}

	skyfix.InstallMid(log, enable, d.Mod, spec, func(ctx *skyfix.Context) {
		dist := (*float32)(unsafe.Pointer(uintptr(ctx.Rsi) + lay.cameraDistance))
		if zoomOriginal == 0 {
			zoomOriginal = float64(*dist)
		}
		*dist = float32(zoomOriginal * factor)
	})
}
