package fixes

import (
	"github.com/edsky/skyfix"
)

// texturesFix repairs black textures. With keepAspect forced on, the
// renderer loads a projection scalar through XMM0 and draws nothing
// when it carries the stretched-UI value; injecting 1.0 at that load
// keeps the textures rendered while the UI stays unstretched. Works in
// conjunction with forceKeepAspect.
func texturesFix(d Deps) {
	spec := skyfix.Spec{
		Signature: "66 0F 2F C1 76 ?? A1 ?? ?? ?? ?? 66 0F 6E 05 ?? ?? ?? ??",
	}
	log := d.logger("textures")
	enable := d.Cfg.MasterEnable && d.Cfg.Fixes.Textures.Enable
	skyfix.InstallMid(log, enable, d.Mod, spec, func(ctx *skyfix.Context) {
		ctx.Xmm[0][0] = 0x3FF0000000000000 // 1.0 as float64
	})
}
