package fixes

import (
	"github.com/edsky/skyfix"
)

// forceKeepAspect pins the engine's keepAspect flag on. The game
// compares a settings byte against zero and only preserves the camera
// projection block when the jump is taken; clearing the zero flag at
// that compare makes the jump unconditional, so the block survives
// regardless of what config.ini said. The UI stays unstretched and the
// textures fix can rely on the preserved block.
func forceKeepAspect(d Deps) {
	spec := skyfix.Spec{
		Signature: "75 ?? 0F 28 05 ?? ?? ?? ?? 0F 29 05 ?? ?? ?? ??",
	}
	log := d.logger("keepAspect")
	skyfix.InstallMid(log, d.Cfg.MasterEnable, d.Mod, spec, func(ctx *skyfix.Context) {
		ctx.ClearFlags(skyfix.FlagZero)
	})
}
