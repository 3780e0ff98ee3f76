// Package fixes declares the individual game fixes and applies them in
// a fixed order. Each fix resolves its own signature against the game
// image and arms a mid-function hook; a signature that no longer occurs
// in the running binary leaves that one fix inactive and everything
// else untouched.
package fixes

import (
	"github.com/rs/zerolog"

	"github.com/edsky/skyfix"
	"github.com/edsky/skyfix/internal/config"
)

// Deps carries everything a fix needs: the log sink, the parsed
// configuration and the descriptor of the game image. Built once at
// startup and passed down; nothing here is package state.
type Deps struct {
	Log zerolog.Logger
	Cfg *config.Config
	Mod skyfix.Module
}

// Apply installs every fix, strictly sequentially, in declared order.
// There is no retry and no rollback: each fix is a single best-effort
// attempt whose outcome lands in the log.
func Apply(d Deps) {
	forceKeepAspect(d)
	texturesFix(d)
	zoomFix(d)
}

func (d Deps) logger(fix string) zerolog.Logger {
	return d.Log.With().Str("fix", fix).Logger()
}
