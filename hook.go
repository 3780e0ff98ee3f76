package skyfix

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrDoubleHook means the address already carries a hook.
	ErrDoubleHook = errors.New("double hook")
	// ErrRelativeAddr means an instruction at the site cannot be
	// displaced into the stub.
	ErrRelativeAddr = errors.New("relative address in instruction")
	// ErrUnsupported means mid-function hooks are not available on
	// this platform.
	ErrUnsupported = errors.New("mid-function hooks unsupported on this platform")
)

var (
	// hooks armed so far, keyed by site address. Entries are never
	// removed: an armed hook lives for the rest of the process, so the
	// registry is intentionally immortal state, not a leak.
	hooks map[uintptr]*Hook
	// protects the hooks map
	lock sync.Mutex
)

func init() {
	hooks = make(map[uintptr]*Hook)
}

// Spec names a hook site: a signature to scan for and a byte offset
// applied to the first match.
type Spec struct {
	Signature string
	Offset    uintptr
}

// Hook is an armed interception point. It has no teardown: once armed
// it stays for the remaining lifetime of the process.
type Hook struct {
	Site    uintptr // patched address
	handler Handler
	ctx     uintptr // Context inside the stub block
	stub    uintptr // emitted code
	saved   []byte  // original site bytes, for inspection
}

// Saved returns a copy of the bytes the site patch replaced.
func (h *Hook) Saved() []byte {
	out := make([]byte, len(h.saved))
	copy(out, h.saved)
	return out
}

// InstallMid resolves spec against mod and arms a mid-function hook at
// the match plus offset. Disabled installs return immediately with no
// scan and no side effects. A signature with no match is a normal
// outcome, logged and non-fatal, leaving the feature inactive; only
// malformed signatures and arming failures surface as errors.
func InstallMid(log zerolog.Logger, enabled bool, mod Module, spec Spec, handler Handler) (*Hook, error) {
	if !enabled {
		log.Info().Msg("fix disabled")
		return nil, nil
	}
	log.Info().Msg("fix enabled")
	pat, err := Compile(spec.Signature)
	if err != nil {
		log.Error().Err(err).Msg("bad signature")
		return nil, err
	}
	hit, ok := mod.FindFirst(pat)
	if !ok {
		log.Info().Str("signature", spec.Signature).Msg("signature not found")
		return nil, nil
	}
	rel := hit - mod.Base
	log.Info().
		Str("signature", spec.Signature).
		Str("module", mod.Name).
		Msgf("found at %s+0x%x", mod.Name, rel)

	site := hit + spec.Offset
	h, err := arm(site, handler)
	if err != nil {
		log.Error().Err(err).Msgf("hook at %s+0x%x failed", mod.Name, rel+spec.Offset)
		return nil, err
	}
	log.Info().Msgf("hooked at %s+0x%x", mod.Name, rel+spec.Offset)
	return h, nil
}

// arm registers and installs a hook at site. The registry entry is
// reserved before the site is touched so a concurrent double install
// fails instead of racing.
func arm(site uintptr, handler Handler) (*Hook, error) {
	lock.Lock()
	defer lock.Unlock()
	if _, ok := hooks[site]; ok {
		return nil, ErrDoubleHook
	}
	hooks[site] = nil
	h, err := armMid(site, handler)
	if err != nil {
		delete(hooks, site)
		return nil, err
	}
	hooks[site] = h
	return h, nil
}
