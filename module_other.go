//go:build !windows

package skyfix

// CurrentModule is only implemented for windows hosts, where the engine
// runs inside the game process. Other platforms construct descriptors
// explicitly with NewModule.
func CurrentModule() (Module, error) {
	return Module{}, ErrUnsupported
}
