//go:build !windows

package skyfix

// Mid-function hooks need a C-callable entry into the handler, which
// this engine only wires up on windows hosts. Scanning and patching
// stay available everywhere.
func armMid(site uintptr, handler Handler) (*Hook, error) {
	return nil, ErrUnsupported
}
