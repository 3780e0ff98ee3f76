//go:build !windows

package fixes

func desktopDimensions() (uint32, uint32, bool) {
	return 0, 0, false
}
