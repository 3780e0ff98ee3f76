package skyfix

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"

	"github.com/edsky/skyfix/internal/imageinfo"
)

// CurrentModule describes the process's own executable image. The scan
// length comes from the image header, the variant from the executable
// file name.
func CurrentModule() (Module, error) {
	h, err := windows.GetModuleHandle(nil)
	if err != nil {
		return Module{}, err
	}
	exePath, err := os.Executable()
	if err != nil {
		return Module{}, err
	}
	size, err := imageinfo.MappedSize(exePath)
	if err != nil {
		return Module{}, err
	}
	return NewModule(uintptr(h), size, filepath.Base(exePath)), nil
}
