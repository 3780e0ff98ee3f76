// Package imageinfo reads the mapped-size declaration out of an
// executable image's own headers. The scanner derives its range from
// this instead of trusting a caller-supplied length.
package imageinfo

import (
	"fmt"
	"io"
	"os"
)

type rawFile interface {
	mappedSize() (uint32, error)
}

var formats = []func(io.ReaderAt) (rawFile, error){
	openPE,
	openELF,
}

// MappedSize returns the total in-memory image size the file at path
// declares in its header.
func MappedSize(path string) (uint32, error) {
	r, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	for _, try := range formats {
		if raw, err := try(r); err == nil {
			return raw.mappedSize()
		}
	}
	return 0, fmt.Errorf("open %s: unrecognized image format", path)
}
