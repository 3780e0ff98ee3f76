package imageinfo

import (
	"debug/pe"
	"errors"
	"io"
)

type peFile struct {
	pe *pe.File
}

func openPE(r io.ReaderAt) (rawFile, error) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}
	return &peFile{f}, nil
}

// mappedSize is the OptionalHeader SizeOfImage field, the loader's own
// declaration of how many bytes the image occupies once mapped.
func (f *peFile) mappedSize() (uint32, error) {
	switch oh := f.pe.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		return oh.SizeOfImage, nil
	case *pe.OptionalHeader64:
		return oh.SizeOfImage, nil
	}
	return 0, errors.New("missing optional header")
}
