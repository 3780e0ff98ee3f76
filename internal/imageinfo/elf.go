package imageinfo

import (
	"debug/elf"
	"errors"
	"io"
)

type elfFile struct {
	elf *elf.File
}

func openELF(r io.ReaderAt) (rawFile, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	return &elfFile{f}, nil
}

// mappedSize spans the loadable segments, lowest vaddr to the end of
// the highest.
func (e *elfFile) mappedSize() (uint32, error) {
	var lo, hi uint64
	first := true
	for _, p := range e.elf.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if first || p.Vaddr < lo {
			lo = p.Vaddr
		}
		if end := p.Vaddr + p.Memsz; first || end > hi {
			hi = p.Vaddr + p.Memsz
		}
		first = false
	}
	if first {
		return 0, errors.New("no loadable segments")
	}
	return uint32(hi - lo), nil
}
