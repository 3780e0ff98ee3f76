package skyfix

import "strings"

// Variant distinguishes host binaries that share hook logic but differ
// in internal data layout. Handlers branch on it through lookup tables
// rather than on raw executable names.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantFC
	VariantSC
	VariantThe3rd
)

var variantNames = map[Variant]string{
	VariantUnknown: "unknown",
	VariantFC:      "fc",
	VariantSC:      "sc",
	VariantThe3rd:  "the3rd",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "unknown"
}

// variantByExe maps known executable file names to their variant. The
// three releases run the same engine with different struct layouts.
var variantByExe = map[string]Variant{
	"ed6_win_dx9.exe":  VariantFC,
	"ed6_win2_dx9.exe": VariantSC,
	"ed6_win3_dx9.exe": VariantThe3rd,
}

// Module describes a loaded executable image: its base address, the
// mapped size declared by the image's own header, a human-readable name
// and the binary variant derived from that name.
type Module struct {
	Base    uintptr
	Size    uint32
	Name    string
	Variant Variant
}

// NewModule builds a descriptor from an explicit base and size. The
// process's own image should instead come from CurrentModule, which
// reads the size out of the image header rather than trusting a caller.
func NewModule(base uintptr, size uint32, name string) Module {
	return Module{Base: base, Size: size, Name: name, Variant: variantForName(name)}
}

func variantForName(name string) Variant {
	return variantByExe[strings.ToLower(name)]
}
