package skyfix

// Find scans the module's mapped range linearly and returns every
// address whose contents match the pattern, ascending. An empty result
// is a normal outcome, not an error: the signature simply does not
// occur in this binary.
//
// The scan runs once at startup against an image of at most a few tens
// of megabytes, so no skip table is used; each candidate offset checks
// all pattern positions before advancing.
func (m Module) Find(p Pattern) []uintptr {
	if len(p) == 0 {
		return nil
	}
	data := makeSlice(m.Base, int(m.Size))
	var hits []uintptr
	for _, off := range searchAll(data, p) {
		hits = append(hits, m.Base+uintptr(off))
	}
	return hits
}

// FindFirst returns the lowest matching address, or false when the
// pattern does not occur in the module.
func (m Module) FindFirst(p Pattern) (uintptr, bool) {
	if len(p) == 0 {
		return 0, false
	}
	data := makeSlice(m.Base, int(m.Size))
	if off := searchFirst(data, p, 0); off >= 0 {
		return m.Base + uintptr(off), true
	}
	return 0, false
}

// searchAll returns every offset in data where the pattern matches.
func searchAll(data []byte, p Pattern) []int {
	var offs []int
	off := searchFirst(data, p, 0)
	for off >= 0 {
		offs = append(offs, off)
		off = searchFirst(data, p, off+1)
	}
	return offs
}

// searchFirst returns the first matching offset at or after from, or -1.
func searchFirst(data []byte, p Pattern, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(p) <= len(data); i++ {
		ok := true
		for j, m := range p {
			if !m.Any && data[i+j] != m.Value {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}
