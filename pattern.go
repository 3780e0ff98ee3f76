// Package skyfix locates byte signatures inside the executable image of
// the running process and alters behavior at the matched locations,
// either by overwriting bytes in place or by installing a mid-function
// hook that exposes the interrupted thread's register state to a
// handler before the original instructions resume.
package skyfix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyPattern means the signature contained no tokens.
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrWildcard means a wildcard token appeared where a literal byte is required.
	ErrWildcard = errors.New("wildcard in literal pattern")
)

// ByteMatcher matches a single byte position: either one exact value or
// any byte at all. Immutable once compiled.
type ByteMatcher struct {
	Value byte
	Any   bool
}

// Pattern is an ordered sequence of byte matchers compiled from an
// IDA-style signature string.
type Pattern []ByteMatcher

// Compile parses a signature string into a Pattern. Tokens are separated
// by whitespace; each token is either two hex digits (case-insensitive)
// or "??" to match any byte. Signatures are static, hand-verified inputs,
// so a malformed token aborts compilation of the whole pattern.
func Compile(sig string) (Pattern, error) {
	fields := strings.Fields(sig)
	if len(fields) == 0 {
		return nil, ErrEmptyPattern
	}
	p := make(Pattern, 0, len(fields))
	for _, tok := range fields {
		if tok == "??" {
			p = append(p, ByteMatcher{Any: true})
			continue
		}
		if len(tok) != 2 {
			return nil, fmt.Errorf("bad token %q in %q", tok, sig)
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad token %q in %q: %w", tok, sig, err)
		}
		p = append(p, ByteMatcher{Value: byte(v)})
	}
	return p, nil
}

// CompileLiteral is Compile restricted to exact bytes. It returns the
// raw byte values and rejects wildcards; used for patching, where every
// written byte must be known.
func CompileLiteral(sig string) ([]byte, error) {
	p, err := Compile(sig)
	if err != nil {
		return nil, err
	}
	b := make([]byte, len(p))
	for i, m := range p {
		if m.Any {
			return nil, fmt.Errorf("%w: %q", ErrWildcard, sig)
		}
		b[i] = m.Value
	}
	return b, nil
}

// FormatBytes renders bytes as a canonical signature string: uppercase,
// two hex digits per byte, single spaces. Compile(FormatBytes(b))
// reproduces b exactly.
func FormatBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// String renders the pattern back in signature form, wildcards as "??".
func (p Pattern) String() string {
	var sb strings.Builder
	for i, m := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if m.Any {
			sb.WriteString("??")
		} else {
			fmt.Fprintf(&sb, "%02X", m.Value)
		}
	}
	return sb.String()
}
