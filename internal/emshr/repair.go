package emshr

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrRepairLength is returned if a repair changed the length of a line.
var ErrRepairLength = errors.New("repair changed line length")

// gremlin is a mis-encoded byte sequence known to appear in EMSHR Lite files
// and the ASCII byte that replaces it. The bytes removed are appended to the
// end of the line as spaces so column offsets stay aligned.
type gremlin struct {
	pattern     []byte
	replacement byte
}

// gremlins are matched in order at each position of a line.
var gremlins = []gremlin{
	// Double-encoded e-acute (Quebec place names).
	{pattern: []byte{0xc3, 0x83, 0xc2, 0xa9}, replacement: 'E'},
	// Double-encoded n-tilde (Espanola).
	{pattern: []byte{0xc3, 0x83, 0xc2, 0xb1}, replacement: 'N'},
	// G-dot (Barrow).
	{pattern: []byte{0xc4, 0xa0}, replacement: 'G'},
}

// RepairLine replaces every known gremlin in line with its ASCII letter and
// pads the end with spaces so the result has the same length as line. It
// reports how many gremlins were replaced. line is not modified.
func RepairLine(line []byte) ([]byte, int, error) {
	if !hasGremlin(line) {
		return line, 0, nil
	}

	out := make([]byte, 0, len(line))
	padding := 0
	replaced := 0
	for i := 0; i < len(line); {
		g, ok := gremlinAt(line, i)
		if !ok {
			out = append(out, line[i])
			i++
			continue
		}
		out = append(out, g.replacement)
		padding += len(g.pattern) - 1
		replaced++
		i += len(g.pattern)
	}
	out = append(out, bytes.Repeat([]byte{' '}, padding)...)

	if len(out) != len(line) {
		return nil, replaced, fmt.Errorf("%w: got %d bytes, want %d", ErrRepairLength, len(out), len(line))
	}
	return out, replaced, nil
}

func hasGremlin(line []byte) bool {
	for _, g := range gremlins {
		if bytes.Contains(line, g.pattern) {
			return true
		}
	}
	return false
}

func gremlinAt(line []byte, i int) (gremlin, bool) {
	for _, g := range gremlins {
		if bytes.HasPrefix(line[i:], g.pattern) {
			return g, true
		}
	}
	return gremlin{}, false
}
