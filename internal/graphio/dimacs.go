package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads the DIMACS shortest-path challenge text format
// spec.md §6.2 names: `c ...` comment lines, a single `p sp n m` header,
// and `a u v w` arc lines with 1-based vertex ids and a weight that this
// package ignores (the diffusion layer derives its own edge weights from
// the model, not from the file). Arcs are directed as written; the
// caller's BuildOptions.Undirected controls whether Build also
// materializes the reverse direction.
func ParseDIMACS(r io.Reader) (*EdgeList, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1<<24)

	var n uint64
	headerSeen := false
	el := &EdgeList{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "c":
			continue
		case "p":
			if headerSeen {
				return nil, fmt.Errorf("dimacs file has more than one problem line")
			}
			if len(fields) < 4 || fields[1] != "sp" {
				return nil, fmt.Errorf("dimacs problem line %q: want %q p sp n m", line, "p")
			}
			var err error
			n, err = strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("dimacs vertex count %q: %w", fields[2], err)
			}
			m, err := strconv.ParseUint(fields[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("dimacs edge count %q: %w", fields[3], err)
			}
			el.NumVertices = uint32(n)
			el.From = make([]uint32, 0, m)
			el.To = make([]uint32, 0, m)
			headerSeen = true
		case "a":
			if !headerSeen {
				return nil, fmt.Errorf("dimacs arc line %q precedes problem line", line)
			}
			if len(fields) < 3 {
				return nil, fmt.Errorf("dimacs arc line %q: want %q a u v [w]", line, "at least")
			}
			u, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("dimacs arc source %q: %w", fields[1], err)
			}
			v, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("dimacs arc target %q: %w", fields[2], err)
			}
			if u == 0 || v == 0 {
				return nil, fmt.Errorf("dimacs vertex ids are 1-based, got (%d,%d)", u, v)
			}
			el.From = append(el.From, uint32(u-1))
			el.To = append(el.To, uint32(v-1))
		default:
			return nil, fmt.Errorf("dimacs line %q: unrecognized tag %q", line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning dimacs file: %w", err)
	}
	if !headerSeen {
		return nil, fmt.Errorf("dimacs file has no problem line")
	}
	return el, nil
}
