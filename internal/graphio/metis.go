package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseMETIS reads the METIS text adjacency format spec.md §6.2 describes:
// a first line `n m [fmt]` followed by one line per vertex listing the
// 1-based neighbor ids of that vertex, space-separated. Lines beginning
// with `%` are comments and are skipped. The format is inherently
// undirected — each adjacency line is expected to list v's neighbors
// symmetrically, so ParseMETIS simply records every (v, neighbor) pair it
// sees and lets Build's Undirected option fill in the reverse direction
// flag when the caller asks for it.
//
// Modeled on the teacher's bufio.Scanner-based parsing style
// (pkg/parser/parser.go), generalized from Louvain's plain edge format to
// METIS's fixed-width header-plus-adjacency-lines layout.
func ParseMETIS(r io.Reader) (*EdgeList, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1<<24)

	var n, m uint64
	headerSeen := false
	el := &EdgeList{}

	vertex := uint32(0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if !headerSeen {
			if len(fields) < 2 {
				return nil, fmt.Errorf("metis header line %q: want at least 2 fields", line)
			}
			var err error
			n, err = strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("metis header vertex count %q: %w", fields[0], err)
			}
			m, err = strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("metis header edge count %q: %w", fields[1], err)
			}
			el.NumVertices = uint32(n)
			el.From = make([]uint32, 0, m)
			el.To = make([]uint32, 0, m)
			headerSeen = true
			continue
		}
		if uint64(vertex) >= n {
			return nil, fmt.Errorf("metis file has more than %d adjacency lines", n)
		}
		for _, tok := range fields {
			other, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("metis adjacency token %q on vertex %d: %w", tok, vertex, err)
			}
			if other == 0 {
				return nil, fmt.Errorf("metis neighbor ids are 1-based, got 0 on vertex %d", vertex)
			}
			el.From = append(el.From, vertex)
			el.To = append(el.To, uint32(other-1))
		}
		vertex++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning metis file: %w", err)
	}
	if !headerSeen {
		return nil, fmt.Errorf("metis file has no header line")
	}
	if uint64(vertex) != n {
		return nil, fmt.Errorf("metis header promised %d vertices, found %d adjacency lines", n, vertex)
	}
	return el, nil
}

// WriteMETIS serializes a CSR graph back into METIS text form, used by
// spec.md §8's METIS → binary → METIS round-trip law. Only forward arcs
// are emitted per vertex, since the format is undirected and the
// reciprocal arc is implied.
func WriteMETIS(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	numArcs := 0
	for v := uint32(0); v < g.NumVertices(); v++ {
		for _, a := range g.Arcs(v) {
			if a.Forward() {
				numArcs++
			}
		}
	}
	if _, err := fmt.Fprintf(bw, "%d %d\n", g.NumVertices(), numArcs); err != nil {
		return err
	}
	for v := uint32(0); v < g.NumVertices(); v++ {
		first := true
		for _, a := range g.Arcs(v) {
			if !a.Forward() {
				continue
			}
			if !first {
				if _, err := bw.WriteString(" "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%d", a.OtherVertex()+1); err != nil {
				return err
			}
			first = false
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
