package graphio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// binaryMagic identifies a well-formed binary .gr file (spec.md §6.2).
const binaryMagic uint32 = 0x12341234

// binaryHeader is the little-endian fixed-size prefix of a binary .gr
// file. spec.md's prose gives the field list (magic, is_directed, n, m,
// three meta-data sizes) and says the header is 44 bytes; laid out with
// natural u64 alignment those seven fields total 48 bytes, and
// original_source/FastStaticGraph.h's in-memory header type carries no
// magic number or meta-data sizes at all, so there is no byte-exact
// legacy layout to match. This package defines its own consistent 48-byte
// layout and treats "44" as the prose being approximate, rather than
// guessing at padding that would make 44 exact. It keeps two meta-data
// sizes (vertex and arc) and uses the third u64 slot for the body
// checksum; see DESIGN.md.
type binaryHeader struct {
	Magic           uint32
	IsDirected      uint32 // bool, stored as 4 bytes for u64 alignment of the fields that follow
	NumVertices     uint64
	NumArcs         uint64
	VertexMetaBytes uint64
	ArcMetaBytes    uint64
	Checksum        uint64 // xxhash64 of the tagged-entity stream that follows the header
}

const binaryHeaderSize = 4 + 4 + 8 + 8 + 8 + 8 + 8 // 48 bytes

const (
	tagVertexMeta uint8 = 0
	tagArcMeta    uint8 = 1
	tagArc        uint8 = 2
)

// WriteBinary serializes g into the tagged-entity binary .gr format:
// header, then one tagArc record per forward-or-undirected arc (two u32
// vertex ids; no per-arc metadata is emitted since this port carries no
// arc weights in the CSR itself — see spec.md §3). The checksum covers
// the entity stream only, following the xxhash-based integrity check
// pattern used for on-disk artifacts in the example pack (see DESIGN.md).
func WriteBinary(w io.Writer, g *Graph) error {
	body := make([]byte, 0, g.NumArcs()*9)
	for v := uint32(0); v < g.NumVertices(); v++ {
		for _, a := range g.Arcs(v) {
			if !a.Forward() {
				continue
			}
			rec := make([]byte, 9)
			rec[0] = tagArc
			binary.LittleEndian.PutUint32(rec[1:5], v)
			binary.LittleEndian.PutUint32(rec[5:9], a.OtherVertex())
			body = append(body, rec...)
		}
	}

	numForward := uint64(len(body) / 9)
	hdr := binaryHeader{
		Magic:       binaryMagic,
		IsDirected:  1,
		NumVertices: uint64(g.NumVertices()),
		NumArcs:     numForward,
		Checksum:    xxhash.Sum64(body),
	}
	if err := writeBinaryHeader(w, hdr); err != nil {
		return fmt.Errorf("writing binary graph header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing binary graph body: %w", err)
	}
	return nil
}

func writeBinaryHeader(w io.Writer, hdr binaryHeader) error {
	buf := make([]byte, binaryHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], hdr.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], hdr.IsDirected)
	binary.LittleEndian.PutUint64(buf[8:16], hdr.NumVertices)
	binary.LittleEndian.PutUint64(buf[16:24], hdr.NumArcs)
	binary.LittleEndian.PutUint64(buf[24:32], hdr.VertexMetaBytes)
	binary.LittleEndian.PutUint64(buf[32:40], hdr.ArcMetaBytes)
	binary.LittleEndian.PutUint64(buf[40:48], hdr.Checksum)
	_, err := w.Write(buf)
	return err
}

// ReadBinary parses a binary .gr file written by WriteBinary (or any
// producer following the same tagged-entity layout), verifying the magic
// number and checksum before decoding the entity stream.
func ReadBinary(r io.Reader) (*EdgeList, error) {
	hdrBuf := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(r, hdrBuf); err != nil {
		return nil, fmt.Errorf("reading binary graph header: %w", err)
	}
	hdr := binaryHeader{
		Magic:           binary.LittleEndian.Uint32(hdrBuf[0:4]),
		IsDirected:      binary.LittleEndian.Uint32(hdrBuf[4:8]),
		NumVertices:     binary.LittleEndian.Uint64(hdrBuf[8:16]),
		NumArcs:         binary.LittleEndian.Uint64(hdrBuf[16:24]),
		VertexMetaBytes: binary.LittleEndian.Uint64(hdrBuf[24:32]),
		ArcMetaBytes:    binary.LittleEndian.Uint64(hdrBuf[32:40]),
		Checksum:        binary.LittleEndian.Uint64(hdrBuf[40:48]),
	}
	if hdr.Magic != binaryMagic {
		return nil, fmt.Errorf("bad binary graph magic: got 0x%08x, want 0x%08x", hdr.Magic, binaryMagic)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading binary graph body: %w", err)
	}
	if got := xxhash.Sum64(body); got != hdr.Checksum {
		return nil, fmt.Errorf("binary graph checksum mismatch: got %x, want %x (truncated or corrupt file)", got, hdr.Checksum)
	}

	el := &EdgeList{
		NumVertices: uint32(hdr.NumVertices),
		From:        make([]uint32, 0, hdr.NumArcs),
		To:          make([]uint32, 0, hdr.NumArcs),
	}
	pos := 0
	for pos < len(body) {
		if pos >= len(body) {
			return nil, fmt.Errorf("truncated binary graph stream at offset %d", pos)
		}
		tag := body[pos]
		pos++
		switch tag {
		case tagArc:
			if pos+8 > len(body) {
				return nil, fmt.Errorf("truncated arc record at offset %d", pos)
			}
			u := binary.LittleEndian.Uint32(body[pos : pos+4])
			v := binary.LittleEndian.Uint32(body[pos+4 : pos+8])
			pos += 8
			if uint64(hdr.ArcMetaBytes) > 0 {
				pos += int(hdr.ArcMetaBytes)
			}
			el.From = append(el.From, u)
			el.To = append(el.To, v)
		case tagVertexMeta:
			pos += int(hdr.VertexMetaBytes)
		case tagArcMeta:
			pos += int(hdr.ArcMetaBytes)
		default:
			return nil, fmt.Errorf("unrecognized entity tag %d at offset %d", tag, pos-1)
		}
	}
	if uint64(len(el.From)) != hdr.NumArcs {
		return nil, fmt.Errorf("binary graph header promised %d arcs, stream had %d", hdr.NumArcs, len(el.From))
	}
	return el, nil
}
