// Package inflate implements the DEFLATE decompression format described in
// RFC 1951. It decodes a complete compressed stream into a caller-supplied
// output buffer; there is no incremental or streaming mode, and a single
// call is strictly sequential (later back-references may read bytes emitted
// earlier in the same call).
package inflate

import "github.com/coreos/gzinflate/capnslog"

var plog = capnslog.NewPackageLogger("github.com/coreos/gzinflate", "inflate")

// Inflate decodes a complete DEFLATE stream from src and writes the
// uncompressed bytes into out. len(out) must be at least the number of
// bytes the stream decodes to; Inflate returns the number of bytes written.
//
// src is borrowed read-only for the call; out is borrowed and written to
// from index 0 up to the returned count. Decoding a single stream is
// strictly sequential: each block may reference bytes written by an
// earlier block in the same call.
func Inflate(src []byte, out []byte) (int, error) {
	r := NewBitReader(src)
	w := &window{buf: out}

	blockIdx := 0
	for {
		bfinal, err := r.ReadLSB(1)
		if err != nil {
			return w.n, err
		}
		btype, err := r.ReadLSB(2)
		if err != nil {
			return w.n, err
		}

		plog.Debugf("block %d: bfinal=%d btype=%d offset=%d", blockIdx, bfinal, btype, w.n)

		switch btype {
		case 0: // stored
			if err := decodeStoredBlock(r, w); err != nil {
				return w.n, err
			}
		case 1: // fixed Huffman
			litlen, dist, err := fixedTables()
			if err != nil {
				return w.n, err
			}
			if err := decodeHuffmanBlock(r, litlen, dist, w); err != nil {
				return w.n, err
			}
		case 2: // dynamic Huffman
			litlen, dist, err := readDynamicTables(r)
			if err != nil {
				return w.n, err
			}
			if err := decodeHuffmanBlock(r, litlen, dist, w); err != nil {
				return w.n, err
			}
		default: // 3 is reserved
			return w.n, CorruptInputError(r.BitOffset())
		}

		blockIdx++
		if bfinal == 1 {
			return w.n, nil
		}
	}
}

// decodeStoredBlock handles BTYPE=0: after aligning to the next byte
// boundary, LEN and its ones'-complement NLEN are read as 16-bit
// little-endian (LSB-first) fields, then LEN raw bytes are copied verbatim.
func decodeStoredBlock(r *BitReader, w *window) error {
	r.AlignByte()

	lenLo, err := r.ReadBytes(4)
	if err != nil {
		return err
	}
	length := int(lenLo[0]) | int(lenLo[1])<<8
	nlength := int(lenLo[2]) | int(lenLo[3])<<8
	if uint16(nlength) != uint16(^length) {
		return CorruptInputError(r.BitOffset())
	}

	data, err := r.ReadBytes(length)
	if err != nil {
		return err
	}
	return w.copyRaw(data)
}
