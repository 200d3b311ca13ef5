package gzip

import (
	"hash/crc32"
	"time"
)

// Parse reads a single gzip member's header and footer out of data and
// returns the populated Header, the byte offset of the first DEFLATE block,
// and the byte offset of the 8-byte footer. data is not modified and the
// DEFLATE payload between the two offsets is left for the caller (Decode)
// to hand to inflate.Inflate. The footer is always taken from the last 8
// bytes of data, so data must hold exactly one member; concatenated members
// are not supported.
func Parse(data []byte) (*Header, int, int, error) {
	if len(data) < 18 { // 10-byte header + empty deflate block + 8-byte footer, minimum
		return nil, 0, 0, ErrUnexpectedEOF
	}
	if data[0] != magic1 || data[1] != magic2 {
		return nil, 0, 0, ErrBadMagic
	}
	if data[2] != methodDeflate {
		return nil, 0, 0, ErrUnsupportedMethod
	}

	h := &Header{
		FLG:     data[3],
		ModTime: time.Unix(int64(le32(data[4:8])), 0),
		XFL:     data[8],
		OS:      data[9],
	}

	digest := crc32.NewIEEE()
	digest.Write(data[0:10])
	pos := 10

	if h.FLG&flagExtra != 0 {
		if pos+2 > len(data) {
			return nil, 0, 0, ErrHeaderCorrupt
		}
		n := int(le16(data[pos : pos+2]))
		digest.Write(data[pos : pos+2])
		pos += 2
		if pos+n > len(data) {
			return nil, 0, 0, ErrHeaderCorrupt
		}
		h.Extra = append([]byte(nil), data[pos:pos+n]...)
		digest.Write(data[pos : pos+n])
		pos += n
	}

	if h.FLG&flagName != 0 {
		s, next, err := readCString(data, pos)
		if err != nil {
			return nil, 0, 0, err
		}
		digest.Write(data[pos:next])
		h.Name = s
		pos = next
	}

	if h.FLG&flagComment != 0 {
		s, next, err := readCString(data, pos)
		if err != nil {
			return nil, 0, 0, err
		}
		digest.Write(data[pos:next])
		h.Comment = s
		pos = next
	}

	if h.FLG&flagHdrCrc != 0 {
		if pos+2 > len(data) {
			return nil, 0, 0, ErrHeaderCorrupt
		}
		want := le16(data[pos : pos+2])
		if want != uint32(digest.Sum32()&0xFFFF) {
			return nil, 0, 0, ErrHeaderCorrupt
		}
		pos += 2
	}

	footerOffset := len(data) - 8
	if footerOffset < pos {
		return nil, 0, 0, ErrUnexpectedEOF
	}
	h.BlockOffset = pos
	h.FooterOffset = footerOffset
	h.CRC32 = le32(data[footerOffset : footerOffset+4])
	h.ISIZE = le32(data[footerOffset+4 : footerOffset+8])

	return h, pos, footerOffset, nil
}

// readCString reads a NUL-terminated ISO 8859-1 (Latin-1) string starting at
// offset in data, per RFC 1952's encoding for FNAME and FCOMMENT. It returns
// the decoded string and the offset just past the terminating NUL.
func readCString(data []byte, offset int) (string, int, error) {
	for i := offset; i < len(data); i++ {
		if data[i] == 0 {
			runes := make([]rune, i-offset)
			for j, b := range data[offset:i] {
				runes[j] = rune(b)
			}
			return string(runes), i + 1, nil
		}
	}
	return "", 0, ErrHeaderCorrupt
}

func le16(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8
}

func le32(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}
