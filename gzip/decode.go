package gzip

import (
	"hash/crc32"

	"github.com/coreos/gzinflate/capnslog"
	"github.com/coreos/gzinflate/inflate"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/gzinflate", "gzip")

// Decode parses a single gzip member from data, inflates its DEFLATE
// payload, and verifies the result against the member's footer. The
// returned byte slice is newly allocated and sized exactly to the footer's
// declared ISIZE.
func Decode(data []byte) ([]byte, *Header, error) {
	h, blockOffset, footerOffset, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	plog.Infof("gzip member: name=%q os=%s mtime=%s isize=%d", h.Name, OSName(h.OS), h.ModTime, h.ISIZE)

	out := make([]byte, h.ISIZE)
	n, err := inflate.Inflate(data[blockOffset:footerOffset], out)
	if err != nil {
		return nil, h, err
	}
	if uint32(n) != h.ISIZE {
		plog.Warningf("decoded %d bytes, footer declares ISIZE %d", n, h.ISIZE)
		return nil, h, ErrChecksumMismatch
	}

	sum := crc32.ChecksumIEEE(out[:n])
	if sum != h.CRC32 {
		return nil, h, ErrChecksumMismatch
	}

	return out[:n], h, nil
}
