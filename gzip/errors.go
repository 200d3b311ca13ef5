package gzip

import "errors"

var (
	// ErrBadMagic is returned when the container's two magic bytes do not
	// match the gzip signature 0x1f 0x8b.
	ErrBadMagic = errors.New("gzip: bad magic")
	// ErrUnsupportedMethod is returned when the compression method byte is
	// anything other than 8 (DEFLATE).
	ErrUnsupportedMethod = errors.New("gzip: unsupported compression method")
	// ErrChecksumMismatch is returned when the decoded output's CRC-32 or
	// length disagrees with the footer's declared values.
	ErrChecksumMismatch = errors.New("gzip: checksum mismatch")
	// ErrHeaderCorrupt is returned when an optional header field (FEXTRA,
	// FNAME, FCOMMENT, FHCRC) is malformed or runs past the input.
	ErrHeaderCorrupt = errors.New("gzip: corrupt header")
	// ErrUnexpectedEOF is returned when the header or footer runs past the
	// end of the input.
	ErrUnexpectedEOF = errors.New("gzip: unexpected EOF")
)
