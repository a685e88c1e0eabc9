// Package dlmsource implements the external source abstraction and
// compression detection spec.md §6 describes: a 6-byte magic-byte peek
// dispatches to the matching decompression collaborator, or passes the
// stream through unchanged.
package dlmsource

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// peekLen is the number of magic bytes inspected (spec.md §6 table).
const peekLen = 6

// Open always wraps r in a 4096-byte bufio.Reader for peeking,
// inspects its first six bytes, and returns a plain, already-decoded
// byte stream: the chunk driver never sees compressed bytes.
func Open(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 4096)
	magic, err := br.Peek(peekLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		// Short input (fewer than 6 bytes total) yields io.EOF and never
		// reaches here. Any other peek error is ignored: whatever was
		// read is treated as the detectable prefix.
		magic, _ = br.Peek(len(magic))
	}

	switch {
	case hasPrefix(magic, xzMagic):
		zr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("dlmsource: xz: %w", err)
		}
		return zr, nil
	case hasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("dlmsource: gzip: %w", err)
		}
		return zr, nil
	case hasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("dlmsource: zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return br, nil
	}
}

var (
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, c := range prefix {
		if b[i] != c {
			return false
		}
	}
	return true
}
