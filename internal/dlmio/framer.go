// Package dlmio implements the chunk buffer / line framer (spec §4.2): a
// growable byte buffer over an io.Reader that always hands the chunk driver
// a region ending on a safe record boundary.
package dlmio

import (
	"fmt"
	"io"

	"github.com/csvquery/dlmreader/internal/dlmerr"
)

// HardLimit is the maximum chunk buffer size: a field start/length and a
// chunk size must both fit the packed token's 36-bit start field (spec §3).
const HardLimit = 1<<36 - 1

// Framer owns a single reusable byte buffer read from src. It is not safe
// for concurrent use; it is owned exclusively by one chunk driver (spec §5).
type Framer struct {
	src       io.Reader
	buf       []byte
	start     int // first unconsumed byte
	filled    int // first unfilled byte; data lives in buf[start:filled]
	eof       bool
	hardLimit int
}

// New creates a Framer reading from src with an initial buffer of
// initialSize bytes, raised to 64 when smaller (grown as needed up to
// hardLimit bytes).
func New(src io.Reader, initialSize int, hardLimit int) *Framer {
	if initialSize < 64 {
		initialSize = 64
	}
	if hardLimit <= 0 || hardLimit > HardLimit {
		hardLimit = HardLimit
	}
	return &Framer{
		src:       src,
		buf:       make([]byte, initialSize),
		hardLimit: hardLimit,
	}
}

// Buffered returns the currently valid, unconsumed region. Callers must not
// retain slices of it past the next call to Advance or Frame.
func (f *Framer) Buffered() []byte {
	return f.buf[f.start:f.filled]
}

// Advance marks the first n bytes of Buffered() as consumed; they will not
// be returned again.
func (f *Framer) Advance(n int) {
	f.start += n
	if f.start > f.filled {
		f.start = f.filled
	}
}

// AtEOF reports whether the underlying source has been fully drained into
// the buffer (Buffered() holds everything remaining).
func (f *Framer) AtEOF() bool {
	return f.eof
}

// Frame ensures that at least minExtra bytes beyond the current consumed
// position are available (or EOF is reached), then extends the region
// forward to the next safe record boundary: LF, CR+LF, or a lone CR. It
// returns that region and the index (relative to the start of the returned
// slice) of its final terminator byte. If EOF is reached with no trailing
// terminator, an LF is synthesized so downstream scanners see a uniform
// invariant (spec §4.2). Once EOF is reached and every byte has been
// consumed, it returns an empty region and lastNL -1.
func (f *Framer) Frame(minExtra int) (data []byte, lastNL int, err error) {
	for {
		for !f.eof && f.filled-f.start < minExtra {
			if err := f.fillMore(); err != nil {
				return nil, 0, err
			}
		}

		idx, found, needMore, synth := f.findBoundary()
		if needMore {
			if err := f.fillMore(); err != nil {
				return nil, 0, err
			}
			continue
		}
		if found {
			return f.buf[f.start : idx+1], idx - f.start, nil
		}
		if synth {
			if err := f.ensureCapacity(f.filled + 1); err != nil {
				return nil, 0, err
			}
			f.buf[f.filled] = '\n'
			f.filled++
			return f.buf[f.start:f.filled], f.filled - 1 - f.start, nil
		}
		if f.eof {
			return f.buf[f.start:f.start], -1, nil
		}
		if err := f.fillMore(); err != nil {
			return nil, 0, err
		}
	}
}

// findBoundary scans buf[start:filled) backward for the rightmost complete
// terminator. needMore is set when the only candidate is a CR at the very
// end of the filled region, whose CR-vs-CRLF identity cannot yet be
// determined. synth is set when no terminator exists anywhere, EOF has
// been reached and unconsumed bytes remain, signaling the caller to
// synthesize one.
func (f *Framer) findBoundary() (idx int, found, needMore, synth bool) {
	for i := f.filled - 1; i >= f.start; i-- {
		switch f.buf[i] {
		case '\n':
			return i, true, false, false
		case '\r':
			if i+1 < f.filled {
				if f.buf[i+1] == '\n' {
					return i + 1, true, false, false
				}
				return i, true, false, false
			}
			if f.eof {
				return i, true, false, false
			}
			return 0, false, true, false
		}
	}
	return 0, false, false, f.eof && f.filled > f.start
}

// fillMore grows the available write margin, preferring a cheap left-shift
// of already-consumed bytes over reallocation, then reads one batch from
// src. It returns dlmerr.ErrLineTooLong if the hard limit would be exceeded.
func (f *Framer) fillMore() error {
	if f.eof {
		return nil
	}

	if f.start > 0 && f.filled == len(f.buf) {
		n := copy(f.buf, f.buf[f.start:f.filled])
		f.filled = n
		f.start = 0
	}

	if f.filled == len(f.buf) {
		if len(f.buf) >= f.hardLimit {
			return fmt.Errorf("%w: record exceeds %d bytes", dlmerr.ErrLineTooLong, f.hardLimit)
		}
		newSize := len(f.buf) * 2
		if newSize > f.hardLimit {
			newSize = f.hardLimit
		}
		grown := make([]byte, newSize)
		copy(grown, f.buf[:f.filled])
		f.buf = grown
	}

	n, err := f.src.Read(f.buf[f.filled:])
	f.filled += n
	if err != nil {
		if err == io.EOF {
			f.eof = true
			return nil
		}
		return err
	}
	if n == 0 {
		// A conforming io.Reader returning (0, nil) is a no-progress edge
		// case; treat as EOF rather than spinning forever.
		f.eof = true
	}
	return nil
}

// ensureCapacity grows buf so index n is writable, honoring the hard limit.
func (f *Framer) ensureCapacity(n int) error {
	if n <= len(f.buf) {
		return nil
	}
	if n > f.hardLimit {
		return fmt.Errorf("%w: record exceeds %d bytes", dlmerr.ErrLineTooLong, f.hardLimit)
	}
	newSize := len(f.buf) * 2
	if newSize < n {
		newSize = n
	}
	if newSize > f.hardLimit {
		newSize = f.hardLimit
	}
	grown := make([]byte, newSize)
	copy(grown, f.buf[:f.filled])
	f.buf = grown
	return nil
}
