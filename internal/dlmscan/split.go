package dlmscan

import (
	"unicode/utf8"

	"github.com/csvquery/dlmreader/internal/dlmerr"
)

// field describes one raw, quote-stripped field within a record's byte
// range. start/end delimit the content only (quote bytes excluded).
type field struct {
	start, end      int
	quoted          bool
	hadEscapedQuote bool
}

// splitResult is the outcome of splitRecord, reused across calls by the
// caller to avoid per-record allocation.
type splitResult struct {
	fields     []field
	termLen    int // 1 for LF or lone CR, 2 for CRLF
	needMore   bool
	fatalQuote bool // unterminated quote and the caller does not allow needMore (header mode)
}

// splitRecord performs the one forward pass over data[pos:] that underlies
// both the header scanner and the record scanner: it walks the bytes,
// honoring quoting (delimiters and newlines inside an open quote are
// literal), and returns the raw field spans plus how the record ended.
//
// allowMultiline controls what happens when an open quote is still active
// at the end of data: if true, needMore is set (the caller should ask for
// a larger frame and retry from pos); if false, an error is returned
// immediately (used by the header scanner, where a field may not span
// multiple lines).
func splitRecord(data []byte, pos int, cfg Config, lineNo int64, allowMultiline bool, out *splitResult) (newPos int, err error) {
	out.fields = out.fields[:0]
	out.termLen = 0
	out.needMore = false
	out.fatalQuote = false

	n := len(data)
	i := pos
	fieldStart := i
	atFieldStart := true
	inQuote := false
	quotedField := false
	hadEscaped := false
	quoteEnd := 0 // index of the closing quote byte, valid once quotedField's quote has closed

	closeField := func(end int) {
		if quotedField {
			end = quoteEnd
		}
		out.fields = append(out.fields, field{start: fieldStart, end: end, quoted: quotedField, hadEscapedQuote: hadEscaped})
		quotedField = false
		hadEscaped = false
	}

	for {
		if i >= n {
			if inQuote {
				if allowMultiline {
					out.needMore = true
					return pos, nil
				}
				out.fatalQuote = true
				return 0, &dlmerr.InvalidByteInFieldError{Line: lineNo, Column: len(out.fields), Byte: cfg.Quote}
			}
			// The framer guarantees every frame ends on a terminator, so
			// falling off the end outside a quote should not happen.
			closeField(i)
			out.termLen = 0
			return i, nil
		}

		b := data[i]

		if inQuote {
			if b == cfg.Quote {
				if i+1 < n && data[i+1] == cfg.Quote {
					hadEscaped = true
					i += 2
					continue
				}
				inQuote = false
				quoteEnd = i
				i++
				continue
			}
			if b >= utf8.RuneSelf {
				_, size := utf8.DecodeRune(data[i:])
				if size <= 1 {
					return 0, &dlmerr.InvalidByteInFieldError{Line: lineNo, Column: len(out.fields), Byte: b}
				}
				i += size
				continue
			}
			i++
			continue
		}

		if cfg.Trim && atFieldStart && b == ' ' {
			fieldStart = i + 1
			i++
			continue
		}

		if cfg.HasQuote && atFieldStart && b == cfg.Quote {
			quotedField = true
			inQuote = true
			atFieldStart = false
			fieldStart = i + 1
			i++
			continue
		}

		atFieldStart = false

		switch {
		case b == cfg.Delim:
			closeField(i)
			fieldStart = i + 1
			atFieldStart = true
			i++
		case b == '\n':
			closeField(i)
			out.termLen = 1
			return i + 1, nil
		case b == '\r':
			if i+1 < n && data[i+1] == '\n' {
				closeField(i)
				out.termLen = 2
				return i + 2, nil
			}
			closeField(i)
			out.termLen = 1
			return i + 1, nil
		case b >= utf8.RuneSelf:
			_, size := utf8.DecodeRune(data[i:])
			if size <= 1 {
				return 0, &dlmerr.InvalidByteInFieldError{Line: lineNo, Column: len(out.fields), Byte: b}
			}
			i += size
		default:
			i++
		}
	}
}

// trimTrailingSpace shrinks [start,end) by dropping trailing 0x20 bytes,
// used for unquoted fields when trimming is enabled (leading spaces are
// already excluded by splitRecord's atFieldStart handling).
func trimTrailingSpace(data []byte, start, end int) int {
	for end > start && data[end-1] == ' ' {
		end--
	}
	return end
}

// findLineEnd returns the index just past the terminator of the line
// starting at `from` (LF, CR+LF, or lone CR), used by comment and blank
// line handling. The framer's invariant guarantees a terminator always
// exists before the end of data.
func findLineEnd(data []byte, from int) int {
	for i := from; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return i + 2
			}
			return i + 1
		}
	}
	return len(data)
}

func lineContentEnd(data []byte, from, lineEnd int) int {
	end := lineEnd
	if end > from && data[end-1] == '\n' {
		end--
	}
	if end > from && data[end-1] == '\r' {
		end--
	}
	return end
}

func isBlank(b []byte, trim bool) bool {
	if len(b) == 0 {
		return true
	}
	if !trim {
		return false
	}
	for _, c := range b {
		if c != ' ' {
			return false
		}
	}
	return true
}

// LineEnd returns the index just past the terminator of the line starting
// at pos, for pre-processing callers that need to skip whole lines
// without tokenizing them.
func LineEnd(data []byte, pos int) int {
	return findLineEnd(data, pos)
}

// IsCommentLine reports whether the line starting at pos begins with
// prefix (pre-processing's one-shot comment-skip, spec §4.9).
func IsCommentLine(data []byte, pos int, prefix []byte) bool {
	return len(prefix) > 0 && hasPrefixAt(data, pos, prefix)
}

// IsBlankLine reports whether the line starting at pos contains only
// trim-space before its terminator.
func IsBlankLine(data []byte, pos int, trim bool) bool {
	lineEnd := findLineEnd(data, pos)
	contentEnd := lineContentEnd(data, pos, lineEnd)
	return isBlank(data[pos:contentEnd], trim)
}

func hasPrefixAt(data []byte, pos int, prefix []byte) bool {
	if pos+len(prefix) > len(data) {
		return false
	}
	for k, c := range prefix {
		if data[pos+k] != c {
			return false
		}
	}
	return true
}
