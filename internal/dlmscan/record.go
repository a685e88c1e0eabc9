package dlmscan

import (
	"fmt"

	"github.com/csvquery/dlmreader/internal/dlmerr"
	"github.com/csvquery/dlmreader/token"
)

// Scanner holds the scratch state reused across ScanRecord calls so a
// chunk's worth of records can be scanned without per-record allocation.
type Scanner struct {
	split splitResult
}

// NewScanner returns a Scanner ready for repeated use.
func NewScanner() *Scanner {
	return &Scanner{}
}

// naLiteral is the case-sensitive missing-value marker (spec §4.4 / glossary).
const naLiteral = "NA"

// ScanRecord tokenizes one record starting at pos into row rowSlot of m.
//
// ncols is the table's established column count; pass 0 to disable the
// column-count policy entirely. The chunk driver always passes the
// established count; its first-row probe uses CountColumns instead.
//
// Return contract (spec §4.4): (newPos, colsScanned, skip, err). A result
// of (pos, 0, false, nil) with no error means the record needs more bytes
// than the current frame holds (an open quote ran off the end); the
// caller must re-frame with a larger minExtra and call again from the
// same pos.
func (s *Scanner) ScanRecord(m *Matrix, rowSlot int, data []byte, pos int, lineNo int64, ncols int, cfg Config) (newPos int, colsScanned int, skip bool, err error) {
	if len(cfg.Comment) > 0 && hasPrefixAt(data, pos, cfg.Comment) {
		return findLineEnd(data, pos), 0, true, nil
	}

	lineEnd := findLineEnd(data, pos)
	if cfg.SkipBlank {
		contentEnd := lineContentEnd(data, pos, lineEnd)
		if isBlank(data[pos:contentEnd], cfg.Trim) {
			return lineEnd, 0, true, nil
		}
	}

	newPos, err = splitRecord(data, pos, cfg, lineNo, true, &s.split)
	if err != nil {
		return 0, 0, false, err
	}
	if s.split.needMore {
		return pos, 0, false, nil
	}

	total := len(s.split.fields)
	// A record ending exactly one field short of ncols legally emits a
	// trailing MISSING for the absent last cell (spec §4.4); any other
	// shortfall, or any overflow, is an UnexpectedColumnCountError.
	oneShort := ncols > 0 && total == ncols-1
	if ncols > 0 && !oneShort && total != ncols {
		return 0, 0, false, &dlmerr.UnexpectedColumnCountError{Line: lineNo, Expected: ncols, Got: total}
	}

	m.EnsureRow(rowSlot)
	for col, f := range s.split.fields {
		kind, start, length := classifyField(data, f, cfg)
		if length > token.MaxLength {
			return 0, 0, false, fmt.Errorf("%w: line %d, column %d", dlmerr.ErrFieldTooLong, lineNo, col)
		}
		m.Set(rowSlot, col, token.Pack(kind, start+1, length))
	}
	colsScanned = total
	if oneShort {
		// The field never existed in source text, so it has no location
		// (0 is the "no location" sentinel token.go documents for Missing).
		m.Set(rowSlot, ncols-1, token.PackMissing(0, 0))
		colsScanned = ncols
	}

	return newPos, colsScanned, false, nil
}

// classifyField determines a field's token kind and packed (start,length),
// applying trim, NA-detection, and (for unquoted fields) shape inference.
// Quoted fields are never shape-inferred: bits 0-2 of their kind are
// always clear, and bit 3 (KindQuoted) records that the field was quoted
// so the value parser knows to run the quote-unescape path.
func classifyField(data []byte, f field, cfg Config) (kind token.Kind, start, length int) {
	start, end := f.start, f.end
	if f.quoted {
		if end == start {
			return token.KindMissing, start, 0
		}
		content := data[start:end]
		if matchExact(content, naLiteral) {
			return token.KindMissing, start, end - start
		}
		return token.KindQuoted, start, end - start
	}

	if cfg.Trim {
		end = trimTrailingSpace(data, start, end)
	}
	if end == start {
		return token.KindMissing, start, 0
	}
	content := data[start:end]
	if matchExact(content, naLiteral) {
		return token.KindMissing, start, end - start
	}
	return classifyShape(content, cfg.LZString), start, end - start
}
