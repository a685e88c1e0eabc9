// Package preprocess implements the one-shot pre-processing pass run
// before header extraction (spec §4.9): skip N lines, skip blank lines,
// skip comment-prefixed lines, guess the delimiter, and resolve the
// R-style column-count-off-by-one case once the first data row is known.
package preprocess

import (
	"fmt"

	"github.com/csvquery/dlmreader/internal/dlmerr"
	"github.com/csvquery/dlmreader/internal/dlmio"
	"github.com/csvquery/dlmreader/internal/dlmscan"
)

// SkipLines consumes exactly n line terminators from fr, expanding the
// buffer on demand if no newline is yet visible.
func SkipLines(fr *dlmio.Framer, n int) error {
	for i := 0; i < n; i++ {
		data, _, err := fr.Frame(64)
		if err != nil {
			return err
		}
		fr.Advance(dlmscan.LineEnd(data, 0))
	}
	return nil
}

// SkipBlankAndComments repeatedly consumes leading lines that are either
// blank (when skipBlank is set) or comment-prefixed (when comment is
// non-empty), stopping at the first line that is neither.
func SkipBlankAndComments(fr *dlmio.Framer, skipBlank bool, comment []byte) error {
	for {
		data, _, err := fr.Frame(64)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return nil
		}
		lineEnd := dlmscan.LineEnd(data, 0)
		if dlmscan.IsCommentLine(data, 0, comment) {
			fr.Advance(lineEnd)
			continue
		}
		if skipBlank && dlmscan.IsBlankLine(data, 0, true) {
			fr.Advance(lineEnd)
			continue
		}
		return nil
	}
}

// delimiterCandidates is the fixed guess order (spec §4.9): ties resolve
// in this order, comma first when every candidate has zero frequency.
var delimiterCandidates = []byte{',', '\t', '|', ';', ':'}

// GuessDelimiter counts each candidate delimiter's frequency up to the
// first newline in data[pos:] and returns the most frequent, with ties
// broken by delimiterCandidates' order. If every candidate has zero
// frequency, it returns comma.
func GuessDelimiter(data []byte, pos int) byte {
	lineEnd := dlmscan.LineEnd(data, pos)
	contentEnd := lineEnd
	for contentEnd > pos && (data[contentEnd-1] == '\n' || data[contentEnd-1] == '\r') {
		contentEnd--
	}

	counts := make(map[byte]int, len(delimiterCandidates))
	for _, c := range data[pos:contentEnd] {
		for _, cand := range delimiterCandidates {
			if c == cand {
				counts[cand]++
				break
			}
		}
	}

	best := delimiterCandidates[0]
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if counts[cand] > bestCount {
			bestCount = counts[cand]
			best = cand
		}
	}
	return best
}

// ReconcileColumnCount applies spec §4.9's column-count arithmetic: if
// the header named m columns and the first data row has m+1 cells,
// UNNAMED_0 is prepended (the R-style row-name convention). Any other
// mismatch is fatal.
func ReconcileColumnCount(names []string, firstRowCols int) ([]string, error) {
	m := len(names)
	if firstRowCols == m {
		return names, nil
	}
	if firstRowCols == m+1 {
		out := make([]string, 0, m+1)
		out = append(out, "UNNAMED_0")
		out = append(out, names...)
		return out, nil
	}
	return nil, fmt.Errorf("%w: header names %d columns, first data row has %d", dlmerr.ErrInvalidConfig, m, firstRowCols)
}

// FillUnnamed replaces empty header slots with UNNAMED_{i} (0-based
// index into the original header).
func FillUnnamed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if n == "" {
			out[i] = fmt.Sprintf("UNNAMED_%d", i)
		} else {
			out[i] = n
		}
	}
	return out
}

// SyntheticNames returns X1..Xn for the hasheader=false path.
func SyntheticNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("X%d", i+1)
	}
	return out
}
