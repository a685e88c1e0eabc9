// Package chunkdriver implements the chunk driver (spec §4.8): the loop
// that ties the framer, scanners, summarizer, inference, and value
// parsers together into a complete (columns, names) read, generalized
// from Indexer.Run's phased open/validate/loop/report/close pipeline
// (internal/indexer/indexer.go) from "build secondary indexes" to
// "accumulate typed columns".
package chunkdriver

import (
	"io"

	"github.com/csvquery/dlmreader/internal/column"
	"github.com/csvquery/dlmreader/internal/dlmio"
	"github.com/csvquery/dlmreader/internal/dlmscan"
	"github.com/csvquery/dlmreader/internal/preprocess"
	"github.com/csvquery/dlmreader/internal/simd"
)

// Result is the driver's output: spec §5's (columns, names) pair, plus
// the raw row count for callers that want it without re-deriving it
// from a column's length.
type Result struct {
	Names   []string
	Columns []*column.Column
	Rows    int
}

// Run reads r to completion per spec §4.8 and returns the fully
// materialized table. progress may be nil.
func Run(r io.Reader, opts Options, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = noopProgress
	}

	fr := dlmio.New(r, initialBufSize(opts), dlmio.HardLimit)
	cfg := scanConfig(opts)

	if err := preprocess.SkipLines(fr, opts.Skip); err != nil {
		return nil, err
	}
	if err := preprocess.SkipBlankAndComments(fr, opts.SkipBlank, cfg.Comment); err != nil {
		return nil, err
	}

	if !opts.DelimSet {
		data, _, err := fr.Frame(64)
		if err != nil {
			return nil, err
		}
		cfg.Delim = preprocess.GuessDelimiter(data, 0)
	}

	lineNo := int64(1)
	var headerNames []string
	if opts.HasHeader {
		data, _, err := fr.Frame(64)
		if err != nil {
			return nil, err
		}
		names, newPos, err := dlmscan.ScanHeader(data, 0, lineNo, cfg)
		if err != nil {
			return nil, err
		}
		fr.Advance(newPos)
		headerNames = names
		lineNo++
	}

	data, _, err := fr.Frame(64)
	if err != nil {
		return nil, err
	}
	firstRowCols, err := dlmscan.CountColumns(data, 0, lineNo, cfg)
	if err != nil {
		return nil, err
	}

	var names []string
	if opts.ColNames != nil {
		names = append([]string(nil), opts.ColNames...)
	} else if opts.HasHeader {
		names, err = preprocess.ReconcileColumnCount(headerNames, firstRowCols)
		if err != nil {
			return nil, err
		}
	} else {
		names = preprocess.SyntheticNames(firstRowCols)
	}
	names = preprocess.FillUnnamed(names)
	ncols := len(names)

	states := make([]*colState, ncols)
	for i := range states {
		states[i] = newColState()
	}

	matrix := dlmscan.NewMatrix(ncols, estimateRowCapacity(data))
	scanner := dlmscan.NewScanner()

	chunkTarget := chunkMinExtra(opts)
	totalRows := 0
	chunkIndex := 0

	for {
		if fr.AtEOF() && len(fr.Buffered()) == 0 {
			break
		}

		matrix.Reset()
		rowSlot := 0
		pos := 0
		minExtra := chunkTarget
		var chunkData []byte
		var chunkEnd int

		for {
			var lastNL int
			chunkData, lastNL, err = fr.Frame(minExtra)
			if err != nil {
				return nil, err
			}
			chunkEnd = lastNL + 1

			needMore := false
			for pos < chunkEnd {
				newPos, _, skip, err := scanner.ScanRecord(matrix, rowSlot, chunkData, pos, lineNo, ncols, cfg)
				if err != nil {
					return nil, err
				}
				if !skip && newPos == pos {
					// Scanner.ScanRecord's documented "need more bytes"
					// signal: an open quote ran past chunkEnd. Re-frame
					// with a larger window and retry from the same pos.
					needMore = true
					break
				}
				pos = newPos
				if !skip {
					rowSlot++
				}
				lineNo++
			}
			if !needMore {
				break
			}
			minExtra *= 2
		}

		if rowSlot == 0 {
			fr.Advance(chunkEnd)
			if fr.AtEOF() && len(fr.Buffered()) == 0 {
				break
			}
			continue
		}

		for col := 0; col < ncols; col++ {
			bm := column.Summarize(matrix.Tokens, ncols, rowSlot, col)
			chunkType, chunkOptional := column.Infer(bm)
			st := states[col]
			oldType := st.typ
			if err := st.reconcile(names[col], chunkType, chunkOptional, chunkIndex == 0); err != nil {
				return nil, err
			}
			if st.typ != oldType {
				progress("widen", names[col], oldType.String(), st.typ.String())
			}
			if err := st.appendChunk(matrix.Tokens, ncols, rowSlot, col, chunkData, cfg); err != nil {
				return nil, err
			}
		}

		fr.Advance(chunkEnd)
		totalRows += rowSlot
		chunkIndex++
		progress("chunk", chunkIndex, rowSlot, totalRows)

		if fr.AtEOF() && len(fr.Buffered()) == 0 {
			break
		}
	}

	columns := make([]*column.Column, ncols)
	for i, st := range states {
		columns[i] = st.column()
	}

	columns, err = postProcess(columns)
	if err != nil {
		return nil, err
	}
	if opts.NormalizeNames {
		names = normalizeNames(names)
	}

	progress("done", totalRows, chunkIndex)

	return &Result{Names: names, Columns: columns, Rows: totalRows}, nil
}

func scanConfig(opts Options) dlmscan.Config {
	quote := byte(dlmscan.NoQuote)
	if opts.HasQuote {
		quote = opts.Quote
	}
	return dlmscan.Config{
		Delim:     opts.Delim,
		HasQuote:  opts.HasQuote,
		Quote:     quote,
		Trim:      opts.Trim,
		LZString:  opts.LZString,
		SkipBlank: opts.SkipBlank,
		Comment:   opts.Comment,
	}
}

// initialBufSize sizes the framer's first buffer. Chunkbits, when set,
// takes precedence (the caller asked for a specific chunk size); absent
// that, HasAVX2 is used purely as a hint that a wider memory subsystem
// can amortize a larger first read, the same role the teacher's
// cpu.X86.HasAVX2 dispatch plays for its scan path selection.
func initialBufSize(opts Options) int {
	if opts.ChunkBits > 0 {
		want := 1 << uint(opts.ChunkBits)
		if want < dlmio.HardLimit {
			return want
		}
	}
	base := 64 * 1024
	if simd.HasAVX2() {
		base *= 2
	}
	return base
}

// chunkMinExtra returns the minExtra passed to Frame for each new chunk.
// chunkbits=0 requests the hard limit: Frame stops growing as soon as
// the source reaches EOF regardless of the requested minimum, so this
// reads the entire source as a single chunk without over-allocating
// beyond what the source actually contains.
func chunkMinExtra(opts Options) int {
	if opts.ChunkBits == 0 {
		return dlmio.HardLimit
	}
	return 1 << uint(opts.ChunkBits)
}

// estimateRowCapacity counts newlines in the first framed chunk to seed
// the matrix's row capacity (spec §4.8), falling back to a floor of 5.
func estimateRowCapacity(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	if n < 5 {
		n = 5
	}
	return n
}
