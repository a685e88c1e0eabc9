package dlmscan

import "github.com/csvquery/dlmreader/internal/dlmerr"

// ScanHeader tokenizes the header line at pos into raw column name strings
// (spec §4.3). Unlike ScanRecord, a header field is never missing (an
// empty cell becomes an empty-string name) and is never type-inferred;
// quoting may not span multiple lines, since the header is read before
// any chunking has begun: a quoted name containing CR or LF is reported
// as an InvalidByteInFieldError.
//
// It returns the raw names (already quote-stripped and, if cfg.Trim,
// trimmed), the position just past the header line, and an error if the
// line is empty or malformed.
func ScanHeader(data []byte, pos int, lineNo int64, cfg Config) (names []string, newPos int, err error) {
	var split splitResult
	newPos, err = splitRecord(data, pos, cfg, lineNo, false, &split)
	if err != nil {
		return nil, 0, err
	}

	if len(split.fields) == 0 {
		return nil, 0, dlmerr.ErrEmptyHeader
	}

	names = make([]string, len(split.fields))
	for i, f := range split.fields {
		start, end := f.start, f.end
		if f.quoted {
			for k := start; k < end; k++ {
				if data[k] == '\n' || data[k] == '\r' {
					return nil, 0, &dlmerr.InvalidByteInFieldError{Line: lineNo, Column: i, Byte: data[k]}
				}
			}
		}
		if !f.quoted && cfg.Trim {
			end = trimTrailingSpace(data, start, end)
		}
		names[i] = string(data[start:end])
	}

	if len(names) == 1 && names[0] == "" {
		return nil, 0, dlmerr.ErrEmptyHeader
	}

	return names, newPos, nil
}

// CountColumns scans one row purely to establish the table's column
// count (spec §4.9). The chunk driver calls it on the first data row in
// every case: with a header, the count is reconciled against the header
// names; without one, it sizes the synthetic names. The row is genuine
// data the record scanner still tokenizes afterward at the same position.
func CountColumns(data []byte, pos int, lineNo int64, cfg Config) (n int, err error) {
	var split splitResult
	_, err = splitRecord(data, pos, cfg, lineNo, false, &split)
	if err != nil {
		return 0, err
	}
	return len(split.fields), nil
}
