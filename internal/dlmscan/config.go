// Package dlmscan implements the header scanner (spec §4.3) and the record
// scanner state machine (spec §4.4): together they turn one line of raw
// bytes into a row of packed tokens.
package dlmscan

// NoQuote is the sentinel Config.Quote value meaning "quoting is disabled".
const NoQuote = 0

// Config carries the frozen, per-parse parameters the scanner needs on
// every call. It is built once by the caller (chunkdriver) and never
// mutated mid-parse.
type Config struct {
	Delim     byte
	HasQuote  bool
	Quote     byte
	Trim      bool
	LZString  bool
	SkipBlank bool
	Comment   []byte // empty disables comment skipping
}
