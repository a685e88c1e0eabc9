package chunkdriver

// Options carries the already-resolved, already-validated parameters the
// driver needs for one read (spec §5's option table). Validation against
// invalid combinations happens one layer up, at construction of the
// public Options type; by the time a chunkdriver.Options reaches Run, it
// is assumed sound.
type Options struct {
	Delim    byte
	DelimSet bool // false means GuessDelimiter chooses it from the first line

	HasQuote bool
	Quote    byte
	Trim     bool
	LZString bool

	Skip      int
	SkipBlank bool
	Comment   []byte

	// ColNames overrides the name sequence entirely when non-nil,
	// bypassing header-line name extraction (but not header-line
	// skipping, governed separately by HasHeader).
	ColNames []string

	NormalizeNames bool
	HasHeader      bool

	// ChunkBits is k such that the chunk size target is 2^k bytes; 0
	// means "single chunk covering the whole source".
	ChunkBits int
}

// ProgressFunc receives driver progress events (spec.md has no such
// component; SPEC_FULL.md's ambient-stack addition mirrors
// Indexer.Run's Verbose-gated fmt.Printf calls). event names used:
// "chunk" (chunkIndex, rowsInChunk, totalRows), "widen" (column, old,
// new), "done" (totalRows, totalChunks).
type ProgressFunc func(event string, args ...any)

func noopProgress(string, ...any) {}
