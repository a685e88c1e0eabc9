package column

import "github.com/csvquery/dlmreader/token"

// Bitmap is the 6-bit per-column summary spec §3 describes: the lower 3
// bits are the AND of all non-missing token kinds folded into it (is
// every non-missing value still integer-shaped? still float-shaped? still
// bool-shaped?); QuotedEver and the two missingness bits accumulate
// monotonically over the same tokens. Summarize starts a fresh bitmap
// for each call, so the chunk driver gets one bitmap per chunk and
// carries type state across chunks by widening, not through the bitmap.
type Bitmap struct {
	IntegerOK  bool
	FloatOK    bool
	BoolOK     bool
	QuotedEver bool
	AllMissing bool
	AnyMissing bool
}

// NewBitmap returns the identity value for folding: no non-missing value
// has been seen yet, so every shape is still "ok" (the AND hasn't been
// narrowed by anything), and the column is vacuously all-missing until
// the first real value arrives.
func NewBitmap() Bitmap {
	return Bitmap{IntegerOK: true, FloatOK: true, BoolOK: true, AllMissing: true}
}

// Fold applies one token's kind to the running bitmap.
func (b *Bitmap) Fold(k token.Kind) {
	if k == token.KindMissing {
		b.AnyMissing = true
		return
	}
	b.AllMissing = false
	b.IntegerOK = b.IntegerOK && k&token.KindInteger != 0
	b.FloatOK = b.FloatOK && k&token.KindFloat != 0
	b.BoolOK = b.BoolOK && k&token.KindBool != 0
	b.QuotedEver = b.QuotedEver || k&token.KindQuoted != 0
}

// Summarize folds the first rows tokens of column col of tokens (a
// row-major matrix numCols wide) into a fresh bitmap.
func Summarize(tokens []token.Token, numCols, rows, col int) Bitmap {
	bm := NewBitmap()
	for r := 0; r < rows; r++ {
		bm.Fold(tokens[r*numCols+col].Kind())
	}
	return bm
}
