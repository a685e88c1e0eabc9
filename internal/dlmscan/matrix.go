package dlmscan

import "github.com/csvquery/dlmreader/token"

// Matrix is a flat, row-major grid of packed tokens for one chunk: one row
// per record, one column per field. It is reused across chunks by the
// chunk driver to avoid re-allocating on every call.
type Matrix struct {
	Tokens  []token.Token
	NumCols int
	rows    int // rows currently written
}

// NewMatrix allocates a matrix with room for capRows rows of numCols
// columns each.
func NewMatrix(numCols, capRows int) *Matrix {
	return &Matrix{
		Tokens:  make([]token.Token, numCols*capRows),
		NumCols: numCols,
	}
}

// Reset clears the row count (but keeps the backing array) for reuse with
// the next chunk.
func (m *Matrix) Reset() {
	m.rows = 0
}

// Rows reports how many rows have been written since the last Reset.
func (m *Matrix) Rows() int {
	return m.rows
}

// EnsureRow grows the backing array, if needed, so row index r is
// addressable, and bumps the row count if r is a new row.
func (m *Matrix) EnsureRow(r int) {
	needed := (r + 1) * m.NumCols
	if needed > len(m.Tokens) {
		grown := make([]token.Token, needed*2)
		copy(grown, m.Tokens)
		m.Tokens = grown
	}
	if r+1 > m.rows {
		m.rows = r + 1
	}
}

// Set stores the token for (row, col). EnsureRow must have been called for
// row first.
func (m *Matrix) Set(row, col int, t token.Token) {
	m.Tokens[row*m.NumCols+col] = t
}

// At returns the token stored at (row, col).
func (m *Matrix) At(row, col int) token.Token {
	return m.Tokens[row*m.NumCols+col]
}
