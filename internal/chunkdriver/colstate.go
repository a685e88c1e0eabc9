package chunkdriver

import (
	"strconv"

	"github.com/csvquery/dlmreader/internal/column"
	"github.com/csvquery/dlmreader/internal/dlmscan"
	"github.com/csvquery/dlmreader/internal/valueparse"
	"github.com/csvquery/dlmreader/token"
)

// colState is one column's running accumulator across chunks: the
// concrete representation implied by typ, plus a null bitset tracked for
// every row seen so far regardless of whether the column ever turns out
// optional (cheap bookkeeping that makes a later type change a pure
// append, never a backfill scan over raw tokens).
type colState struct {
	typ      column.Type
	optional bool
	rows     int

	ints    []int64
	floats  []float64
	bools   []bool
	strings []string
	null    []bool

	cache *valueparse.StringCache
}

func newColState() *colState {
	return &colState{typ: column.MissingOnly, cache: valueparse.NewStringCache()}
}

// reconcile folds this chunk's inferred (type, optional) into the
// running state, converting any already-accumulated values if the
// resulting type differs from the state's current type (spec §4.6).
func (c *colState) reconcile(name string, chunkType column.Type, chunkOptional bool, first bool) error {
	var target column.Type
	var optional bool
	if first {
		target, optional = chunkType, chunkOptional
	} else {
		var err error
		target, optional, err = column.Widen(name, c.typ, c.optional, chunkType, chunkOptional)
		if err != nil {
			return err
		}
	}

	if target != c.typ {
		switch {
		case c.typ == column.MissingOnly:
			c.backfillFromMissingOnly(target)
		case target == column.String:
			c.backfillToString()
		case c.typ == column.Integer && target == column.Float:
			c.intsToFloats()
		}
		c.typ = target
	}
	c.optional = c.optional || optional
	return nil
}

// backfillFromMissingOnly allocates target's concrete slice with c.rows
// zero values: every row committed so far was missing, so there is
// nothing to convert, only to size.
func (c *colState) backfillFromMissingOnly(target column.Type) {
	switch target {
	case column.Integer:
		c.ints = make([]int64, c.rows)
	case column.Float:
		c.floats = make([]float64, c.rows)
	case column.Bool:
		c.bools = make([]bool, c.rows)
	case column.String:
		c.strings = make([]string, c.rows)
	}
}

// intsToFloats widens an accumulated integer column to float (spec
// §4.6 rule 1): prior values up to 2^53 in magnitude convert exactly;
// larger ones are rounded to the nearest float64, unguarded (the same
// tradeoff strconv/float64 always carries).
func (c *colState) intsToFloats() {
	floats := make([]float64, len(c.ints))
	for i, v := range c.ints {
		floats[i] = float64(v)
	}
	c.ints = nil
	c.floats = floats
}

// backfillToString renders every already-accumulated value back to the
// text spec §4.6 rule 2 requires once a column is forced to STRING by a
// later chunk. Null rows keep the empty string; their nullness is
// already recorded in c.null.
func (c *colState) backfillToString() {
	strs := make([]string, c.rows)
	switch c.typ {
	case column.Integer:
		for i, v := range c.ints {
			if !c.null[i] {
				strs[i] = strconv.FormatInt(v, 10)
			}
		}
	case column.Float:
		for i, v := range c.floats {
			if !c.null[i] {
				strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
	case column.Bool:
		for i, v := range c.bools {
			if !c.null[i] {
				strs[i] = strconv.FormatBool(v)
			}
		}
	}
	c.ints, c.floats, c.bools = nil, nil, nil
	c.strings = strs
}

// appendChunk parses rows rows of column col out of tokens (a flat
// rows*ncols matrix) using cfg and c.typ, the type already reconciled
// for this chunk by reconcile.
func (c *colState) appendChunk(tokens []token.Token, ncols, rows, col int, data []byte, cfg dlmscan.Config) error {
	for r := 0; r < rows; r++ {
		tok := tokens[r*ncols+col]
		missing := tok.IsMissing()
		c.null = append(c.null, missing)

		switch c.typ {
		case column.Integer:
			if missing {
				c.ints = append(c.ints, 0)
				continue
			}
			v, err := valueparse.ParseInt(tok.Bytes(data))
			if err != nil {
				return err
			}
			c.ints = append(c.ints, v)
		case column.Float:
			if missing {
				c.floats = append(c.floats, 0)
				continue
			}
			v, err := valueparse.ParseFloat(tok.Bytes(data))
			if err != nil {
				return err
			}
			c.floats = append(c.floats, v)
		case column.Bool:
			if missing {
				c.bools = append(c.bools, false)
				continue
			}
			c.bools = append(c.bools, valueparse.ParseBool(tok.Bytes(data)))
		case column.String:
			if missing {
				c.strings = append(c.strings, "")
				continue
			}
			raw := tok.Bytes(data)
			if tok.Kind()&token.KindQuoted != 0 {
				c.strings = append(c.strings, valueparse.QuotedString(raw, cfg.Quote))
			} else {
				c.strings = append(c.strings, c.cache.Intern(raw))
			}
		case column.MissingOnly:
			// every row seen so far, including this one, is missing;
			// there is nothing concrete to store yet.
		}
	}
	c.rows += rows
	return nil
}

// column materializes the final *column.Column for this state.
func (c *colState) column() *column.Column {
	out := &column.Column{Type: c.typ, Optional: c.optional}
	switch c.typ {
	case column.Integer:
		out.Ints = c.ints
	case column.Float:
		out.Floats = c.floats
	case column.Bool:
		out.Bools = c.bools
	case column.String:
		out.Strings = c.strings
	case column.MissingOnly:
		// Len() keys off Strings for any type with no dedicated slice;
		// every row is missing, so an all-empty slice of the right
		// length is exactly right, not a placeholder.
		out.Strings = make([]string, c.rows)
	}
	if c.optional {
		out.Null = c.null
	}
	return out
}
