// Package valueparse implements the value parsers (spec §4.7): integer,
// float, bool, date, datetime, and plain/quoted string, plus the MRU
// string cache.
package valueparse

import (
	"fmt"
	"strconv"

	"github.com/csvquery/dlmreader/internal/dlmerr"
)

// maxFastDigits bounds the hand-rolled digit loop: int64's magnitude
// tops out at 19 digits, so anything up to 18 digits plus an optional
// sign can never overflow and needs no overflow bookkeeping.
const maxFastDigits = 18

// ParseInt parses a field the record scanner already classified as
// INTEGER-shaped. Short fields go through a hand-rolled digit loop;
// longer ones fall back to strconv, which surfaces overflow.
func ParseInt(b []byte) (int64, error) {
	i := 0
	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}
	digits := len(b) - i

	if digits <= maxFastDigits {
		var v int64
		for ; i < len(b); i++ {
			v = v*10 + int64(b[i]-'0')
		}
		if neg {
			v = -v
		}
		return v, nil
	}

	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", dlmerr.ErrOverflow, b)
	}
	return v, nil
}
