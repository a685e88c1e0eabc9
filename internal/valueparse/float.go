package valueparse

import (
	"fmt"
	"strconv"

	"github.com/csvquery/dlmreader/internal/dlmerr"
)

// ParseFloat parses a field the record scanner classified as FLOAT-shaped
// (including the special values inf/infinity/nan). strconv.ParseFloat is
// the stdlib's strtod-equivalent: it already recognizes "Inf", "Infinity",
// and "NaN" case-insensitively with an optional sign, matching spec §4.7
// exactly, so no third-party "strtod" library is needed here (see
// DESIGN.md for the stdlib justification).
func ParseFloat(b []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", dlmerr.ErrFloatParse, b)
	}
	return v, nil
}
