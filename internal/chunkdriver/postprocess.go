package chunkdriver

import (
	"strconv"
	"strings"
	"time"

	"github.com/csvquery/dlmreader/internal/column"
	"github.com/csvquery/dlmreader/internal/valueparse"
)

// postProcess runs the end-of-read upgrade pass (spec §4.7's last two
// bullets): every STRING column whose first up-to-3 non-missing values
// look like a date (or datetime) is retried as that type; any value
// that fails to parse reverts the whole column to STRING silently, the
// one deliberate try/ignore spec §7 calls out.
func postProcess(columns []*column.Column) ([]*column.Column, error) {
	for _, col := range columns {
		if col.Type != column.String {
			continue
		}
		upgradeDateColumn(col)
	}
	return columns, nil
}

func upgradeDateColumn(col *column.Column) {
	sample := sampleNonMissing(col, 3)
	if len(sample) == 0 {
		return
	}

	allDate := true
	for _, s := range sample {
		if !valueparse.LooksLikeDate(s) {
			allDate = false
			break
		}
	}
	if allDate && tryUpgradeToDate(col) {
		return
	}

	sep, allDateTime := byte(0), true
	for i, s := range sample {
		thisSep, ok := valueparse.LooksLikeDateTime(s)
		if !ok {
			allDateTime = false
			break
		}
		if i == 0 {
			sep = thisSep
		}
	}
	if allDateTime {
		tryUpgradeToDateTime(col, sep)
	}
}

func sampleNonMissing(col *column.Column, n int) []string {
	var out []string
	for i, s := range col.Strings {
		if col.Optional && col.Null[i] {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

func tryUpgradeToDate(col *column.Column) bool {
	dates := make([]column.Date, len(col.Strings))
	for i, s := range col.Strings {
		if col.Optional && col.Null[i] {
			continue
		}
		d, ok := valueparse.ParseDate(s)
		if !ok {
			return false
		}
		dates[i] = d
	}
	col.Type = column.Date
	col.Dates = dates
	col.Strings = nil
	return true
}

func tryUpgradeToDateTime(col *column.Column, sep byte) bool {
	times := make([]time.Time, len(col.Strings))
	for i, s := range col.Strings {
		if col.Optional && col.Null[i] {
			continue
		}
		t, ok := valueparse.ParseDateTime(s, sep)
		if !ok {
			return false
		}
		times[i] = t
	}
	col.Type = column.DateTime
	col.DateTimes = times
	col.Strings = nil
	return true
}

// normalizeNames identifier-safens every name (spec §4.9's
// normalizenames option), generalized from the teacher's plain
// strings.ToLower header normalization in Scanner.readHeaders.
func normalizeNames(names []string) []string {
	taken := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = normalizeOne(n, taken)
		taken[out[i]] = true
	}
	return out
}

func normalizeOne(name string, taken map[string]bool) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		s = "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	if isReservedIdent(s) {
		s = "_" + s
	}
	base := s
	for n := 1; taken[s]; n++ {
		s = base + "_" + strconv.Itoa(n)
	}
	return s
}

var reservedIdents = map[string]bool{
	"var": true, "func": true, "type": true, "struct": true, "interface": true,
	"package": true, "import": true, "return": true, "range": true, "map": true,
}

func isReservedIdent(s string) bool {
	return reservedIdents[strings.ToLower(s)]
}
