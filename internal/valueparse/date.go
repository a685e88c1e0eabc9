package valueparse

import (
	"regexp"
	"strconv"
	"time"

	"github.com/csvquery/dlmreader/internal/column"
)

// dateRegex and dateTimeRegex implement spec §4.7's post-process upgrade
// check. No pack repo ships a third-party pattern-matching library for
// this; Go's stdlib regexp is the idiomatic, ecosystem-standard choice
// for a fixed, simple pattern like this one (see DESIGN.md).
var (
	dateRegex     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dateTimeRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2}):(\d{2})(\.\d+)?$`)
)

// LooksLikeDate reports whether s matches the date upgrade pattern,
// without parsing it (used for the first up-to-3-sample pre-check).
func LooksLikeDate(s string) bool {
	return dateRegex.MatchString(s)
}

// LooksLikeDateTime reports whether s matches the datetime upgrade
// pattern and, if so, which separator byte ('T' or ' ') it used.
func LooksLikeDateTime(s string) (sep byte, ok bool) {
	m := dateTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	idx := len(m[1]) + 1 + len(m[2]) + 1 + len(m[3])
	return s[idx], true
}

// ParseDate parses a calendar-day string already known to match
// dateRegex.
func ParseDate(s string) (column.Date, bool) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return column.Date{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return column.Date{}, false
	}
	return column.Date{Year: y, Month: mo, Day: d}, true
}

// datetimeLayout returns the time.Parse layout matching sep ('T' or ' ').
func datetimeLayout(sep byte) string {
	if sep == 'T' {
		return "2006-01-02T15:04:05.999999999"
	}
	return "2006-01-02 15:04:05.999999999"
}

// ParseDateTime parses a datetime string already known to match
// dateTimeRegex, using sep to pick the 'T'-vs-space layout.
func ParseDateTime(s string, sep byte) (time.Time, bool) {
	t, err := time.Parse(datetimeLayout(sep), s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
