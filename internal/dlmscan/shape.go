package dlmscan

import "github.com/csvquery/dlmreader/token"

// classifyShape decides the numeric/bool/string shape of an unquoted
// field's content (spec §4.4). Callers have already stripped surrounding
// quotes (shape detection never applies inside a quoted field) and
// trimmed edge whitespace. An empty slice must not be passed in: empty
// and NA content are missing markers, handled by the caller before this
// is reached.
func classifyShape(b []byte, lzstring bool) token.Kind {
	n := len(b)
	i := 0
	signed := b[0] == '+' || b[0] == '-'
	if signed {
		i = 1
	}

	if !signed {
		if matchFold(b, "t") || matchFold(b, "true") || matchFold(b, "f") || matchFold(b, "false") {
			return token.KindBool
		}
	}

	rest := b[i:]
	if matchFold(rest, "inf") || matchFold(rest, "infinity") || matchFold(rest, "nan") {
		return token.KindFloat
	}

	j := i
	digitsBefore := 0
	leadingZero := false
	for j < n && isDigit(b[j]) {
		if j == i && b[j] == '0' {
			leadingZero = true
		}
		j++
		digitsBefore++
	}

	isFloat := false
	if digitsBefore == 0 {
		if j < n && b[j] == '.' {
			j2, df := scanDigits(b, j+1)
			if df == 0 {
				return token.KindString
			}
			j = j2
			isFloat = true
		} else {
			return token.KindString
		}
	} else {
		if leadingZero && digitsBefore > 1 && lzstring {
			return token.KindString
		}
		if j < n && b[j] == '.' {
			j2, _ := scanDigits(b, j+1)
			j = j2
			isFloat = true
		}
	}

	if j < n && (b[j] == 'e' || b[j] == 'E') {
		j2 := j + 1
		if j2 < n && (b[j2] == '+' || b[j2] == '-') {
			j2++
		}
		j3, df := scanDigits(b, j2)
		if df == 0 {
			return token.KindString
		}
		j = j3
		isFloat = true
	}

	if j != n {
		return token.KindString
	}
	if isFloat {
		return token.KindFloat
	}
	// Every integer is also a valid float: set both bits so a column
	// bitmap's FLOAT-ok AND is not broken by a chunk that mixes plain
	// integers with genuinely float-shaped values (spec §3's "lower 4
	// bits are the AND of all non-missing token kinds" only works if
	// INTEGER-shape implies FLOAT-shape).
	return token.KindInteger | token.KindFloat
}

func scanDigits(b []byte, from int) (next, count int) {
	j := from
	for j < len(b) && isDigit(b[j]) {
		j++
		count++
	}
	return j, count
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// matchFold reports whether b equals s, ASCII case-insensitively.
func matchFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func matchExact(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}
