package valueparse

// ParseBool parses a field the record scanner classified as BOOL-shaped.
// The scanner already validated the full token against {t,true,f,false}
// case-insensitively, so the value parser only needs the first byte:
// 'f'/'F' is false, anything else is true.
func ParseBool(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	c := b[0]
	return c != 'f' && c != 'F'
}
