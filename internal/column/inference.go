package column

import (
	"github.com/csvquery/dlmreader/internal/dlmerr"
)

// Infer maps a bitmap to a column type (spec §4.6): missing-only if every
// value seen was missing, else the narrowest accepted shape in order
// INTEGER -> FLOAT -> BOOL -> STRING, wrapped optional if any value was
// missing.
func Infer(bm Bitmap) (Type, bool) {
	if bm.AllMissing {
		return MissingOnly, bm.AnyMissing
	}
	var t Type
	switch {
	case bm.IntegerOK:
		t = Integer
	case bm.FloatOK:
		t = Float
	case bm.BoolOK:
		t = Bool
	default:
		t = String
	}
	return t, bm.AnyMissing
}

// Widen reconciles an existing column's type S against a later chunk's
// freshly inferred type T (spec §4.6 cross-chunk widening). name is used
// only for the error message.
func Widen(name string, s Type, sOptional bool, t Type, tOptional bool) (Type, bool, error) {
	if s == MissingOnly {
		return t, sOptional || tOptional, nil
	}
	if t == MissingOnly {
		return s, sOptional || tOptional, nil
	}

	// Rule 1: INTEGER <-> FLOAT widens to FLOAT.
	if (s == Integer && t == Float) || (s == Float && t == Integer) {
		return Float, sOptional || tOptional, nil
	}
	if s == Float && t == Float {
		return Float, sOptional || tOptional, nil
	}
	if s == Integer && t == Integer {
		return Integer, sOptional || tOptional, nil
	}

	// Rule 2: once STRING, always STRING.
	if s == String {
		return String, sOptional || tOptional, nil
	}

	// Rule 3: same type both sides, already handled above for numeric
	// kinds; remaining same-type cases (BOOL/BOOL, STRING handled, etc.).
	if s == t {
		return s, sOptional || tOptional, nil
	}

	// T is assignable to S: T is STRING's only non-string widen target is
	// itself, so by elimination the only remaining escape hatch is T
	// becoming STRING (never silently demoting S to a narrower type).
	if t == String {
		return String, sOptional || tOptional, nil
	}

	return s, sOptional, &dlmerr.TypeInferenceConflictError{
		Column:  name,
		OldType: s.String(),
		NewType: t.String(),
	}
}
