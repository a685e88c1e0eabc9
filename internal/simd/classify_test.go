package simd

import "testing"

func bitSet(bm []uint64, pos int) bool {
	return bm[pos/64]&(1<<uint(pos%64)) != 0
}

func TestClassifyMatchesScalarReference(t *testing.T) {
	data := []byte(`a,"b,c",10\n` + "d,\"e\"\"f\",20\n" + "short")
	sep := byte(',')

	got := NewBitmaps(len(data))
	Classify(data, sep, got)

	want := NewBitmaps(len(data))
	classifyScalarAt(data, sep, want, 0)

	for i := range got.Quotes {
		if got.Quotes[i] != want.Quotes[i] || got.Seps[i] != want.Seps[i] || got.Newlines[i] != want.Newlines[i] {
			t.Fatalf("word %d mismatch: got quotes=%064b seps=%064b nl=%064b, want quotes=%064b seps=%064b nl=%064b",
				i, got.Quotes[i], got.Seps[i], got.Newlines[i], want.Quotes[i], want.Seps[i], want.Newlines[i])
		}
	}
}

func TestClassifyPositions(t *testing.T) {
	data := []byte("a,b\n")
	bm := NewBitmaps(len(data))
	Classify(data, ',', bm)

	if !bitSet(bm.Seps, 1) {
		t.Fatal("expected separator bit at position 1")
	}
	if !bitSet(bm.Newlines, 3) {
		t.Fatal("expected newline bit at position 3")
	}
	if bitSet(bm.Quotes, 0) || bitSet(bm.Quotes, 1) || bitSet(bm.Quotes, 2) || bitSet(bm.Quotes, 3) {
		t.Fatal("expected no quote bits")
	}
}

func TestClassifyEmpty(t *testing.T) {
	bm := NewBitmaps(0)
	Classify(nil, ',', bm)
}

func TestClassifyLongRunPastOneWord(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = 'x'
	}
	data[150] = '"'
	data[170] = '\n'
	bm := NewBitmaps(len(data))
	Classify(data, ',', bm)
	if !bitSet(bm.Quotes, 150) {
		t.Fatal("expected quote bit at 150")
	}
	if !bitSet(bm.Newlines, 170) {
		t.Fatal("expected newline bit at 170")
	}
}
