package dlmscan

import (
	"errors"
	"testing"

	"github.com/csvquery/dlmreader/internal/dlmerr"
)

func TestScanHeaderBasic(t *testing.T) {
	names, newPos, err := ScanHeader([]byte("a,b,c\n1,2,3\n"), 0, 1, basicCfg())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if newPos != len("a,b,c\n") {
		t.Errorf("newPos = %d, want %d", newPos, len("a,b,c\n"))
	}
}

func TestScanHeaderQuotedName(t *testing.T) {
	names, _, err := ScanHeader([]byte(`"first name","last name"`+"\n"), 0, 1, basicCfg())
	if err != nil {
		t.Fatal(err)
	}
	if names[0] != "first name" || names[1] != "last name" {
		t.Fatalf("names = %v", names)
	}
}

func TestScanHeaderEmptyLine(t *testing.T) {
	_, _, err := ScanHeader([]byte("\n"), 0, 1, basicCfg())
	if !errors.Is(err, dlmerr.ErrEmptyHeader) {
		t.Fatalf("expected ErrEmptyHeader, got %v", err)
	}
}

func TestScanHeaderUnterminatedQuoteIsFatal(t *testing.T) {
	_, _, err := ScanHeader([]byte(`"a,b`+"\n"), 0, 1, basicCfg())
	if err == nil {
		t.Fatal("expected error: header quotes may not span multiple frames")
	}
}

func TestCountColumns(t *testing.T) {
	n, err := CountColumns([]byte("x,y,z\n"), 0, 1, basicCfg())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
}
