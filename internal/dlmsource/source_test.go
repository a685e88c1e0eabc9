package dlmsource

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"
)

func TestOpenPassthroughPlainText(t *testing.T) {
	r, err := Open(strings.NewReader("a,b,c\n1,2,3\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,b,c\n1,2,3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenDetectsGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte("a,b\n1,2\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenShortInputDoesNotPanic(t *testing.T) {
	r, err := Open(strings.NewReader("hi"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi" {
		t.Fatalf("got %q", got)
	}
}

func TestHasPrefixMagicBytes(t *testing.T) {
	if !hasPrefix([]byte{0x1F, 0x8B, 0x08}, gzipMagic) {
		t.Fatal("expected gzip magic to match")
	}
	if hasPrefix([]byte{0x00, 0x00}, gzipMagic) {
		t.Fatal("unexpected gzip magic match")
	}
}
