package chunkdriver

import (
	"strings"
	"testing"

	"github.com/csvquery/dlmreader/internal/column"
)

func baseOpts() Options {
	return Options{
		Delim:     ',',
		DelimSet:  true,
		HasHeader: true,
		ChunkBits: 20,
	}
}

func TestRunBasicTypes(t *testing.T) {
	src := "id,score,active,name\n1,1.5,true,alice\n2,2.5,false,bob\n"
	res, err := Run(strings.NewReader(src), baseOpts(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Names) != 4 || res.Names[0] != "id" {
		t.Fatalf("names = %v", res.Names)
	}
	if res.Rows != 2 {
		t.Fatalf("rows = %d", res.Rows)
	}
	if res.Columns[0].Type != column.Integer {
		t.Fatalf("id type = %v", res.Columns[0].Type)
	}
	if res.Columns[1].Type != column.Float {
		t.Fatalf("score type = %v", res.Columns[1].Type)
	}
	if res.Columns[2].Type != column.Bool {
		t.Fatalf("active type = %v", res.Columns[2].Type)
	}
	if res.Columns[3].Type != column.String {
		t.Fatalf("name type = %v", res.Columns[3].Type)
	}
	if res.Columns[0].Ints[1] != 2 {
		t.Fatalf("id[1] = %v", res.Columns[0].Ints[1])
	}
	if res.Columns[3].Strings[0] != "alice" {
		t.Fatalf("name[0] = %v", res.Columns[3].Strings[0])
	}
}

func TestRunMissingValuesMakeColumnOptional(t *testing.T) {
	src := "a,b\n1,\nNA,2\n3,4\n"
	res, err := Run(strings.NewReader(src), baseOpts(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Columns[0].Optional || !res.Columns[1].Optional {
		t.Fatal("expected both columns optional")
	}
	if !res.Columns[0].IsMissing(1) {
		t.Fatal("expected a[1] missing")
	}
	if !res.Columns[1].IsMissing(0) {
		t.Fatal("expected b[0] missing")
	}
}

func TestRunQuotedFieldsWithEmbeddedDelimiterAndNewline(t *testing.T) {
	opts := baseOpts()
	opts.HasQuote = true
	opts.Quote = '"'
	src := "a,b\n1,\"hello, world\"\n2,\"multi\nline\"\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns[1].Strings[0] != "hello, world" {
		t.Fatalf("got %q", res.Columns[1].Strings[0])
	}
	if res.Columns[1].Strings[1] != "multi\nline" {
		t.Fatalf("got %q", res.Columns[1].Strings[1])
	}
}

func TestRunCrossChunkWideningIntToFloat(t *testing.T) {
	opts := baseOpts()
	// ChunkBits=4 asks for 16-byte chunks; the framer's 64-byte minimum
	// buffer makes each chunk at most 64 bytes, so this 89-byte input is
	// split and the float arrives in a later chunk than the integers.
	opts.ChunkBits = 4
	src := "a\n" + strings.Repeat("1\n", 40) + "3.5\n12\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns[0].Type != column.Float {
		t.Fatalf("expected widened to float, got %v", res.Columns[0].Type)
	}
	if res.Columns[0].Len() != 42 {
		t.Fatalf("len = %d", res.Columns[0].Len())
	}
}

func TestRunCrossChunkWideningToString(t *testing.T) {
	opts := baseOpts()
	opts.ChunkBits = 4
	src := "a\n" + strings.Repeat("1\n", 40) + "hello\n12\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns[0].Type != column.String {
		t.Fatalf("expected widened to string, got %v", res.Columns[0].Type)
	}
	if res.Columns[0].Strings[0] != "1" {
		t.Fatalf("expected backfilled value %q, got %q", "1", res.Columns[0].Strings[0])
	}
}

func TestRunHasHeaderFalseSynthesizesNames(t *testing.T) {
	opts := baseOpts()
	opts.HasHeader = false
	src := "1,2,3\n4,5,6\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"X1", "X2", "X3"}
	for i, n := range want {
		if res.Names[i] != n {
			t.Fatalf("names = %v", res.Names)
		}
	}
}

func TestRunRStyleUnnamedRowNameColumn(t *testing.T) {
	src := "a,b\nrow1,1,2\nrow2,3,4\n"
	res, err := Run(strings.NewReader(src), baseOpts(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Names[0] != "UNNAMED_0" || res.Names[1] != "a" || res.Names[2] != "b" {
		t.Fatalf("names = %v", res.Names)
	}
}

func TestRunColumnCountMismatchIsFatal(t *testing.T) {
	src := "a,b,c\n1,2,3,4,5\n"
	_, err := Run(strings.NewReader(src), baseOpts(), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestRunDateUpgrade(t *testing.T) {
	src := "a,d\n1,2024-01-15\n2,2024-02-20\n3,2024-03-01\n"
	res, err := Run(strings.NewReader(src), baseOpts(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns[1].Type != column.Date {
		t.Fatalf("expected date upgrade, got %v", res.Columns[1].Type)
	}
	if res.Columns[1].Dates[0].Year != 2024 || res.Columns[1].Dates[0].Month != 1 {
		t.Fatalf("got %+v", res.Columns[1].Dates[0])
	}
}

func TestRunColNamesOverride(t *testing.T) {
	opts := baseOpts()
	opts.ColNames = []string{"x", "y"}
	src := "a,b\n1,2\n3,4\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Names[0] != "x" || res.Names[1] != "y" {
		t.Fatalf("names = %v", res.Names)
	}
}

func TestRunNormalizeNames(t *testing.T) {
	opts := baseOpts()
	opts.NormalizeNames = true
	src := "first name,2nd col\n1,2\n"
	res, err := Run(strings.NewReader(src), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Names[0] != "first_name" {
		t.Fatalf("got %q", res.Names[0])
	}
	if res.Names[1] != "_2nd_col" {
		t.Fatalf("got %q", res.Names[1])
	}
}

func TestRunProgressCallbackInvoked(t *testing.T) {
	var events []string
	progress := func(event string, args ...any) {
		events = append(events, event)
	}
	src := "a,b\n1,2\n3,4\n"
	_, err := Run(strings.NewReader(src), baseOpts(), progress)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one progress event")
	}
	found := false
	for _, e := range events {
		if e == "done" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a final done event")
	}
}
