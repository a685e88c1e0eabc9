package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/csvquery/dlmreader"
	"github.com/csvquery/dlmreader/internal/column"
)

func main() {
	delim := flag.String("delim", "", "field delimiter (single char, default: guess)")
	quote := flag.String("quote", "\"", "quote char (empty disables quoting)")
	trim := flag.Bool("trim", false, "trim leading/trailing whitespace in each field")
	lzstring := flag.Bool("lzstring", false, "treat leading-zero digit runs as strings")
	skip := flag.Int("skip", 0, "number of leading lines to skip before the header")
	comment := flag.String("comment", "", "comment-line prefix to ignore")
	noHeader := flag.Bool("no-header", false, "first data line is not a header")
	normalize := flag.Bool("normalize-names", false, "rewrite column names into safe identifiers")
	chunkbits := flag.Int("chunkbits", 0, "chunk size as 2^chunkbits bytes (0 = single chunk)")
	verbose := flag.Bool("v", false, "print per-chunk progress to stderr")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dlmcat [flags] <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dlmcat:", err)
		os.Exit(1)
	}
	defer f.Close()

	opts := dlm.Options{
		Trim:           *trim,
		LZString:       *lzstring,
		Skip:           *skip,
		Comment:        *comment,
		NormalizeNames: *normalize,
		ChunkBits:      *chunkbits,
	}
	if *delim != "" {
		opts.Delim = (*delim)[0]
	}
	if *quote != "" {
		opts.HasQuote = true
		opts.Quote = (*quote)[0]
	}
	if *noHeader {
		hasHeader := false
		opts.HasHeader = &hasHeader
	}
	if *verbose {
		opts.Progress = func(event string, a ...any) {
			fmt.Fprintf(os.Stderr, "[%s] %v\n", event, a)
		}
	}

	start := time.Now()
	table, err := dlm.ReadDLM(f, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dlmcat:", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d rows, %d columns, parsed in %v\n\n", table.Len(), len(table.Columns), elapsed)
	for i, name := range table.Names {
		col := table.Columns[i]
		fmt.Printf("  %-20s %-10s optional=%v\n", name, col.Type, col.Optional)
	}
	fmt.Println()
	printHead(table, 5)
}

// printHead prints up to n rows of the table as a delimiter-aligned
// preview, mirroring cmd/benchmark's plain fmt.Printf reporting style.
func printHead(table *dlm.Table, n int) {
	rows := table.Len()
	if n > rows {
		n = rows
	}
	fmt.Println(strings.Join(table.Names, "\t"))
	for r := 0; r < n; r++ {
		cells := make([]string, len(table.Columns))
		for c, col := range table.Columns {
			cells[c] = formatCell(col, r)
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}

func formatCell(col *column.Column, row int) string {
	if col.IsMissing(row) {
		return "NA"
	}
	switch col.Type {
	case column.Integer:
		return fmt.Sprintf("%d", col.Ints[row])
	case column.Float:
		return fmt.Sprintf("%g", col.Floats[row])
	case column.Bool:
		return fmt.Sprintf("%t", col.Bools[row])
	case column.Date:
		d := col.Dates[row]
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case column.DateTime:
		return col.DateTimes[row].Format(time.RFC3339)
	default:
		return col.Strings[row]
	}
}
