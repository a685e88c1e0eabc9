//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// useSWAR gates the 8-byte-word classification path. The SWAR trick is
// portable Go and correct on any architecture, but it only pays for itself
// on CPUs with cheap 64-bit arithmetic and a wide enough load/store path;
// amd64 always qualifies.
var useSWAR = true

// HasAVX2 reports whether the running CPU has AVX2. The scanner does not
// use it directly (no assembly path is implemented, see DESIGN.md), but
// the chunk driver uses it as a hint when sizing the initial read-ahead
// buffer: wider memory subsystems amortize a larger first read.
func HasAVX2() bool {
	return cpu.X86.HasAVX2
}
