// Package snapshotcache implements the cross-run result cache (SPEC_FULL.md
// §4, NEW): a sidecar file recording a successful parse's (columns, names)
// next to the source file, skipped entirely when the source's
// size/mtime/sampled hash no longer match.
package snapshotcache

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
)

// sampleSize bounds how much of a (possibly huge) source file the
// fingerprint hashes, mirroring the teacher's start/middle/end sampling
// so a snapshot check stays cheap even on multi-gigabyte inputs.
const sampleSize = 512 * 1024

// Meta identifies the exact source state a cached snapshot was built
// from (same fields as the teacher's csvDNA/IndexMeta).
type Meta struct {
	Size  int64
	Mtime int64
	Hash  string
}

// Fingerprint computes f's Meta using the same start/middle/end sampled
// SHA-1 idiom as the teacher's Indexer.calculateFingerprint, so two runs
// over an unchanged file produce the same Meta without hashing the whole
// file every time.
func Fingerprint(f *os.File) (Meta, error) {
	stat, err := f.Stat()
	if err != nil {
		return Meta{}, err
	}
	size := stat.Size()
	mtime := stat.ModTime().Unix()

	hasher := sha1.New()
	buf := make([]byte, sampleSize)

	n, _ := f.ReadAt(buf, 0)
	hasher.Write(buf[:n])

	if size > sampleSize*3 {
		n, _ = f.ReadAt(buf, size/2-sampleSize/2)
		hasher.Write(buf[:n])
	}

	if size > sampleSize {
		start := size - sampleSize
		if start < 0 {
			start = 0
		}
		n, _ = f.ReadAt(buf, start)
		hasher.Write(buf[:n])
	}

	return Meta{
		Size:  size,
		Mtime: mtime,
		Hash:  hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}
