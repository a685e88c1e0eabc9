package snapshotcache

import (
	"encoding/gob"
	"os"

	"github.com/pierrec/lz4/v4"

	"github.com/csvquery/dlmreader/internal/column"
)

// SidecarPath returns the cache file path for a source at path: the full
// path, extension included, with ".dlmcache" appended.
func SidecarPath(path string) string {
	return path + ".dlmcache"
}

type snapshot struct {
	Meta    Meta
	Names   []string
	Columns []column.Column
}

// Save writes a snapshot of names/columns to path's sidecar file,
// lz4-compressed the same way sorter.go compresses spilled sort chunks.
func Save(path string, meta Meta, names []string, columns []*column.Column) error {
	f, err := os.Create(SidecarPath(path))
	if err != nil {
		return err
	}
	defer f.Close()

	lzWriter := lz4.NewWriter(f)
	defer lzWriter.Close()

	deref := make([]column.Column, len(columns))
	for i, c := range columns {
		deref[i] = *c
	}

	return gob.NewEncoder(lzWriter).Encode(snapshot{Meta: meta, Names: names, Columns: deref})
}

// Load reads path's sidecar file and returns its snapshot if, and only
// if, its recorded Meta matches want exactly. A missing sidecar, a
// stale Meta, or any decode error is reported as ok=false with no error:
// a snapshot-cache miss is never fatal to the caller, it just means
// "parse normally".
func Load(path string, want Meta) (names []string, columns []*column.Column, ok bool, err error) {
	f, openErr := os.Open(SidecarPath(path))
	if openErr != nil {
		return nil, nil, false, nil
	}
	defer f.Close()

	lzReader := lz4.NewReader(f)

	var snap snapshot
	if decErr := gob.NewDecoder(lzReader).Decode(&snap); decErr != nil {
		return nil, nil, false, nil
	}
	if snap.Meta != want {
		return nil, nil, false, nil
	}

	cols := make([]*column.Column, len(snap.Columns))
	for i := range snap.Columns {
		c := snap.Columns[i]
		cols[i] = &c
	}
	return snap.Names, cols, true, nil
}
