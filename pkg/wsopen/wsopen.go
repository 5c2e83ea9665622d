// Package wsopen auto-detects and opens a word space, dispatching to
// pkg/sparsestore or pkg/densestore based on whether the path names a
// directory (SPARSE) or a file (DENSE), per spec.md §6. It lives outside
// pkg/wordspace to avoid the import cycle that package would otherwise
// need (wordspace.Handle is implemented by both back-ends, so wordspace
// itself cannot import them).
package wsopen

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arnebakke/wordspace/pkg/config"
	"github.com/arnebakke/wordspace/pkg/densestore"
	"github.com/arnebakke/wordspace/pkg/sparsestore"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// indexFileName is the SQLite file sparsestore expects inside a SPARSE
// word-space directory, alongside disco.config.
const indexFileName = "index.db"

// Open opens the word space at path read-only. A directory is treated as
// a SPARSE index (backed by SQLite, queried per call unless
// loadIntoMemory is set); a file is treated as a serialized DENSE blob
// (always fully reconstructed in memory, per spec.md §4.4's
// all-or-nothing deserialization).
func Open(ctx context.Context, path string, loadIntoMemory bool) (wordspace.Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &wordspace.CorruptIndexError{Path: path, Err: err}
	}

	if info.IsDir() {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		dbPath := filepath.Join(path, indexFileName)
		if loadIntoMemory {
			return sparsestore.Load(ctx, dbPath, cfg)
		}
		return sparsestore.Open(ctx, dbPath, cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &wordspace.CorruptIndexError{Path: path, Err: err}
	}
	defer f.Close()
	return densestore.Deserialize(f)
}

// Load is a convenience wrapper for Open(ctx, path, true), the "fully
// into memory" load policy of spec.md §6.
func Load(ctx context.Context, path string) (wordspace.Handle, error) {
	return Open(ctx, path, true)
}
