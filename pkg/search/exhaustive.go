// Package search implements nearest-neighbor search over a word space
// (spec.md §4.8): an exhaustive cosine/KOLB scan over every dense row or
// sparse feature set, a best-first graph walk over a SIM store's
// precomputed neighbor matrix, and shortest-path traversal of that same
// graph.
package search

import (
	"context"
	"math/rand"
	"sort"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// Exhaustive scans every word in store, scoring it against queryVector
// with measure, keeping only positive similarities, and returns the top
// maxN sorted by similarity descending.
func Exhaustive(ctx context.Context, store wordspace.Handle, queryVector map[string]float32, measure vector.Measure, maxN int) ([]wordspace.Neighbor, error) {
	words, err := store.VocabularyIterator(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]wordspace.Neighbor, 0, maxN)
	for _, w := range words {
		wv, ok, err := store.WordVector(ctx, w)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		sim := measure.Sparse(queryVector, wv)
		if sim <= 0 {
			continue
		}
		out = append(out, wordspace.Neighbor{Word: w, Similarity: sim})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > maxN {
		out = out[:maxN]
	}
	return out, nil
}

// ExhaustiveDense is Exhaustive's counterpart for dense handles, scanning
// raw float32 rows instead of sparse maps.
func ExhaustiveDense(ctx context.Context, store wordspace.DenseHandle, queryVector []float32, measure vector.Measure, maxN int) ([]wordspace.Neighbor, error) {
	words, err := store.VocabularyIterator(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]wordspace.Neighbor, 0, maxN)
	for i, w := range words {
		row, err := store.GetWordVectorByID(ctx, i)
		if err != nil {
			return nil, err
		}
		if row == nil {
			continue
		}
		sim, err := measure.Dense(queryVector, row)
		if err != nil {
			return nil, err
		}
		if sim <= 0 {
			continue
		}
		out = append(out, wordspace.Neighbor{Word: w, Similarity: sim})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > maxN {
		out = out[:maxN]
	}
	return out, nil
}

// deterministicRand returns a seeded PRNG for reproducible graph-search
// candidate sampling in tests, per spec.md §5's ordering guarantee.
func deterministicRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
