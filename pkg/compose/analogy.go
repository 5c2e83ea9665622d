package compose

import (
	"context"

	"github.com/arnebakke/wordspace/pkg/search"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// maxAnalogyResults caps the ranked candidate list SolveAnalogy et al.
// return, per spec.md §4.5.
const maxAnalogyResults = 12

// SolveAnalogy computes the offset a2-b2 and returns the nearest
// neighbors (cosine, up to 12) of b1+(a2-b2). Returns (nil, false) if any
// of b1, a2, b2 is not in store's vocabulary.
func SolveAnalogy(ctx context.Context, store wordspace.Handle, b1, a2, b2 string) ([]wordspace.Neighbor, bool, error) {
	v1, ok1, err := store.WordVector(ctx, b1)
	if err != nil {
		return nil, false, err
	}
	v2, ok2, err := store.WordVector(ctx, a2)
	if err != nil {
		return nil, false, err
	}
	v3, ok3, err := store.WordVector(ctx, b2)
	if err != nil {
		return nil, false, err
	}
	if !ok1 || !ok2 || !ok3 {
		return nil, false, nil
	}

	offset := vector.SparseSub(v2, v3)
	target := vector.SparseAdd(v1, offset)

	results, err := search.Exhaustive(ctx, store, target, vector.Cosine, maxAnalogyResults)
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}

// SolveAnalogyApprox is SolveAnalogy with graph search substituted for
// the exhaustive scan, trading exactness for speed on a SIM word space:
// it searches around the same composed target b1+(a2-b2) as SolveAnalogy,
// per spec.md §4.7 and Compositionality.java:1080
// (va1 = vb1 + va2 - vb2; similarWordsGraphSearch(va1, ...)).
func SolveAnalogyApprox(ctx context.Context, store wordspace.Handle, b1, a2, b2 string, seed int64) ([]wordspace.Neighbor, bool, error) {
	v1, ok1, err := store.WordVector(ctx, b1)
	if err != nil {
		return nil, false, err
	}
	v2, ok2, err := store.WordVector(ctx, a2)
	if err != nil {
		return nil, false, err
	}
	v3, ok3, err := store.WordVector(ctx, b2)
	if err != nil {
		return nil, false, err
	}
	if !ok1 || !ok2 || !ok3 {
		return nil, false, nil
	}

	offset := vector.SparseSub(v2, v3)
	target := vector.SparseAdd(v1, offset)

	results, err := search.GraphSearchVector(ctx, store, target, vector.Cosine, maxAnalogyResults, seed, b1)
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}

// AnalogyPair is one (a, b) offset pair supplied to
// SolveAnalogyAverageOffset.
type AnalogyPair struct {
	A, B string
}

// SolveAnalogyAverageOffset averages the a-b offset across pairs, adds it
// to b1, and returns the nearest neighbors of the result. Returns
// (nil, false) if b1 or any pair member is out of vocabulary.
func SolveAnalogyAverageOffset(ctx context.Context, store wordspace.Handle, b1 string, pairs []AnalogyPair) ([]wordspace.Neighbor, bool, error) {
	v1, ok1, err := store.WordVector(ctx, b1)
	if err != nil {
		return nil, false, err
	}
	if !ok1 || len(pairs) == 0 {
		return nil, false, nil
	}

	sum := map[string]float32{}
	for _, p := range pairs {
		va, oka, err := store.WordVector(ctx, p.A)
		if err != nil {
			return nil, false, err
		}
		vb, okb, err := store.WordVector(ctx, p.B)
		if err != nil {
			return nil, false, err
		}
		if !oka || !okb {
			return nil, false, nil
		}
		offset := vector.SparseSub(va, vb)
		for k, val := range offset {
			sum[k] += val
		}
	}
	inv := float32(1) / float32(len(pairs))
	avg := vector.SparseScalarMul(sum, inv)
	target := vector.SparseAdd(v1, avg)

	results, err := search.Exhaustive(ctx, store, target, vector.Cosine, maxAnalogyResults)
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}
