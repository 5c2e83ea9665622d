package compose

import (
	"context"
	"strings"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// ComposeVectorList folds vectors left to right with op. Returns
// (nil, false) if vectors has fewer than two entries or either of the
// first two is missing (nil); entries after the first two that are nil
// are skipped, per spec.md §4.7.
func ComposeVectorList(op Operator, vectors []map[string]float32, weights CombinedWeights, lambda float32) (map[string]float32, bool) {
	if len(vectors) < 2 || vectors[0] == nil || vectors[1] == nil {
		return nil, false
	}
	acc := SparseCompose(op, vectors[0], vectors[1], weights, lambda)
	for _, v := range vectors[2:] {
		if v == nil {
			continue
		}
		acc = SparseCompose(op, acc, v, weights, lambda)
	}
	return acc, true
}

// CompositionalTextSimilarity whitespace-tokenizes both texts, composes
// each into a single vector with op via ComposeVectorList, and returns
// their similarity under measure. Returns (0, false) if either text
// yields fewer than two known words.
func CompositionalTextSimilarity(ctx context.Context, store wordspace.Handle, text1, text2 string, op Operator, measure vector.Measure, weights CombinedWeights, lambda float32) (float32, bool, error) {
	v1, ok1, err := composeText(ctx, store, text1, op, weights, lambda)
	if err != nil {
		return 0, false, err
	}
	v2, ok2, err := composeText(ctx, store, text2, op, weights, lambda)
	if err != nil {
		return 0, false, err
	}
	if !ok1 || !ok2 {
		return 0, false, nil
	}
	return measure.Sparse(v1, v2), true, nil
}

func composeText(ctx context.Context, store wordspace.Handle, text string, op Operator, weights CombinedWeights, lambda float32) (map[string]float32, bool, error) {
	tokens := strings.Fields(text)
	vectors := make([]map[string]float32, 0, len(tokens))
	for _, tok := range tokens {
		v, ok, err := store.WordVector(ctx, tok)
		if err != nil {
			return nil, false, err
		}
		if ok {
			vectors = append(vectors, v)
		}
	}
	composed, ok := ComposeVectorList(op, vectors, weights, lambda)
	return composed, ok, nil
}
