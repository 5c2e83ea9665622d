package cluster

import (
	"context"

	"github.com/arnebakke/wordspace/pkg/compose"
	"github.com/arnebakke/wordspace/pkg/search"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// FilterOutliers removes words from a set whose neighbor list shares few
// members with the rest of the set: a word is kept only if at least
// minCooccurrence other words in the set appear in its neighbor list (or
// it appears in theirs). Requires a SIM word space. Grounded on
// Cluster.java's filterOutliers, whose hash-based two-pass scheme this
// reproduces with Go maps standing in for the Java HashSet membership
// check.
func FilterOutliers(ctx context.Context, store wordspace.Handle, words []string, minCooccurrence int) ([]string, error) {
	if store.WordspaceType() != wordspace.SIM {
		return nil, &wordspace.WrongWorkspaceTypeError{Op: "FilterOutliers", Have: store.WordspaceType()}
	}

	members := make(map[string]bool, len(words))
	for _, w := range words {
		members[w] = true
	}

	neighborSets := make(map[string]map[string]bool, len(words))
	for _, w := range words {
		neighbors, ok, err := store.SimilarWords(ctx, w)
		if err != nil {
			return nil, err
		}
		set := map[string]bool{}
		if ok {
			for _, n := range neighbors {
				set[n.Word] = true
			}
		}
		neighborSets[w] = set
	}

	var kept []string
	for _, w := range words {
		count := 0
		for _, other := range words {
			if other == w {
				continue
			}
			if neighborSets[w][other] || neighborSets[other][w] {
				count++
			}
		}
		if count >= minCooccurrence {
			kept = append(kept, w)
		}
	}
	return kept, nil
}

// GrowSet composes the vectors of words with ADDITION and returns the
// nearest words to the composed vector that are not already in the input
// set, up to n results. Grounded on Cluster.java's growSet.
func GrowSet(ctx context.Context, store wordspace.Handle, words []string, n int) ([]wordspace.Neighbor, error) {
	vectors := make([]map[string]float32, 0, len(words))
	for _, w := range words {
		v, ok, err := store.WordVector(ctx, w)
		if err != nil {
			return nil, err
		}
		if ok {
			vectors = append(vectors, v)
		}
	}
	composed, ok := compose.ComposeVectorList(compose.Addition, vectors, compose.CombinedWeights{}, 0)
	if !ok {
		return nil, nil
	}

	excluded := make(map[string]bool, len(words))
	for _, w := range words {
		excluded[w] = true
	}

	candidates, err := search.Exhaustive(ctx, store, composed, vector.Cosine, n+len(words))
	if err != nil {
		return nil, err
	}

	out := make([]wordspace.Neighbor, 0, n)
	for _, c := range candidates {
		if excluded[c.Word] {
			continue
		}
		out = append(out, c)
		if len(out) >= n {
			break
		}
	}
	return out, nil
}
