// Package cluster implements the rank and outlier-filtering utilities and
// the CLUTO cluster-export writers of spec.md §4.9, grounded on
// Cluster.java's filterOutliers/growSet/clutoCluster* methods.
package cluster

import (
	"context"
	"sort"

	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// RankSim ranks words by their similarity list position: for each word in
// words, its rank is the 1-based position of target in that word's
// neighbor list (0 if target is absent from the list or the word has no
// neighbor list).
func RankSim(ctx context.Context, store wordspace.Handle, words []string, target string) (map[string]int, error) {
	out := make(map[string]int, len(words))
	for _, w := range words {
		neighbors, ok, err := store.SimilarWords(ctx, w)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[w] = 0
			continue
		}
		out[w] = rankOf(neighbors, target)
	}
	return out, nil
}

func rankOf(neighbors []wordspace.Neighbor, target string) int {
	for i, n := range neighbors {
		if n.Word == target {
			return i + 1
		}
	}
	return 0
}

// RankCol ranks words by their collocation list position: the 1-based
// position of target in that word's collocation list, descending by
// significance.
func RankCol(ctx context.Context, store wordspace.Handle, words []string, target string) (map[string]int, error) {
	out := make(map[string]int, len(words))
	for _, w := range words {
		colls, ok, err := store.Collocations(ctx, w)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[w] = 0
			continue
		}
		rank := 0
		for i, c := range colls {
			if c.Word == target {
				rank = i + 1
				break
			}
		}
		out[w] = rank
	}
	return out, nil
}

// HighestRankingSimilarity returns the word among candidates whose
// neighbor list ranks target highest (lowest non-zero rank number), or
// ("", false) if none of candidates ranks target at all.
func HighestRankingSimilarity(ctx context.Context, store wordspace.Handle, candidates []string, target string) (string, bool, error) {
	ranks, err := RankSim(ctx, store, candidates, target)
	if err != nil {
		return "", false, err
	}
	return bestRank(candidates, ranks)
}

// HighestRankingCollocation is HighestRankingSimilarity's collocation
// counterpart.
func HighestRankingCollocation(ctx context.Context, store wordspace.Handle, candidates []string, target string) (string, bool, error) {
	ranks, err := RankCol(ctx, store, candidates, target)
	if err != nil {
		return "", false, err
	}
	return bestRank(candidates, ranks)
}

func bestRank(candidates []string, ranks map[string]int) (string, bool, error) {
	best := ""
	bestRank := 0
	for _, c := range candidates {
		r := ranks[c]
		if r == 0 {
			continue
		}
		if bestRank == 0 || r < bestRank {
			bestRank = r
			best = c
		}
	}
	return best, bestRank != 0, nil
}

// WordAndRank pairs a word with its rank for sorted output.
type WordAndRank struct {
	Word string
	Rank int
}

// SortByRank returns ranks sorted ascending (best rank first), dropping
// zero (not-ranked) entries.
func SortByRank(ranks map[string]int) []WordAndRank {
	out := make([]WordAndRank, 0, len(ranks))
	for w, r := range ranks {
		if r == 0 {
			continue
		}
		out = append(out, WordAndRank{Word: w, Rank: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Word < out[j].Word
	})
	return out
}
