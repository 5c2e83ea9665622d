// Package textsim implements the Jijkoun/De Rijke alignment-weighted
// short-text similarity pipeline of spec.md §4.10, grounded on
// TextSimilarity.java.
package textsim

import (
	"context"
	"strings"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// weight returns a token's corpus-frequency weight: w = 1 - (icf -
// icfMin)/(icfMax - icfMin), where icf = freq/N and icfMin/icfMax are
// derived from the word space's MinFreq/MaxFreq, per TextSimilarity.java
// lines 56-59. A frequent word (icf close to icfMax) gets a low weight; a
// rare one gets a weight close to 1.
func weight(ctx context.Context, store wordspace.Handle, token string) (float32, error) {
	freq, err := store.Frequency(ctx, token)
	if err != nil {
		return 0, err
	}
	tokenCount := store.TokenCount()
	if tokenCount <= 0 {
		return 1, nil
	}
	n := float64(tokenCount)
	icf := float64(freq) / n
	icfMin := float64(store.MinFreq()) / n
	icfMax := float64(store.MaxFreq()) / n
	if icfMax <= icfMin {
		return 1, nil
	}
	w := 1 - (icf-icfMin)/(icfMax-icfMin)
	return float32(w), nil
}

// wordSim returns the similarity of two tokens: 1.0 on a case-insensitive
// exact match, else the word space's similarity measure remapped to
// [0, 1] when the measure is COSINE.
func wordSim(ctx context.Context, store wordspace.Handle, w1, w2 string) (float32, error) {
	if strings.EqualFold(w1, w2) {
		return 1, nil
	}
	measure := store.SimilarityMeasure()
	sim, err := store.SemanticSimilarity(ctx, w1, w2, measure)
	if err != nil {
		return 0, err
	}
	if sim == wordspace.SemanticSimilarityNotFound {
		return 0, nil
	}
	if measure == vector.Cosine {
		return vector.RemapCosineToUnit(sim), nil
	}
	return sim, nil
}

// DirectedTextSimilarity greedily aligns each token of text1 to its best
// remaining match in text2 (removing a matched token from the pool so no
// token of text2 is reused), contributing -1 for an unmatched token, and
// returns the ICF-weighted average contribution. Tokens are
// whitespace-split; store's configured stopwords are skipped.
func DirectedTextSimilarity(ctx context.Context, store wordspace.Handle, text1, text2 string) (float32, error) {
	tokens1 := filterStopwords(strings.Fields(text1), store.Stopwords())
	pool := filterStopwords(strings.Fields(text2), store.Stopwords())

	if len(tokens1) == 0 || len(pool) == 0 {
		return 0, nil
	}

	var weightedSum, weightSum float32
	for _, t1 := range tokens1 {
		w, err := weight(ctx, store, t1)
		if err != nil {
			return 0, err
		}
		weightSum += w

		bestIdx := -1
		var bestSim float32
		for i, t2 := range pool {
			sim, err := wordSim(ctx, store, t1, t2)
			if err != nil {
				return 0, err
			}
			if bestIdx == -1 || sim > bestSim {
				bestIdx = i
				bestSim = sim
			}
		}

		if bestIdx == -1 {
			weightedSum += w * -1
			continue
		}
		weightedSum += w * bestSim
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	if weightSum == 0 {
		return 0, nil
	}
	return weightedSum / weightSum, nil
}

// TextSimilarity is the symmetric mean of the two directed similarities.
func TextSimilarity(ctx context.Context, store wordspace.Handle, text1, text2 string) (float32, error) {
	s1, err := DirectedTextSimilarity(ctx, store, text1, text2)
	if err != nil {
		return 0, err
	}
	s2, err := DirectedTextSimilarity(ctx, store, text2, text1)
	if err != nil {
		return 0, err
	}
	return (s1 + s2) / 2, nil
}

func filterStopwords(tokens, stopwords []string) []string {
	if len(stopwords) == 0 {
		return tokens
	}
	stop := make(map[string]bool, len(stopwords))
	for _, s := range stopwords {
		stop[strings.ToLower(s)] = true
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stop[strings.ToLower(t)] {
			out = append(out, t)
		}
	}
	return out
}
