package search

import (
	"context"

	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// ShortestPath performs a breadth-first search over store's precomputed
// neighbor graph from fromWord to toWord, honoring the universal
// zero-similarity list-termination invariant when expanding each word's
// neighbor list. Returns the path in reverse order, from toWord back to
// fromWord inclusive, or nil if no path exists within maxDepth hops.
func ShortestPath(ctx context.Context, store wordspace.Handle, fromWord, toWord string, maxDepth int) ([]string, error) {
	if store.WordspaceType() != wordspace.SIM {
		return nil, &wordspace.WrongWorkspaceTypeError{Op: "ShortestPath", Have: store.WordspaceType()}
	}
	if fromWord == toWord {
		return []string{fromWord}, nil
	}

	type queueEntry struct {
		word string
		path []string
	}

	visited := map[string]bool{fromWord: true}
	queue := []queueEntry{{word: fromWord, path: []string{fromWord}}}

	for depth := 0; len(queue) > 0 && depth < maxDepth; depth++ {
		var next []queueEntry
		for _, entry := range queue {
			neighbors, _, err := store.SimilarWords(ctx, entry.word)
			if err != nil {
				return nil, err
			}
			for _, n := range neighbors {
				if n.Similarity == 0 {
					break
				}
				if visited[n.Word] {
					continue
				}
				path := append(append([]string{}, entry.path...), n.Word)
				if n.Word == toWord {
					for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
						path[i], path[j] = path[j], path[i]
					}
					return path, nil
				}
				visited[n.Word] = true
				next = append(next, queueEntry{word: n.Word, path: path})
			}
		}
		queue = next
	}
	return nil, nil
}
