package cluster

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// WriteClusterSimilarityGraph writes the CLUTO sparse-graph export for
// the first n vocabulary words: sparseGraph to graphOut, one line per
// word with space-separated (1-based neighborId, similarity) pairs for
// neighbors with similarity >= minSim; a line ends at the first neighbor
// that falls outside the first n words, so later neighbors are not
// written; rowLabels to labelsOut, one word per line in the same order.
// Requires a SIM word space. Grounded on Cluster.java's
// clutoClusterSimilarityGraph.
func WriteClusterSimilarityGraph(ctx context.Context, store wordspace.Handle, n int, minSim float32, graphOut, labelsOut io.Writer) error {
	if store.WordspaceType() != wordspace.SIM {
		return &wordspace.WrongWorkspaceTypeError{Op: "WriteClusterSimilarityGraph", Have: store.WordspaceType()}
	}

	vocab, err := store.VocabularyIterator(ctx)
	if err != nil {
		return err
	}
	if n > len(vocab) {
		n = len(vocab)
	}
	first := vocab[:n]

	idOf := make(map[string]int, n)
	for i, w := range first {
		idOf[w] = i + 1 // 1-based
	}

	gw := bufio.NewWriter(graphOut)
	lw := bufio.NewWriter(labelsOut)

	log.Printf("cluster: exporting similarity graph for %d words", n)
	for i, w := range first {
		if i > 0 && i%10000 == 0 {
			log.Printf("cluster: exported %d/%d rows", i, n)
		}

		neighbors, ok, err := store.SimilarWords(ctx, w)
		if err != nil {
			return err
		}
		var parts []string
		if ok {
			for _, nb := range neighbors {
				if nb.Similarity == 0 {
					break
				}
				if nb.Similarity < minSim {
					continue
				}
				id, inFirstN := idOf[nb.Word]
				if !inFirstN {
					break
				}
				parts = append(parts, fmt.Sprintf("%d %g", id, nb.Similarity))
			}
		}
		if _, err := fmt.Fprintln(gw, strings.Join(parts, " ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(lw, w); err != nil {
			return err
		}
	}

	if err := gw.Flush(); err != nil {
		return err
	}
	return lw.Flush()
}

// WriteClusterVectors writes the CLUTO sparse-matrix export for every
// word in the vocabulary: sparseMatrix to matrixOut, one line per word
// with space-separated (featureId, value) pairs from the word's sparse
// vector, feature IDs interned in first-use order across the whole
// export; rowLabels to labelsOut, one word per line. Works on either
// back-end. Grounded on Cluster.java's clutoClusterVectors.
func WriteClusterVectors(ctx context.Context, store wordspace.Handle, matrixOut, labelsOut io.Writer) error {
	vocab, err := store.VocabularyIterator(ctx)
	if err != nil {
		return err
	}

	featureID := map[string]int{}
	nextID := 1

	mw := bufio.NewWriter(matrixOut)
	lw := bufio.NewWriter(labelsOut)

	log.Printf("cluster: exporting vectors for %d words", len(vocab))
	for i, w := range vocab {
		if i > 0 && i%10000 == 0 {
			log.Printf("cluster: exported %d/%d rows", i, len(vocab))
		}

		vec, ok, err := store.WordVector(ctx, w)
		if err != nil {
			return err
		}
		var parts []string
		if ok {
			for feature, value := range vec {
				id, seen := featureID[feature]
				if !seen {
					id = nextID
					featureID[feature] = id
					nextID++
				}
				parts = append(parts, fmt.Sprintf("%d %g", id, value))
			}
		}
		if _, err := fmt.Fprintln(mw, strings.Join(parts, " ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(lw, w); err != nil {
			return err
		}
	}

	if err := mw.Flush(); err != nil {
		return err
	}
	return lw.Flush()
}
