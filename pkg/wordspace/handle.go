// Package wordspace defines the polymorphic contract shared by the sparse
// and dense word-space back-ends (pkg/sparsestore and pkg/densestore) and
// the small set of types that flow across that contract.
package wordspace

import (
	"context"

	"github.com/arnebakke/wordspace/pkg/vector"
)

// Neighbor is one entry of a SIM word's precomputed neighbor list.
type Neighbor struct {
	Word       string
	Similarity float32
}

// Collocate is one entry of a word's collocation list: a feature's
// surface word (relation suffix stripped) with its summed significance.
type Collocate struct {
	Word  string
	Value float32
}

// Handle is the contract shared by every word-space back-end. It is the
// tagged-variant re-architecture spec.md calls for in place of the
// original's class hierarchy: sparsestore.Store and densestore.Store both
// implement it, and every generic query (composition, search, cluster,
// textsim) is written against this interface alone.
//
// A Handle is immutable and safe for concurrent use by multiple goroutines
// once Open/Load returns, because no operation mutates the underlying
// store.
type Handle interface {
	NumberOfWords() int
	NumberOfFeatureWords() int
	NumberOfSimilarWords() int
	TokenCount() int64
	MinFreq() int
	MaxFreq() int
	Stopwords() []string
	WordspaceType() WordspaceType
	SimilarityMeasure() vector.Measure

	// Frequency returns the corpus occurrence count of word, or 0 if the
	// word is unknown.
	Frequency(ctx context.Context, word string) (int, error)

	// WordVector returns the word's sparse vector representation, or
	// (nil, false) if the word is not in the vocabulary.
	WordVector(ctx context.Context, word string) (map[string]float32, bool, error)

	// Collocations returns the word's collocation list, sorted by
	// significance descending, or (nil, false) if the word is not in the
	// vocabulary. The order among equal significances depends on the
	// back-end: densestore keeps dimension order, sparsestore's is not
	// defined.
	Collocations(ctx context.Context, word string) ([]Collocate, bool, error)

	// SimilarWords returns the word's precomputed neighbor list (SIM
	// only). Returns WrongWorkspaceTypeError on a COL word space.
	SimilarWords(ctx context.Context, word string) ([]Neighbor, bool, error)

	// SemanticSimilarity computes the similarity between two words using
	// the given measure. Returns SemanticSimilarityNotFound if either
	// word is unknown, per the original's backward-compatible sentinel.
	SemanticSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error)

	// SecondOrderSimilarity compares the two words' neighbor lists (SIM
	// only) rather than their raw vectors.
	SecondOrderSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error)

	// VocabularyIterator returns every vocabulary word; order is
	// unspecified.
	VocabularyIterator(ctx context.Context) ([]string, error)

	// GetWord returns the word at id, or (\"\", false) if id is out of
	// range.
	GetWord(ctx context.Context, id int) (string, bool)

	// GetID returns the vocabulary id of word, or (-1, false) if unknown.
	GetID(ctx context.Context, word string) (int, bool)

	// Close releases any resources held by the store.
	Close() error
}

// DenseHandle is implemented only by dense back-ends; it exposes the
// dense-vector-specific surface (OOV synthesis, raw row access) that has
// no sparse equivalent.
type DenseHandle interface {
	Handle

	// WordEmbedding returns the word's dense vector. If the word is OOV
	// and subword n-grams are stored, it is synthesized by summing
	// n-gram vectors (all-zero, not not-found, if none match). Without
	// subword data, OOV returns (nil, false).
	WordEmbedding(ctx context.Context, word string) ([]float32, bool, error)

	// GetWordVectorByID returns the dense row for a vocabulary id. The
	// returned slice aliases the underlying matrix row and must not be
	// mutated.
	GetWordVectorByID(ctx context.Context, id int) ([]float32, error)
}
