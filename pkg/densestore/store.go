// Package densestore implements the dense word-space back-end: a
// row-major float32 matrix with an optional character n-gram matrix and
// optional neighbor-ID/similarity matrices for SIM word spaces.
package densestore

import (
	"context"
	"sync"

	"github.com/arnebakke/wordspace/pkg/compose"
	"github.com/arnebakke/wordspace/pkg/config"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is an in-memory dense word-space implementation. Once built it is
// immutable and safe for concurrent readers, matching spec.md §5's
// open-then-shareable concurrency model.
type Store struct {
	cfg config.Config

	words   []string          // id -> word
	ids     map[string]int    // word -> id (the "minimal perfect hash" + membership check collapsed into one map; see DESIGN.md)
	freq    []int32           // id -> frequency

	matrix []float32 // V*D row-major
	dim    int

	// subword n-grams, optional
	ngramDim    int
	ngramVecs   map[string][]float32
	minN, maxN  int

	// neighbor matrices, SIM only
	neighborIDs  []int32   // V*nSim
	neighborSims []float32 // V*nSim
	nSim         int

	oovCache *lru.Cache[string, []float32]

	mu sync.RWMutex
}

// Builder collects rows before Build freezes them into a Store. This
// mirrors the offline-builder/query-engine split of spec.md §1: the
// builder here exists only so tests can construct fixtures in-process
// without a serialized blob on disk.
type Builder struct {
	cfg      config.Config
	words    []string
	freq     []int32
	rows     [][]float32
	dim      int
	ngrams   map[string][]float32
	minN     int
	maxN     int
	nSim     int
	neighIDs [][]int32
	neighSim [][]float32
}

// NewBuilder starts a new in-memory dense store builder for vectors of
// dimension dim.
func NewBuilder(cfg config.Config, dim int) *Builder {
	return &Builder{cfg: cfg, dim: dim, ngrams: map[string][]float32{}}
}

// AddWord appends a vocabulary entry. vec must have length dim.
func (b *Builder) AddWord(word string, freq int32, vec []float32) {
	b.words = append(b.words, word)
	b.freq = append(b.freq, freq)
	row := make([]float32, b.dim)
	copy(row, vec)
	b.rows = append(b.rows, row)
}

// SetNeighbors sets the SIM neighbor list for the most recently added
// word. neighborIDs/sims may be shorter than nSim; the remainder is
// implicitly zero-padded (the universal "zero terminates the list"
// invariant).
func (b *Builder) SetNeighbors(neighborIDs []int32, sims []float32) {
	if b.nSim == 0 {
		b.nSim = len(neighborIDs)
	}
	b.neighIDs = append(b.neighIDs, neighborIDs)
	b.neighSim = append(b.neighSim, sims)
}

// SetNgramRange configures the subword n-gram range stored alongside this
// matrix.
func (b *Builder) SetNgramRange(minN, maxN int) {
	b.minN, b.maxN = minN, maxN
}

// AddNgram stores the dense vector for a single character n-gram.
func (b *Builder) AddNgram(ngram string, vec []float32) {
	row := make([]float32, b.dim)
	copy(row, vec)
	b.ngrams[ngram] = row
}

// Build freezes the builder into an immutable Store.
func (b *Builder) Build() (*Store, error) {
	s := &Store{
		cfg:       b.cfg,
		words:     b.words,
		ids:       make(map[string]int, len(b.words)),
		freq:      b.freq,
		dim:       b.dim,
		ngramVecs: b.ngrams,
		minN:      b.minN,
		maxN:      b.maxN,
		nSim:      b.nSim,
	}
	s.matrix = make([]float32, 0, len(b.rows)*b.dim)
	for i, row := range b.rows {
		if err := shapeCheckRow(row, b.dim); err != nil {
			return nil, err
		}
		s.ids[b.words[i]] = i
		s.matrix = append(s.matrix, row...)
	}

	if b.nSim > 0 {
		s.neighborIDs = make([]int32, len(b.words)*b.nSim)
		s.neighborSims = make([]float32, len(b.words)*b.nSim)
		for i := range b.words {
			if i < len(b.neighIDs) {
				copy(s.neighborIDs[i*b.nSim:(i+1)*b.nSim], b.neighIDs[i])
				copy(s.neighborSims[i*b.nSim:(i+1)*b.nSim], b.neighSim[i])
			}
		}
	}

	cache, _ := lru.New[string, []float32](4096)
	s.oovCache = cache

	return s, nil
}

func shapeCheckRow(row []float32, dim int) error {
	if len(row) != dim {
		return &vector.ShapeError{Want: dim, Got: len(row)}
	}
	return nil
}

// NumberOfWords implements wordspace.Handle.
func (s *Store) NumberOfWords() int { return len(s.words) }

// NumberOfFeatureWords implements wordspace.Handle.
func (s *Store) NumberOfFeatureWords() int { return s.dim }

// NumberOfSimilarWords implements wordspace.Handle.
func (s *Store) NumberOfSimilarWords() int { return s.nSim }

// TokenCount implements wordspace.Handle.
func (s *Store) TokenCount() int64 { return s.cfg.TokenCount }

// MinFreq implements wordspace.Handle.
func (s *Store) MinFreq() int { return s.cfg.MinFreq }

// MaxFreq implements wordspace.Handle.
func (s *Store) MaxFreq() int { return s.cfg.MaxFreq }

// Stopwords implements wordspace.Handle.
func (s *Store) Stopwords() []string { return s.cfg.Stopwords }

// WordspaceType implements wordspace.Handle.
func (s *Store) WordspaceType() wordspace.WordspaceType {
	if s.cfg.DontCompute2ndOrder {
		return wordspace.COL
	}
	return wordspace.SIM
}

// SimilarityMeasure implements wordspace.Handle.
func (s *Store) SimilarityMeasure() vector.Measure { return s.cfg.SimilarityMeasure }

// GetID implements wordspace.Handle. This is the two-step lookup spec.md
// §9 requires: a map lookup (standing in for the minimal perfect hash,
// see DESIGN.md) that itself already encodes the membership check, so
// there is no separate "returned a value for a non-member" failure mode
// to guard against here.
func (s *Store) GetID(ctx context.Context, word string) (int, bool) {
	id, ok := s.ids[word]
	if !ok {
		return -1, false
	}
	return id, true
}

// GetWord implements wordspace.Handle.
func (s *Store) GetWord(ctx context.Context, id int) (string, bool) {
	if id < 0 || id >= len(s.words) {
		return "", false
	}
	return s.words[id], true
}

// Frequency implements wordspace.Handle.
func (s *Store) Frequency(ctx context.Context, word string) (int, error) {
	id, ok := s.GetID(ctx, word)
	if !ok {
		return 0, nil
	}
	return int(s.freq[id]), nil
}

// GetWordVectorByID implements wordspace.DenseHandle. The returned slice
// aliases the matrix row and must not be mutated by the caller.
func (s *Store) GetWordVectorByID(ctx context.Context, id int) ([]float32, error) {
	if id < 0 || id >= len(s.words) {
		return nil, nil
	}
	return s.matrix[id*s.dim : (id+1)*s.dim], nil
}

// WordVector implements wordspace.Handle by converting the dense row to a
// sparse map keyed by dimension index, mirroring DenseVector's sparse view
// used by composition code that is representation-agnostic.
func (s *Store) WordVector(ctx context.Context, word string) (map[string]float32, bool, error) {
	id, ok := s.GetID(ctx, word)
	if !ok {
		return nil, false, nil
	}
	row := s.matrix[id*s.dim : (id+1)*s.dim]
	out := make(map[string]float32, s.dim)
	for i, v := range row {
		if v != 0 {
			out[itoa(i)] = v
		}
	}
	return out, true, nil
}

// WordEmbedding implements wordspace.DenseHandle: known words return their
// row; OOV words are synthesized from subword n-grams when available.
func (s *Store) WordEmbedding(ctx context.Context, word string) ([]float32, bool, error) {
	if id, ok := s.GetID(ctx, word); ok {
		row := s.matrix[id*s.dim : (id+1)*s.dim]
		out := make([]float32, s.dim)
		copy(out, row)
		return out, true, nil
	}
	if len(s.ngramVecs) == 0 {
		return nil, false, nil
	}
	if s.oovCache != nil {
		if cached, ok := s.oovCache.Get(word); ok {
			return cached, true, nil
		}
	}
	sum := s.embeddingForOOV(word)
	if s.oovCache != nil {
		s.oovCache.Add(word, sum)
	}
	return sum, true, nil
}

// embeddingForOOV sums the vectors of every n-gram of word that is present
// in the n-gram store, per spec.md §4.6. Returns the zero vector, not a
// not-found sentinel, when no n-gram matches.
func (s *Store) embeddingForOOV(word string) []float32 {
	sum := make([]float32, s.dim)
	ngrams := compose.ExtractAllNGrams(word, s.minN, s.maxN)
	for _, g := range ngrams {
		if v, ok := s.ngramVecs[g]; ok {
			for i, x := range v {
				sum[i] += x
			}
		}
	}
	return sum
}

func itoa(i int) string {
	// small, allocation-light itoa for dense-vector-as-sparse-map keys
	if i == 0 {
		return "0"
	}
	var buf [12]byte
	pos := len(buf)
	n := i
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
