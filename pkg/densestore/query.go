package densestore

import (
	"context"
	"sort"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
)

// Collocations implements wordspace.Handle. A dense matrix has no
// relation-tagged sparse features to strip, so this degenerates to the
// dense row reinterpreted as (dimension, value) collocate pairs sorted by
// value descending -- kept for interface conformance; sparsestore is
// where Collocations does real work (spec.md §4.3).
func (s *Store) Collocations(ctx context.Context, word string) ([]wordspace.Collocate, bool, error) {
	id, ok := s.GetID(ctx, word)
	if !ok {
		return nil, false, nil
	}
	row := s.matrix[id*s.dim : (id+1)*s.dim]
	out := make([]wordspace.Collocate, 0, s.dim)
	for i, v := range row {
		if v != 0 {
			out = append(out, wordspace.Collocate{Word: itoa(i), Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, true, nil
}

// SimilarWords implements wordspace.Handle. Returns the stored neighbor
// list, stopping at the first zero-similarity entry per spec.md's
// neighbor-list termination invariant.
func (s *Store) SimilarWords(ctx context.Context, word string) ([]wordspace.Neighbor, bool, error) {
	if s.WordspaceType() != wordspace.SIM {
		return nil, false, &wordspace.WrongWorkspaceTypeError{Op: "SimilarWords", Have: s.WordspaceType()}
	}
	id, ok := s.GetID(ctx, word)
	if !ok {
		return nil, false, nil
	}
	return s.neighborsOf(id), true, nil
}

// neighborsOf returns the valid prefix of id's stored neighbor row.
func (s *Store) neighborsOf(id int) []wordspace.Neighbor {
	if s.nSim == 0 {
		return nil
	}
	out := make([]wordspace.Neighbor, 0, s.nSim)
	base := id * s.nSim
	for i := 0; i < s.nSim; i++ {
		sim := s.neighborSims[base+i]
		if sim == 0 {
			break
		}
		nid := s.neighborIDs[base+i]
		w, ok := s.GetWord(context.Background(), int(nid))
		if !ok {
			continue
		}
		out = append(out, wordspace.Neighbor{Word: w, Similarity: sim})
	}
	return out
}

// SemanticSimilarity implements wordspace.Handle. Returns
// wordspace.SemanticSimilarityNotFound when either word is unknown,
// matching the original's -2 backward-compatibility sentinel (spec.md §9
// open question (a)).
func (s *Store) SemanticSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error) {
	id1, ok1 := s.GetID(ctx, w1)
	id2, ok2 := s.GetID(ctx, w2)
	if !ok1 || !ok2 {
		return wordspace.SemanticSimilarityNotFound, nil
	}
	v1 := s.matrix[id1*s.dim : (id1+1)*s.dim]
	v2 := s.matrix[id2*s.dim : (id2+1)*s.dim]
	return measure.Dense(v1, v2)
}

// SecondOrderSimilarity implements wordspace.Handle (SIM only): builds two
// sparse vectors keyed by neighbor id and compares them with measure, per
// spec.md §9 open question (c) -- the "current form", not the legacy
// formula some DISCO source variants used.
func (s *Store) SecondOrderSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error) {
	if s.WordspaceType() != wordspace.SIM {
		return 0, &wordspace.WrongWorkspaceTypeError{Op: "SecondOrderSimilarity", Have: s.WordspaceType()}
	}
	id1, ok1 := s.GetID(ctx, w1)
	id2, ok2 := s.GetID(ctx, w2)
	if !ok1 || !ok2 {
		return wordspace.SemanticSimilarityNotFound, nil
	}
	sv1 := neighborSparseVector(s.neighborIDs, s.neighborSims, id1, s.nSim)
	sv2 := neighborSparseVector(s.neighborIDs, s.neighborSims, id2, s.nSim)
	return measure.Sparse(sv1, sv2), nil
}

func neighborSparseVector(ids []int32, sims []float32, id, nSim int) map[string]float32 {
	out := make(map[string]float32, nSim)
	base := id * nSim
	for i := 0; i < nSim; i++ {
		sim := sims[base+i]
		if sim == 0 {
			break
		}
		out[itoa(int(ids[base+i]))] = sim
	}
	return out
}

// VocabularyIterator implements wordspace.Handle.
func (s *Store) VocabularyIterator(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out, nil
}

// Close implements wordspace.Handle. The in-memory store holds no
// external resources.
func (s *Store) Close() error { return nil }

var _ wordspace.Handle = (*Store)(nil)
var _ wordspace.DenseHandle = (*Store)(nil)
