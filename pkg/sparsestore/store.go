// Package sparsestore implements the sparse, inverted-index word-space
// back-end: per-word records (word, frequency, sparse feature vector,
// optional precomputed neighbor list) served from a SQLite index, exactly
// as spec.md §4.3 describes. Grounded on the teacher's SQLiteGraphStore
// (pkg/store/sqlite.go) for schema/connection idiom.
package sparsestore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/arnebakke/wordspace/pkg/config"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
	_ "modernc.org/sqlite"
)

// relationMarker separates a feature's surface word from its relation
// suffix, per spec.md §4.3's collocation-stripping rule: on-disk feature
// keys are "word<U+F8FF>relation", using the private-use codepoint so a
// surface word containing an ordinary character never collides with it.
const relationMarker = "\uF8FF"

// Store is a SQLite-backed sparse word-space implementation. When opened
// with Open it queries SQLite per call; when opened with Load it serves
// every query from an in-memory mirror built once at open time, per
// spec.md §4.3's load-policy distinction.
type Store struct {
	cfg config.Config
	db  *sql.DB

	mirror *mirror // nil unless Load was used
}

// mirror is the single atomic in-memory copy of the whole index that Load
// builds once; no query made against a mirrored Store touches disk again.
type mirror struct {
	words    []string
	ids      map[string]int
	freq     map[string]int32
	vectors  map[string]map[string]float32
	nSim     int
	neighbor map[string][]wordspace.Neighbor
}

// Open returns a Store whose queries read from SQLite on every call.
func Open(ctx context.Context, dbPath string, cfg config.Config) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &wordspace.CorruptIndexError{Path: dbPath, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &wordspace.CorruptIndexError{Path: dbPath, Err: err}
	}
	return &Store{cfg: cfg, db: db}, nil
}

// Load returns a Store whose queries are served entirely from an
// in-memory mirror built eagerly from dbPath; the underlying SQLite
// connection is closed once the mirror is built.
func Load(ctx context.Context, dbPath string, cfg config.Config) (*Store, error) {
	s, err := Open(ctx, dbPath, cfg)
	if err != nil {
		return nil, err
	}
	defer s.db.Close()

	m, err := s.buildMirror(ctx)
	if err != nil {
		return nil, &wordspace.CorruptIndexError{Path: dbPath, Err: err}
	}
	return &Store{cfg: cfg, mirror: m}, nil
}

func (s *Store) buildMirror(ctx context.Context) (*mirror, error) {
	m := &mirror{
		ids:      map[string]int{},
		freq:     map[string]int32{},
		vectors:  map[string]map[string]float32{},
		neighbor: map[string][]wordspace.Neighbor{},
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, word, freq FROM words ORDER BY id")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id int
		var word string
		var freq int32
		if err := rows.Scan(&id, &word, &freq); err != nil {
			rows.Close()
			return nil, err
		}
		m.words = append(m.words, word)
		m.ids[word] = id
		m.freq[word] = freq
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	frows, err := s.db.QueryContext(ctx, "SELECT w.word, f.feature, f.significance FROM features f JOIN words w ON w.id = f.word_id")
	if err != nil {
		return nil, err
	}
	for frows.Next() {
		var word, feature string
		var sig float32
		if err := frows.Scan(&word, &feature, &sig); err != nil {
			frows.Close()
			return nil, err
		}
		v := m.vectors[word]
		if v == nil {
			v = map[string]float32{}
			m.vectors[word] = v
		}
		v[feature] = sig
	}
	if err := frows.Err(); err != nil {
		return nil, err
	}
	frows.Close()

	nrows, err := s.db.QueryContext(ctx, "SELECT w.word, n.neighbor_word, n.similarity FROM neighbors n JOIN words w ON w.id = n.word_id ORDER BY w.word, n.rank")
	if err != nil {
		return nil, err
	}
	for nrows.Next() {
		var word, neighborWord string
		var sim float32
		if err := nrows.Scan(&word, &neighborWord, &sim); err != nil {
			nrows.Close()
			return nil, err
		}
		m.neighbor[word] = append(m.neighbor[word], wordspace.Neighbor{Word: neighborWord, Similarity: sim})
		if n := len(m.neighbor[word]); n > m.nSim {
			m.nSim = n
		}
	}
	if err := nrows.Err(); err != nil {
		return nil, err
	}
	nrows.Close()

	return m, nil
}

// InitSchema creates the words/features/neighbors tables used by Open and
// Load, for tests and tooling that build a sparse index in process.
func InitSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		id   INTEGER PRIMARY KEY,
		word TEXT UNIQUE NOT NULL,
		freq INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);

	CREATE TABLE IF NOT EXISTS features (
		word_id      INTEGER NOT NULL REFERENCES words(id),
		feature      TEXT NOT NULL,
		significance REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_features_word_id ON features(word_id);

	CREATE TABLE IF NOT EXISTS neighbors (
		word_id       INTEGER NOT NULL REFERENCES words(id),
		rank          INTEGER NOT NULL,
		neighbor_word TEXT NOT NULL,
		similarity    REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_neighbors_word_id ON neighbors(word_id, rank);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *Store) isMirrored() bool { return s.mirror != nil }

// NumberOfWords implements wordspace.Handle.
func (s *Store) NumberOfWords() int {
	if s.isMirrored() {
		return len(s.mirror.words)
	}
	var n int
	_ = s.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&n)
	return n
}

// NumberOfFeatureWords implements wordspace.Handle.
func (s *Store) NumberOfFeatureWords() int { return s.cfg.NumberFeatureWords }

// NumberOfSimilarWords implements wordspace.Handle.
func (s *Store) NumberOfSimilarWords() int {
	if s.isMirrored() {
		return s.mirror.nSim
	}
	return s.cfg.NumberOfSimilarWords
}

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

// GetID implements wordspace.Handle.
func (s *Store) GetID(ctx context.Context, word string) (int, bool) {
	if s.isMirrored() {
		id, ok := s.mirror.ids[word]
		if !ok {
			return -1, false
		}
		return id, true
	}
	var id int
	err := s.db.QueryRowContext(ctx, "SELECT id FROM words WHERE word = ?", word).Scan(&id)
	if err != nil {
		return -1, false
	}
	return id, true
}

// GetWord implements wordspace.Handle: the word at dense document id
// [0, V), spec.md §4.3's random-access-by-id contract.
func (s *Store) GetWord(ctx context.Context, id int) (string, bool) {
	if s.isMirrored() {
		if id < 0 || id >= len(s.mirror.words) {
			return "", false
		}
		return s.mirror.words[id], true
	}
	var word string
	err := s.db.QueryRowContext(ctx, "SELECT word FROM words WHERE id = ?", id).Scan(&word)
	if err != nil {
		return "", false
	}
	return word, true
}

// Frequency implements wordspace.Handle.
func (s *Store) Frequency(ctx context.Context, word string) (int, error) {
	if s.isMirrored() {
		return int(s.mirror.freq[word]), nil
	}
	var freq int
	err := s.db.QueryRowContext(ctx, "SELECT freq FROM words WHERE word = ?", word).Scan(&freq)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sparsestore: frequency lookup: %w", err)
	}
	return freq, nil
}

// WordVector implements wordspace.Handle.
func (s *Store) WordVector(ctx context.Context, word string) (map[string]float32, bool, error) {
	if s.isMirrored() {
		v, ok := s.mirror.vectors[word]
		return v, ok, nil
	}
	id, ok := s.GetID(ctx, word)
	if !ok {
		return nil, false, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT feature, significance FROM features WHERE word_id = ?", id)
	if err != nil {
		return nil, false, fmt.Errorf("sparsestore: word vector query: %w", err)
	}
	defer rows.Close()

	vec := map[string]float32{}
	for rows.Next() {
		var feature string
		var sig float32
		if err := rows.Scan(&feature, &sig); err != nil {
			return nil, false, err
		}
		vec[feature] = sig
	}
	return vec, true, rows.Err()
}

// Collocations implements wordspace.Handle: strips the relation-marker
// suffix from each feature key, sums significances of identical surface
// words, and sorts descending. The feature vector is a map, so the order
// of collocates with equal significance is not defined.
func (s *Store) Collocations(ctx context.Context, word string) ([]wordspace.Collocate, bool, error) {
	vec, ok, err := s.WordVector(ctx, word)
	if err != nil || !ok {
		return nil, ok, err
	}

	order := make([]string, 0, len(vec))
	sums := map[string]float32{}
	for feature, sig := range vec {
		surface := feature
		if idx := strings.Index(feature, relationMarker); idx >= 0 {
			surface = feature[:idx]
		}
		if _, seen := sums[surface]; !seen {
			order = append(order, surface)
		}
		sums[surface] += sig
	}

	out := make([]wordspace.Collocate, len(order))
	for i, w := range order {
		out[i] = wordspace.Collocate{Word: w, Value: sums[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, true, nil
}

// SimilarWords implements wordspace.Handle.
func (s *Store) SimilarWords(ctx context.Context, word string) ([]wordspace.Neighbor, bool, error) {
	if s.WordspaceType() != wordspace.SIM {
		return nil, false, &wordspace.WrongWorkspaceTypeError{Op: "SimilarWords", Have: s.WordspaceType()}
	}
	if s.isMirrored() {
		n, ok := s.mirror.neighbor[word]
		return n, ok, nil
	}
	id, ok := s.GetID(ctx, word)
	if !ok {
		return nil, false, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT neighbor_word, similarity FROM neighbors WHERE word_id = ? ORDER BY rank", id)
	if err != nil {
		return nil, false, fmt.Errorf("sparsestore: similar words query: %w", err)
	}
	defer rows.Close()

	var out []wordspace.Neighbor
	for rows.Next() {
		var n wordspace.Neighbor
		if err := rows.Scan(&n.Word, &n.Similarity); err != nil {
			return nil, false, err
		}
		if n.Similarity == 0 {
			break
		}
		out = append(out, n)
	}
	return out, true, rows.Err()
}

// SemanticSimilarity implements wordspace.Handle.
func (s *Store) SemanticSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error) {
	v1, ok1, err := s.WordVector(ctx, w1)
	if err != nil {
		return 0, err
	}
	v2, ok2, err := s.WordVector(ctx, w2)
	if err != nil {
		return 0, err
	}
	if !ok1 || !ok2 {
		return wordspace.SemanticSimilarityNotFound, nil
	}
	return measure.Sparse(v1, v2), nil
}

// SecondOrderSimilarity implements wordspace.Handle (SIM only).
func (s *Store) SecondOrderSimilarity(ctx context.Context, w1, w2 string, measure vector.Measure) (float32, error) {
	if s.WordspaceType() != wordspace.SIM {
		return 0, &wordspace.WrongWorkspaceTypeError{Op: "SecondOrderSimilarity", Have: s.WordspaceType()}
	}
	n1, ok1, err := s.SimilarWords(ctx, w1)
	if err != nil {
		return 0, err
	}
	n2, ok2, err := s.SimilarWords(ctx, w2)
	if err != nil {
		return 0, err
	}
	if !ok1 || !ok2 {
		return wordspace.SemanticSimilarityNotFound, nil
	}
	return measure.Sparse(neighborsToSparse(n1), neighborsToSparse(n2)), nil
}

func neighborsToSparse(ns []wordspace.Neighbor) map[string]float32 {
	out := make(map[string]float32, len(ns))
	for _, n := range ns {
		out[n.Word] = n.Similarity
	}
	return out
}

// VocabularyIterator implements wordspace.Handle. Order is unspecified,
// per spec.md §4.3.
func (s *Store) VocabularyIterator(ctx context.Context) ([]string, error) {
	if s.isMirrored() {
		out := make([]string, len(s.mirror.words))
		copy(out, s.mirror.words)
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT word FROM words")
	if err != nil {
		return nil, fmt.Errorf("sparsestore: vocabulary query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Close implements wordspace.Handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ wordspace.Handle = (*Store)(nil)
