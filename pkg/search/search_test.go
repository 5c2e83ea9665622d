package search_test

import (
	"context"
	"testing"

	"github.com/arnebakke/wordspace/pkg/config"
	"github.com/arnebakke/wordspace/pkg/densestore"
	. "github.com/arnebakke/wordspace/pkg/search"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimStore(t *testing.T) *densestore.Store {
	t.Helper()
	cfg := config.Default()
	cfg.DontCompute2ndOrder = false
	cfg.SimilarityMeasure = vector.Cosine
	b := densestore.NewBuilder(cfg, 3)
	b.AddWord("cat", 10, []float32{1, 0, 0})
	b.SetNeighbors([]int32{1}, []float32{0.99})
	b.AddWord("kitten", 5, []float32{0.99, 0.1, 0})
	b.SetNeighbors([]int32{0}, []float32{0.99})
	b.AddWord("car", 8, []float32{0, 1, 0})
	b.SetNeighbors(nil, nil)
	store, err := b.Build()
	require.NoError(t, err)
	return store
}

func TestExhaustiveFindsPositiveMatchesOnly(t *testing.T) {
	ctx := context.Background()
	store := buildSimStore(t)
	query, ok, err := store.WordVector(ctx, "cat")
	require.NoError(t, err)
	require.True(t, ok)

	results, err := Exhaustive(ctx, store, query, vector.Cosine, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "cat", results[0].Word)
	for _, r := range results {
		assert.Greater(t, r.Similarity, float32(0))
	}
}

func TestGraphSearchRequiresSIM(t *testing.T) {
	cfg := config.Default()
	cfg.DontCompute2ndOrder = true
	b := densestore.NewBuilder(cfg, 3)
	b.AddWord("cat", 1, []float32{1, 0, 0})
	store, err := b.Build()
	require.NoError(t, err)

	_, err = GraphSearch(context.Background(), store, "cat", vector.Cosine, 5, 1)
	var wrongType *wordspace.WrongWorkspaceTypeError
	require.ErrorAs(t, err, &wrongType)
}

func TestGraphSearchDeterministicWithSameSeed(t *testing.T) {
	ctx := context.Background()
	store := buildSimStore(t)

	r1, err := GraphSearch(ctx, store, "cat", vector.Cosine, 5, 42)
	require.NoError(t, err)
	r2, err := GraphSearch(ctx, store, "cat", vector.Cosine, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestShortestPathFindsDirectNeighbor(t *testing.T) {
	ctx := context.Background()
	store := buildSimStore(t)
	path, err := ShortestPath(ctx, store, "cat", "kitten", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"kitten", "cat"}, path)
}

func TestShortestPathUnreachableReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := buildSimStore(t)
	path, err := ShortestPath(ctx, store, "cat", "car", 5)
	require.NoError(t, err)
	assert.Nil(t, path)
}
