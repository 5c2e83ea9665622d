package wsopen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arnebakke/wordspace/pkg/config"
	"github.com/arnebakke/wordspace/pkg/densestore"
	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/arnebakke/wordspace/pkg/wordspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDetectsDenseFile(t *testing.T) {
	cfg := config.Default()
	cfg.SimilarityMeasure = vector.Cosine
	b := densestore.NewBuilder(cfg, 2)
	b.AddWord("cat", 1, []float32{1, 0})
	store, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Serialize(&buf))

	dir := t.TempDir()
	path := filepath.Join(dir, "space.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	handle, err := Open(context.Background(), path, false)
	require.NoError(t, err)
	defer handle.Close()
	assert.Equal(t, 1, handle.NumberOfWords())
}

func TestOpenMissingPathIsCorruptIndexError(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope"), false)
	require.Error(t, err)
	var idxErr *wordspace.CorruptIndexError
	require.ErrorAs(t, err, &idxErr)
}
