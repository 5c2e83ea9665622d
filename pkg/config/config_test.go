package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnebakke/wordspace/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disco.config")
	require.NoError(t, os.WriteFile(path, []byte("minFreq=5\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MinFreq)
	assert.Equal(t, 30000, cfg.NumberFeatureWords) // default, unset in file
	assert.Equal(t, vector.Kolb, cfg.SimilarityMeasure)
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disco.config")
	content := "minFreq=5\nsomeFutureKey=banana\nsimilarityMeasure=COSINE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, vector.Cosine, cfg.SimilarityMeasure)
}

func TestLoadDontCompute2ndOrderDeterminesType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disco.config")
	require.NoError(t, os.WriteFile(path, []byte("dontCompute2ndOrder=true\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.DontCompute2ndOrder)
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.MinFreq = 42
	cfg.Stopwords = []string{"the", "a"}

	require.NoError(t, cfg.Write(dir))
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.MinFreq, loaded.MinFreq)
	assert.Equal(t, cfg.Stopwords, loaded.Stopwords)
}

func TestLoadMissingFileIsCorruptConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	var cfgErr *CorruptConfigError
	require.ErrorAs(t, err, &cfgErr)
}
