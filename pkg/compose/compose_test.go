package compose_test

import (
	"testing"

	. "github.com/arnebakke/wordspace/pkg/compose"
	"github.com/stretchr/testify/assert"
)

func TestExtractAllNGramsBoundaryPadded(t *testing.T) {
	grams := ExtractAllNGrams("cat", 2, 2)
	assert.Equal(t, []string{"<c", "ca", "at", "t>"}, grams)
}

func TestExtractAllNGramsMultipleLengths(t *testing.T) {
	grams := ExtractAllNGrams("ab", 1, 2)
	assert.Equal(t, []string{"<", "a", "b", ">", "<a", "ab", "b>"}, grams)
}

func TestExtractAllNGramsSkipsTooLongN(t *testing.T) {
	grams := ExtractAllNGrams("a", 1, 10)
	assert.Equal(t, []string{"<", "a", ">", "<a", "a>", "<a>"}, grams)
}

func TestExtractNGramsSizeNUnpadded(t *testing.T) {
	grams := ExtractNGramsSizeN("Häuserchen", 3)
	assert.Equal(t, "Häu", grams[0])
	assert.Equal(t, "hen", grams[len(grams)-1])
	assert.Len(t, grams, 8)
}

func TestExtractNGramsSizeNOutOfRangeIsNil(t *testing.T) {
	assert.Nil(t, ExtractNGramsSizeN("cat", 0))
	assert.Nil(t, ExtractNGramsSizeN("cat", 4))
}

func TestDenseComposeAddition(t *testing.T) {
	out, err := DenseCompose(Addition, []float32{1, 2}, []float32{3, 4}, CombinedWeights{}, 0)
	assert.NoError(t, err)
	assert.Equal(t, []float32{4, 6}, out)
}

func TestDenseComposeCombinedDefaultWeights(t *testing.T) {
	w := DefaultCombinedWeights()
	out, err := DenseCompose(Combined, []float32{1, 0}, []float32{0, 1}, w, 0)
	assert.NoError(t, err)
	// a*u + b*v + c*(u*v) with defaults (0.95, 0, 0.05); u*v is all-zero here.
	assert.InDelta(t, 0.95, out[0], 1e-6)
	assert.InDelta(t, 0, out[1], 1e-6)
}

func TestDenseDilationFormula(t *testing.T) {
	u := []float32{1, 0}
	v := []float32{0, 1}
	out, err := DenseCompose(Dilation, u, v, CombinedWeights{}, DefaultDilationLambda)
	assert.NoError(t, err)
	// u.u = 1, u.v = 0, so out = 1*v + (lambda-1)*0*u = v
	assert.Equal(t, []float32{0, 1}, out)
}

func TestSparseComposeSubtraction(t *testing.T) {
	out := SparseCompose(Subtraction, map[string]float32{"a": 3}, map[string]float32{"a": 1, "b": 2}, CombinedWeights{}, 0)
	assert.InDelta(t, 2, out["a"], 1e-6)
	assert.InDelta(t, -2, out["b"], 1e-6)
}

func TestDenseRejectionOrthogonalToV(t *testing.T) {
	u := []float32{1, 1}
	v := []float32{1, 0}
	out, err := DenseRejection(u, v)
	assert.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, out)
}

func TestDenseRejectionZeroVReturnsU(t *testing.T) {
	u := []float32{1, 2}
	out, err := DenseRejection(u, []float32{0, 0})
	assert.NoError(t, err)
	assert.Equal(t, u, out)
}

func TestComposeVectorListRequiresAtLeastTwo(t *testing.T) {
	_, ok := ComposeVectorList(Addition, []map[string]float32{{"a": 1}}, CombinedWeights{}, 0)
	assert.False(t, ok)
}

func TestComposeVectorListSkipsNilAfterFirstTwo(t *testing.T) {
	result, ok := ComposeVectorList(Addition, []map[string]float32{
		{"a": 1}, {"a": 1}, nil, {"a": 1},
	}, CombinedWeights{}, 0)
	assert.True(t, ok)
	assert.InDelta(t, 3, result["a"], 1e-6)
}
