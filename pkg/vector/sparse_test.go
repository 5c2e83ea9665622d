package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseAddUnionOfKeys(t *testing.T) {
	v1 := map[string]float32{"a": 1, "b": 2}
	v2 := map[string]float32{"b": 3, "c": 4}
	out := SparseAdd(v1, v2)
	assert.Equal(t, map[string]float32{"a": 1, "b": 5, "c": 4}, out)
}

func TestSparseSubNegatesExclusiveRHS(t *testing.T) {
	v1 := map[string]float32{"a": 1}
	v2 := map[string]float32{"a": 1, "b": 5}
	out := SparseSub(v1, v2)
	assert.Equal(t, map[string]float32{"a": float32(0), "b": float32(-5)}, out)
}

func TestSparseMulIntersectionOnly(t *testing.T) {
	v1 := map[string]float32{"a": 2, "b": 3}
	v2 := map[string]float32{"b": 4, "c": 5}
	out := SparseMul(v1, v2)
	assert.Equal(t, map[string]float32{"b": float32(12)}, out)
}

func TestSparseDotProduct(t *testing.T) {
	v1 := map[string]float32{"a": 2, "b": 3}
	v2 := map[string]float32{"b": 4, "c": 5}
	assert.Equal(t, float32(12), SparseDot(v1, v2))
}

func TestSparseNormalize(t *testing.T) {
	v := map[string]float32{"a": 3, "b": 4}
	out := SparseNormalize(v)
	assert.InDelta(t, float32(1.0), SparseNorm(out), 1e-6)
}
