package compose

import (
	"github.com/arnebakke/wordspace/pkg/vector"
)

// Operator identifies one of spec.md §4.5's vector composition functions.
type Operator int

const (
	Addition Operator = iota
	Subtraction
	Multiplication
	Extrema
	Combined
	Dilation
)

// CombinedWeights are the (a, b, c) mixing weights used by Combined:
// a*u + b*v + c*(u⊙v). The defaults match the original's published
// combination.
type CombinedWeights struct {
	A, B, C float32
}

// DefaultCombinedWeights is the original's published default mix.
func DefaultCombinedWeights() CombinedWeights {
	return CombinedWeights{A: 0.95, B: 0, C: 0.05}
}

// DefaultDilationLambda is the original's default dilation factor.
const DefaultDilationLambda = 2.0

// DenseCompose combines two dense vectors with op. weights and lambda are
// only consulted by Combined and Dilation respectively; pass zero values
// otherwise.
func DenseCompose(op Operator, u, v []float32, weights CombinedWeights, lambda float32) ([]float32, error) {
	switch op {
	case Addition:
		return vector.DenseAdd(u, v)
	case Subtraction:
		return vector.DenseSub(u, v)
	case Multiplication:
		return vector.DenseMul(u, v)
	case Extrema:
		return vector.DenseExtrema(u, v)
	case Combined:
		return denseCombined(u, v, weights)
	case Dilation:
		return denseDilation(u, v, lambda)
	default:
		return vector.DenseAdd(u, v)
	}
}

func denseCombined(u, v []float32, w CombinedWeights) ([]float32, error) {
	mul, err := vector.DenseMul(u, v)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i := range out {
		out[i] = w.A*u[i] + w.B*v[i] + w.C*mul[i]
	}
	return out, nil
}

// denseDilation implements spec.md's literally stated formula
// (u·u)·v + (λ−1)·(u·v)·u. See SPEC_FULL.md §3.5 and DESIGN.md for the
// divergence from the original Java source, which instead uses (u·v) as
// the first coefficient; the spec text is authoritative here.
func denseDilation(u, v []float32, lambda float32) ([]float32, error) {
	uu, err := vector.DenseDot(u, u)
	if err != nil {
		return nil, err
	}
	uv, err := vector.DenseDot(u, v)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	coeff := (lambda - 1) * uv
	for i := range out {
		out[i] = uu*v[i] + coeff*u[i]
	}
	return out, nil
}

// SparseCompose is DenseCompose's sparse-map counterpart.
func SparseCompose(op Operator, u, v map[string]float32, weights CombinedWeights, lambda float32) map[string]float32 {
	switch op {
	case Addition:
		return vector.SparseAdd(u, v)
	case Subtraction:
		return vector.SparseSub(u, v)
	case Multiplication:
		return vector.SparseMul(u, v)
	case Extrema:
		return vector.SparseExtrema(u, v)
	case Combined:
		return sparseCombined(u, v, weights)
	case Dilation:
		return sparseDilation(u, v, lambda)
	default:
		return vector.SparseAdd(u, v)
	}
}

func sparseCombined(u, v map[string]float32, w CombinedWeights) map[string]float32 {
	mul := vector.SparseMul(u, v)
	out := make(map[string]float32, len(u)+len(v))
	for k, val := range u {
		out[k] += w.A * val
	}
	for k, val := range v {
		out[k] += w.B * val
	}
	for k, val := range mul {
		out[k] += w.C * val
	}
	return out
}

func sparseDilation(u, v map[string]float32, lambda float32) map[string]float32 {
	uu := vector.SparseDot(u, u)
	uv := vector.SparseDot(u, v)
	coeff := (lambda - 1) * uv
	out := make(map[string]float32, len(u)+len(v))
	for k, val := range v {
		out[k] = uu * val
	}
	for k, val := range u {
		out[k] += coeff * val
	}
	return out
}
