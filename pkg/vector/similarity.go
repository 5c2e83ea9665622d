package vector

import "math"

// Measure identifies which similarity measure to apply. The zero value is
// Cosine.
type Measure int

const (
	Cosine Measure = iota
	Kolb
)

func (m Measure) String() string {
	if m == Kolb {
		return "KOLB"
	}
	return "COSINE"
}

// ParseMeasure maps a disco.config-style name ("COSINE"|"KOLB") to a
// Measure. Unknown names default to Cosine.
func ParseMeasure(s string) Measure {
	if s == "KOLB" || s == "kolb" {
		return Kolb
	}
	return Cosine
}

// Dense computes the similarity between two dense vectors of equal length
// according to m. Cosine ranges [-1,1]; KOLB ranges [0,1] and is only
// well-defined for non-negative components.
func (m Measure) Dense(u, v []float32) (float32, error) {
	if m == Kolb {
		return kolbDense(u, v)
	}
	return cosineDense(u, v)
}

// Sparse computes the similarity between two sparse vectors according to m.
func (m Measure) Sparse(u, v map[string]float32) float32 {
	if m == Kolb {
		return kolbSparse(u, v)
	}
	return cosineSparse(u, v)
}

func cosineDense(u, v []float32) (float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return 0, err
	}
	dot, _ := DenseDot(u, v)
	nu, nv := DenseNorm(u), DenseNorm(v)
	if nu == 0 || nv == 0 {
		return 0, nil
	}
	return dot / (nu * nv), nil
}

func cosineSparse(u, v map[string]float32) float32 {
	dot := SparseDot(u, v)
	nu, nv := SparseNorm(u), SparseNorm(v)
	if nu == 0 || nv == 0 {
		return 0
	}
	return dot / (nu * nv)
}

// kolbDense implements the Dice-coefficient measure from
// Kolb's "Experiments on the difference between semantic similarity and
// relatedness": numerator sums u_i+v_i over dimensions where both are
// positive, denominator sums u_i+v_i over all dimensions.
func kolbDense(u, v []float32) (float32, error) {
	if err := shapeCheck(u, v); err != nil {
		return 0, err
	}
	var nenner, zaehler float32
	for i := range u {
		nenner += u[i] + v[i]
		if u[i] > 0 && v[i] > 0 {
			zaehler += u[i] + v[i]
		}
	}
	if nenner == 0 {
		return 0, nil
	}
	return 2 * zaehler / nenner, nil
}

func kolbSparse(u, v map[string]float32) float32 {
	var nenner, zaehler float32
	for feature, a := range u {
		nenner += a
		if b, ok := v[feature]; ok {
			zaehler += a + b
		}
	}
	for _, b := range v {
		nenner += b
	}
	if nenner == 0 {
		return 0
	}
	return 2 * zaehler / nenner
}

// RemapCosineToUnit maps a cosine similarity in [-1,1] to [0,1], as used
// by short-text similarity when the configured measure is Cosine.
func RemapCosineToUnit(cos float32) float32 {
	return cos/2.0 + 0.5
}

// Abs32 is a small helper kept alongside the measures so callers needn't
// reach for math.Abs and a manual float64 round-trip at call sites.
func Abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
