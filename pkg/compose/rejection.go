package compose

import "github.com/arnebakke/wordspace/pkg/vector"

// DenseRejection computes the vector rejection of u from v: the component
// of u orthogonal to v, per spec.md §4.7. Returns u unchanged if v is the
// zero vector.
func DenseRejection(u, v []float32) ([]float32, error) {
	vv, err := vector.DenseDot(v, v)
	if err != nil {
		return nil, err
	}
	if vv == 0 {
		out := make([]float32, len(u))
		copy(out, u)
		return out, nil
	}
	uv, err := vector.DenseDot(u, v)
	if err != nil {
		return nil, err
	}
	scale := uv / vv
	out := make([]float32, len(u))
	for i := range out {
		out[i] = u[i] - scale*v[i]
	}
	return out, nil
}

// SparseRejection is DenseRejection's sparse-map counterpart.
func SparseRejection(u, v map[string]float32) map[string]float32 {
	vv := vector.SparseDot(v, v)
	if vv == 0 {
		out := make(map[string]float32, len(u))
		for k, val := range u {
			out[k] = val
		}
		return out
	}
	uv := vector.SparseDot(u, v)
	scale := uv / vv
	out := make(map[string]float32, len(u)+len(v))
	for k, val := range u {
		out[k] = val
	}
	for k, val := range v {
		out[k] -= scale * val
	}
	return out
}
