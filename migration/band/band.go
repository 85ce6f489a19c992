// Package band implements a banded second-difference style operator with
// Dirichlet boundary rows, exposing only matrix-vector application. A
// general sparse-matrix dependency is deliberately avoided: every use of
// this stencil in the migration core immediately multiplies it by a
// vector, so a purpose-built banded applier is all that is needed.
package band

// Stencil is an N x N banded matrix with diagonal value D, first
// off-diagonals K1 (super) / K2 (sub), and optional second off-diagonals
// at offset +-Nx with values K3 / K4. The first row is overridden to
// [1, 0, ..., 0] and the last row to all ones. That last row is not a
// second identity row; it is kept exactly as the ported boundary
// condition defines it.
type Stencil struct {
	N          int
	D, K1, K2  float64
	K3, K4     float64
	Nx         int
}

// Laplacian1D builds the discrete second-difference (1-D Laplacian)
// stencil used by the Fourier finite-difference diffraction operator:
// diagonal -2, both first off-diagonals +1, no second off-diagonal.
func Laplacian1D(n int) *Stencil {
	return &Stencil{N: n, D: -2, K1: 1, K2: 1}
}

// Apply computes y = A*v for a real vector v of length N.
func (s *Stencil) Apply(v []float64) []float64 {
	n := s.N
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = s.row(i, func(j int) float64 { return v[j] })
	}
	s.applyBoundary(y, v)
	return y
}

// ApplyComplex computes y = A*v for a complex vector v of length N. The
// stencil coefficients themselves stay real; only v (and so y) is
// complex, matching how the diffraction operator uses this stencil on
// frequency-space data.
func (s *Stencil) ApplyComplex(v []complex128) []complex128 {
	n := s.N
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		var acc complex128
		acc += complex(s.D, 0) * v[i]
		if i+1 < n {
			acc += complex(s.K1, 0) * v[i+1]
		}
		if i-1 >= 0 {
			acc += complex(s.K2, 0) * v[i-1]
		}
		if s.Nx > 0 {
			if i+s.Nx < n {
				acc += complex(s.K3, 0) * v[i+s.Nx]
			}
			if i-s.Nx >= 0 {
				acc += complex(s.K4, 0) * v[i-s.Nx]
			}
		}
		y[i] = acc
	}
	// Dirichlet boundary: first row is the identity row, last row sums
	// every entry of v (see type doc).
	if n > 0 {
		y[0] = v[0]
	}
	if n > 1 {
		var last complex128
		for _, vi := range v {
			last += vi
		}
		y[n-1] = last
	}
	return y
}

func (s *Stencil) row(i int, v func(int) float64) float64 {
	n := s.N
	acc := s.D * v(i)
	if i+1 < n {
		acc += s.K1 * v(i+1)
	}
	if i-1 >= 0 {
		acc += s.K2 * v(i-1)
	}
	if s.Nx > 0 {
		if i+s.Nx < n {
			acc += s.K3 * v(i+s.Nx)
		}
		if i-s.Nx >= 0 {
			acc += s.K4 * v(i-s.Nx)
		}
	}
	return acc
}

func (s *Stencil) applyBoundary(y, v []float64) {
	n := s.N
	if n > 0 {
		y[0] = v[0]
	}
	if n > 1 {
		var last float64
		for _, vi := range v {
			last += vi
		}
		y[n-1] = last
	}
}
