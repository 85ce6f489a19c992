// Package cmat provides a minimal dense complex-valued matrix, grounded on
// gonum/mat.Dense's own row-major contiguous layout. gonum has no native
// complex Dense type (mat.CDense-style grids don't exist in the shipped
// package), and the frequency-wavenumber planes the phase-shift and Stolt
// engines manipulate are exactly the shape mat.Dense already models, so
// this wrapper mirrors that indexing convention instead of inventing one.
package cmat

// Dense is a row-major dense complex128 matrix.
type Dense struct {
	rows, cols int
	data       []complex128
}

// NewDense allocates a rows x cols matrix of zeros.
func NewDense(rows, cols int) *Dense {
	return &Dense{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// Dims returns the matrix shape.
func (d *Dense) Dims() (rows, cols int) { return d.rows, d.cols }

// At returns the value at (i, j).
func (d *Dense) At(i, j int) complex128 { return d.data[i*d.cols+j] }

// Set stores v at (i, j).
func (d *Dense) Set(i, j int, v complex128) { d.data[i*d.cols+j] = v }

// AddAt accumulates v into (i, j).
func (d *Dense) AddAt(i, j int, v complex128) { d.data[i*d.cols+j] += v }

// RowView returns a mutable slice view of row i.
func (d *Dense) RowView(i int) []complex128 {
	return d.data[i*d.cols : (i+1)*d.cols]
}

// Col returns a fresh copy of column j.
func (d *Dense) Col(j int) []complex128 {
	out := make([]complex128, d.rows)
	for i := 0; i < d.rows; i++ {
		out[i] = d.data[i*d.cols+j]
	}
	return out
}

// SetCol overwrites column j from src.
func (d *Dense) SetCol(j int, src []complex128) {
	for i := 0; i < d.rows; i++ {
		d.data[i*d.cols+j] = src[i]
	}
}

// Scale multiplies every entry by c in place.
func (d *Dense) Scale(c complex128) {
	for i := range d.data {
		d.data[i] *= c
	}
}

// Real returns the real part as a row-major dense real matrix, cropped to
// rows x cols (which may be smaller than d's own shape).
func (d *Dense) Real(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = real(d.At(i, j))
		}
	}
	return out
}
