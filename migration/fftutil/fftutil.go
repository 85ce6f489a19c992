// Package fftutil provides the frequency-domain plumbing shared by the
// Stolt and phase-shift engines: next-power-of-two padding lengths, the
// standard fftfreq axis convention, and thin 1-D/2-D complex FFT wrappers
// over gonum's dsp/fourier transform.
package fftutil

import (
	"math"

	"github.com/banshee-data/gpr-migration/migration/cmat"
	"gonum.org/v1/gonum/dsp/fourier"
)

// NextPow2 returns the smallest power of two >= n (n > 0).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// AngularFreq returns 2*pi*fftfreq(n, d): DC first, then positive
// frequencies, then negative frequencies, matching numpy's fftfreq layout.
func AngularFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		var f float64
		switch {
		case i <= (n-1)/2:
			f = float64(i)
		default:
			f = float64(i - n)
		}
		out[i] = 2 * math.Pi * f / (float64(n) * d)
	}
	return out
}

// FFT1D is the unnormalized forward complex DFT, equivalent to numpy.fft.fft.
func FFT1D(x []complex128) []complex128 {
	t := fourier.NewCmplxFFT(len(x))
	dst := make([]complex128, len(x))
	return t.Coefficients(dst, x)
}

// IFFT1D is the 1/n-normalized inverse complex DFT, equivalent to
// numpy.fft.ifft.
func IFFT1D(x []complex128) []complex128 {
	t := fourier.NewCmplxFFT(len(x))
	dst := make([]complex128, len(x))
	return t.Sequence(dst, x)
}

// FFT2 zero-pads real data up to (rows, cols) and returns its 2-D forward
// transform, equivalent to numpy.fft.fft2(data, (rows, cols)). data need
// not already be rows x cols; shorter rows/columns are zero-padded.
func FFT2(data [][]float64, rows, cols int) *cmat.Dense {
	grid := cmat.NewDense(rows, cols)
	for i := 0; i < len(data) && i < rows; i++ {
		for j := 0; j < len(data[i]) && j < cols; j++ {
			grid.Set(i, j, complex(data[i][j], 0))
		}
	}
	return fft2InPlace(grid, rows, cols)
}

func fft2InPlace(grid *cmat.Dense, rows, cols int) *cmat.Dense {
	colT := fourier.NewCmplxFFT(cols)
	tmp := make([]complex128, cols)
	for i := 0; i < rows; i++ {
		row := grid.RowView(i)
		colT.Coefficients(tmp, row)
		copy(row, tmp)
	}
	rowT := fourier.NewCmplxFFT(rows)
	col := make([]complex128, rows)
	tmp2 := make([]complex128, rows)
	for j := 0; j < cols; j++ {
		col = grid.Col(j)
		rowT.Coefficients(tmp2, col)
		grid.SetCol(j, tmp2)
	}
	return grid
}

// IFFT2 returns the 2-D inverse transform of grid, normalized so that
// IFFT2(FFT2(x)) reproduces x (matching numpy.fft.ifft2).
func IFFT2(grid *cmat.Dense) *cmat.Dense {
	rows, cols := grid.Dims()
	out := cmat.NewDense(rows, cols)
	for i := 0; i < rows; i++ {
		copy(out.RowView(i), grid.RowView(i))
	}
	rowT := fourier.NewCmplxFFT(rows)
	tmp := make([]complex128, rows)
	for j := 0; j < cols; j++ {
		col := out.Col(j)
		rowT.Sequence(tmp, col)
		out.SetCol(j, tmp)
	}
	colT := fourier.NewCmplxFFT(cols)
	tmp2 := make([]complex128, cols)
	for i := 0; i < rows; i++ {
		row := out.RowView(i)
		colT.Sequence(tmp2, row)
		copy(row, tmp2)
	}
	return out
}
