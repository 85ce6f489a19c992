// Package stolt implements constant-velocity f-k migration: a single
// remapping from frequency-wavenumber to wavenumber-wavenumber space via
// 2-D FFTs, bilinear interpolation, and an obliquity scaling.
package stolt

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/gpr-migration/internal/monitoring"
	"github.com/banshee-data/gpr-migration/migration/cmat"
	"github.com/banshee-data/gpr-migration/migration/fftutil"
	"github.com/banshee-data/gpr-migration/migration/radargram"
)

// Migrate performs constant-velocity Stolt (f-k) migration of rg in
// place.
func Migrate(rg *radargram.Radargram, v float64) error {
	s, t := rg.Snum, rg.Tnum
	monitoring.Logf("Stolt migration of %dx%d matrix", t, s)

	nt := fftutil.NextPow2(s)
	nx := fftutil.NextPow2(t)

	data := make([][]float64, s)
	for i := 0; i < s; i++ {
		row := make([]float64, t)
		for j := 0; j < t; j++ {
			row[j] = rg.Samples.At(i, j)
		}
		data[i] = row
	}
	fk := fftutil.FFT2(data, nt, nx)

	ws := fftutil.AngularFreq(nt, rg.Dt)
	kx := fftutil.AngularFreq(nx, rg.Dx())
	kz := make([]float64, nt)
	for i, w := range ws {
		kz[i] = 2 * w / v
	}

	interpReal, interpImag := newGridInterpolators(kx, ws, fk)

	kk := cmat.NewDense(nt, nx)

	var g errgroup.Group
	for zj := 0; zj < nt; zj++ {
		zj := zj
		g.Go(func() error {
			monitoring.Progressf(zj, 100, "Stolt interpolating %d MHz", int(ws[zj]/1e6/(2*math.Pi)))
			for xi := 0; xi < nx; xi++ {
				kxi := kx[xi]
				kzj := kz[zj]
				// The resampled frequency carries the sign of kz, so
				// negative-frequency rows read negative-frequency data.
				wsj := math.Copysign(v/2*math.Sqrt(kzj*kzj+kxi*kxi), kzj)
				re := interpReal(kxi, wsj)
				im := interpImag(kxi, wsj)
				scale := math.Abs(kzj) / math.Sqrt(kxi*kxi+kzj*kzj)
				kk.Set(zj, xi, complex(re*scale, im*scale))
			}
			return nil
		})
	}
	_ = g.Wait()

	kk.Set(0, 0, 0)

	out := fftutil.IFFT2(kk)
	real := out.Real(s, t)
	for i := 0; i < s; i++ {
		for j := 0; j < t; j++ {
			rg.Samples.Set(i, j, real[i][j])
		}
	}
	return nil
}

// newGridInterpolators returns bilinear-interpolating functions over the
// real and imaginary parts of fk, addressed by (kx, w) coordinates rather
// than grid indices. fftfreq axes are not sorted (DC, positive, then
// negative frequencies); both axes are sorted once up front so a plain
// binary search can bracket an arbitrary query point. Queries outside the
// sampled domain are clamped to the nearest edge rather than extrapolated.
func newGridInterpolators(kx, ws []float64, fk *cmat.Dense) (atReal, atImag func(x, y float64) float64) {
	nx, nt := len(kx), len(ws)

	xOrder := make([]int, nx)
	for i := range xOrder {
		xOrder[i] = i
	}
	sort.Slice(xOrder, func(a, b int) bool { return kx[xOrder[a]] < kx[xOrder[b]] })
	xs := make([]float64, nx)
	for i, idx := range xOrder {
		xs[i] = kx[idx]
	}

	yOrder := make([]int, nt)
	for i := range yOrder {
		yOrder[i] = i
	}
	sort.Slice(yOrder, func(a, b int) bool { return ws[yOrder[a]] < ws[yOrder[b]] })
	ys := make([]float64, nt)
	for i, idx := range yOrder {
		ys[i] = ws[idx]
	}

	at := func(part func(complex128) float64) func(x, y float64) float64 {
		return func(x, y float64) float64 {
			xi0, xi1, xf := bracket(xs, x)
			yi0, yi1, yf := bracket(ys, y)
			v00 := part(fk.At(yOrder[yi0], xOrder[xi0]))
			v01 := part(fk.At(yOrder[yi0], xOrder[xi1]))
			v10 := part(fk.At(yOrder[yi1], xOrder[xi0]))
			v11 := part(fk.At(yOrder[yi1], xOrder[xi1]))
			top := v00*(1-xf) + v01*xf
			bot := v10*(1-xf) + v11*xf
			return top*(1-yf) + bot*yf
		}
	}
	return at(real), at(imag)
}

// bracket finds indices i0, i1 = i0+1 in sorted xs bracketing x (clamped
// to the domain), and the fractional position f in [0, 1] of x between
// xs[i0] and xs[i1]. When x equals an interior grid value exactly, it
// returns i0 = i1 = that index and f = 0.
func bracket(xs []float64, x float64) (i0, i1 int, f float64) {
	n := len(xs)
	if x <= xs[0] {
		return 0, min(1, n-1), 0
	}
	if x >= xs[n-1] {
		return max(0, n-2), n - 1, 1
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return i, i, 0
	}
	i0, i1 = i-1, i
	f = (x - xs[i0]) / (xs[i1] - xs[i0])
	return i0, i1, f
}
