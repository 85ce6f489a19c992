// Package kirchhoff implements space-time diffraction-summation migration:
// for every apex pixel, a weighted sum over every trace of the amplitude
// (and its time derivative) sampled along that trace's travel-time
// hyperbola to the apex.
package kirchhoff

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/gpr-migration/internal/monitoring"
	"github.com/banshee-data/gpr-migration/migration/radargram"
)

// Migrate performs constant-velocity Kirchhoff migration of rg in place.
// When nearField is true the near-field term is added to the usual
// far-field approximation.
func Migrate(rg *radargram.Radargram, v float64, nearField bool) error {
	s, t := rg.Snum, rg.Tnum
	monitoring.Logf("Kirchhoff migration of %dx%d matrix (near field = %v)", t, s, nearField)

	twtt := rg.TWTT()
	distance := rg.Distance

	deriv := timeDerivative(rg, twtt)

	out := make([][]float64, s)
	for i := range out {
		out[i] = make([]float64, t)
	}

	var g errgroup.Group
	for ti := 0; ti < s; ti++ {
		ti := ti
		g.Go(func() error {
			monitoring.Progressf(ti, 50, "Kirchhoff apex row %d/%d", ti, s)
			z := v * twtt[ti] / 2
			for xj := 0; xj < t; xj++ {
				out[ti][xj] = apex(rg, deriv, twtt, distance, v, z, xj, nearField)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i := 0; i < s; i++ {
		for j := 0; j < t; j++ {
			rg.Samples.Set(i, j, out[i][j])
		}
	}
	return nil
}

// apex sums the far-field (and optional near-field) contribution of every
// trace to output pixel (tau_i, x_j), given its apex depth z.
func apex(rg *radargram.Radargram, deriv [][]float64, twtt, distance []float64, v, z float64, xj int, nearField bool) float64 {
	s, t := rg.Snum, rg.Tnum
	xpos := distance[xj]

	var far, near float64
	maxTime := twtt[s-1]
	for k := 0; k < t; k++ {
		dx := distance[k] - xpos
		r := math.Sqrt(dx*dx + z*z)
		cosTheta := z / r
		if math.IsNaN(cosTheta) {
			cosTheta = 0
		}

		travel := 2 * r / v
		if travel > maxTime {
			continue
		}
		didx := nearestIndex(twtt, travel)

		far += deriv[didx][k] * cosTheta / v

		if nearField {
			contrib := rg.Samples.At(didx, k) * cosTheta / (r * r)
			if !math.IsNaN(contrib) {
				near += contrib
			}
		}
	}
	return (far + near) / (2 * math.Pi)
}

// timeDerivative returns the centred finite difference of samples along
// the time (row) axis, one-sided at the first and last row.
func timeDerivative(rg *radargram.Radargram, twtt []float64) [][]float64 {
	s, t := rg.Snum, rg.Tnum
	d := make([][]float64, s)
	for i := range d {
		d[i] = make([]float64, t)
	}
	for j := 0; j < t; j++ {
		for i := 0; i < s; i++ {
			switch {
			case s == 1:
				d[i][j] = 0
			case i == 0:
				d[i][j] = (rg.Samples.At(1, j) - rg.Samples.At(0, j)) / (twtt[1] - twtt[0])
			case i == s-1:
				d[i][j] = (rg.Samples.At(s-1, j) - rg.Samples.At(s-2, j)) / (twtt[s-1] - twtt[s-2])
			default:
				d[i][j] = (rg.Samples.At(i+1, j) - rg.Samples.At(i-1, j)) / (twtt[i+1] - twtt[i-1])
			}
		}
	}
	return d
}

// nearestIndex returns the index of the element of xs closest to x. xs is
// assumed sorted ascending.
func nearestIndex(xs []float64, x float64) int {
	lo, hi := 0, len(xs)
	for lo < hi {
		mid := (lo + hi) / 2
		if xs[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	if lo == len(xs) {
		return len(xs) - 1
	}
	if x-xs[lo-1] <= xs[lo]-x {
		return lo - 1
	}
	return lo
}
