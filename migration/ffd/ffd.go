// Package ffd implements the Fourier finite-difference diffraction
// correction used by the v(x,z) branch of the phase-shift recursion.
package ffd

import (
	"math/cmplx"

	"github.com/banshee-data/gpr-migration/migration/band"
)

// Coefficients are the 45-degree-equation tuning constants from Claerbout's
// splitting of the one-way wave equation.
const (
	Alpha = 0.5
	Beta  = 0.25
)

// Update applies one depth step of the Fourier finite-difference operator:
//
//	FFX <- FFXLast + c1*(L*FFX) + c2*(L*FFX - L*FFXLast)
//
// where c1, c2 are built from the per-trace foreground velocity vs, the
// angular frequency w, the sample interval dt and the horizontal sample
// interval dx. L is the banded Laplacian stencil from the band package.
func Update(ffx, ffxLast []complex128, w float64, vs []float64, dt, dx float64, l *band.Stencil) []complex128 {
	n := len(ffx)
	lFFX := l.ApplyComplex(ffx)
	lFFXLast := l.ApplyComplex(ffxLast)

	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		v2 := vs[i] * vs[i]
		c1 := complex(dt*Alpha*v2, 0) / complex(0, 4*w*dx*dx)
		c2 := complex(-Beta*v2/(4*w*w*dx*dx), 0)
		out[i] = ffxLast[i] + c1*lFFX[i] + c2*(lFFX[i]-lFFXLast[i])
	}
	return out
}

// Magnitude is a small diagnostic helper for callers that want to detect
// filter instability (see radargram.FilterInstability). Nothing currently
// raises it; a future magnitude-growth check belongs here.
func Magnitude(ffx []complex128) float64 {
	var sum float64
	for _, v := range ffx {
		sum += cmplx.Abs(v) * cmplx.Abs(v)
	}
	return sum
}
