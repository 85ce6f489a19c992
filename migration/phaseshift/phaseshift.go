// Package phaseshift implements recursive downward-continuation migration
// in (omega, kx) space for constant, depth-varying, or laterally varying
// velocity (the latter via the Fourier finite-difference correction in
// package ffd).
package phaseshift

import (
	"math"
	"math/cmplx"

	"github.com/banshee-data/gpr-migration/internal/monitoring"
	"github.com/banshee-data/gpr-migration/migration/band"
	"github.com/banshee-data/gpr-migration/migration/cmat"
	"github.com/banshee-data/gpr-migration/migration/ffd"
	"github.com/banshee-data/gpr-migration/migration/fftutil"
	"github.com/banshee-data/gpr-migration/migration/radargram"
	"github.com/banshee-data/gpr-migration/migration/velocity"
)

// Migrate performs phase-shift migration of rg in place, dispatching on
// the kind of vf (the velocity field already built by package velocity).
func Migrate(rg *radargram.Radargram, vf *velocity.Field) error {
	monitoring.Logf("phase-shift migration of %dx%d matrix", rg.Tnum, rg.Snum)

	s, t := rg.Snum, rg.Tnum
	nt := fftutil.NextPow2(s)

	kx := fftutil.AngularFreq(t, rg.Dx())
	ws := fftutil.AngularFreq(nt, rg.Dt)

	data := make([][]float64, s)
	for i := 0; i < s; i++ {
		row := make([]float64, t)
		for j := 0; j < t; j++ {
			row[j] = rg.Samples.At(i, j)
		}
		data[i] = row
	}
	fk := fftutil.FFT2(data, nt, t)

	tk := cmat.NewDense(s, t)

	if vf.Kind == velocity.Constant {
		migrateConstant(fk, tk, vf.Constant, kx, ws, rg.Dt, s)
	} else {
		if err := migrateVariable(fk, tk, vf, kx, ws, rg); err != nil {
			return err
		}
	}

	// TK is already width t (kx was never padded beyond t); no truncation
	// needed. Scale to compensate the row-wise inverse FFT's normalization
	// of the frequency summation performed above.
	tk.Scale(complex(1/float64(s), 0))

	for i := 0; i < s; i++ {
		row := fftutil.IFFT1D(tk.RowView(i))
		for j := 0; j < t; j++ {
			rg.Samples.Set(i, j, real(row[j]))
		}
	}
	return nil
}

func migrateConstant(fk, tk *cmat.Dense, v float64, kx, ws []float64, dt float64, snum int) {
	nt, t := len(ws), len(kx)
	for iw := 0; iw < nt; iw++ {
		w := ws[iw]
		if w == 0 {
			w = 1e-10 / dt
		}
		monitoring.Progressf(iw, 100, "phase-shift frequency %d/%d (constant velocity)", iw, nt)

		mask := make([]int, 0, t)
		cp := make([]complex128, 0, t)
		ffk := make([]complex128, 0, t)
		for ik := 0; ik < t; ik++ {
			vkx2 := (v * kx[ik] / 2) * (v * kx[ik] / 2)
			if vkx2 >= w*w {
				continue
			}
			phase := real(-complex(w*dt, 0) * cmplx.Sqrt(complex(1-vkx2/(w*w), 0)))
			mask = append(mask, ik)
			cp = append(cp, complex(math.Cos(phase), -math.Sin(phase)))
			ffk = append(ffk, fk.At(iw, ik))
		}

		for itau := 0; itau < snum; itau++ {
			for k := range mask {
				ffk[k] *= cp[k]
				tk.AddAt(itau, mask[k], ffk[k])
			}
		}
	}
}

func migrateVariable(fk, tk *cmat.Dense, vf *velocity.Field, kx, ws []float64, rg *radargram.Radargram) error {
	s, t := rg.Snum, rg.Tnum
	nt := len(ws)
	twtt := rg.TWTT()
	dt := rg.Dt
	dx := rg.Dx()

	var stencil *band.Stencil
	var ffxLast []complex128
	if vf.Kind == velocity.Gridded {
		stencil = band.Laplacian1D(t)
	}

	tauMax := twtt[s-1]
	// Evanescent cutoff denominator below preserves the source's literal
	// (and questionably-unit'd) arithmetic: it divides by the raw,
	// not-yet-converted-to-seconds last travel time and then by 1e6 again.
	// See the migration-routines design note on this cutoff; fixing it
	// would change which wavenumbers get zeroed relative to the original.
	rawLast := rg.TravelTime[s-1]

	for itau := 0; itau < s; itau++ {
		monitoring.Progressf(itau, 10, "phase-shift time %g of %g", twtt[itau], tauMax)

		scalar, row, isVector := vf.AtTau(itau)
		var vbg float64
		var vfg []float64
		if isVector {
			vbg = minOf(row)
			vfg = make([]float64, len(row))
			for i, v := range row {
				vfg[i] = v - vbg
			}
		} else {
			vbg = scalar
		}

		for iw := 0; iw < nt; iw++ {
			w := ws[iw]
			if w == 0 {
				w = 1e-10 / dt
			}

			coss := make([]complex128, t)
			phase := make([]float64, t)
			for ik := 0; ik < t; ik++ {
				term := 0.5 * vbg * kx[ik] / w
				coss[ik] = complex(1-term*term, 0)
				phase[ik] = real(-complex(w*dt, 0) * cmplx.Sqrt(coss[ik]))
			}

			rowFK := fk.RowView(iw)
			for ik := 0; ik < t; ik++ {
				cshift := complex(math.Cos(phase[ik]), -math.Sin(phase[ik]))
				rowFK[ik] *= cshift
			}

			if vf.Kind == velocity.Gridded {
				ffx := fftutil.IFFT1D(rowFK)

				for ik := 0; ik < t; ik++ {
					phase2 := (1/vbg - 2/vfg[ik]) * w * dt
					cshift2 := complex(math.Cos(phase2), math.Sin(phase2))
					ffx[ik] *= cshift2
				}

				if itau > 0 {
					ffx = ffd.Update(ffx, ffxLast, w, vfg, dt, dx, stencil)
				}
				ffxLast = ffx

				copy(rowFK, fftutil.FFT1D(ffx))
			}

			threshold := twtt[itau] / rawLast / 1e6
			for ik := 0; ik < t; ik++ {
				if real(coss[ik]) <= threshold*threshold {
					rowFK[ik] = 0
				}
			}

			// NaN entries (the thin-lens phase is not finite where vfg is
			// 0) are skipped, nansum-style.
			for ik := 0; ik < t; ik++ {
				if cmplx.IsNaN(rowFK[ik]) {
					continue
				}
				tk.AddAt(itau, ik, rowFK[ik])
			}
		}
	}
	return nil
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
