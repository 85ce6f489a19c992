package velocity

import (
	"github.com/banshee-data/gpr-migration/internal/monitoring"
	"github.com/banshee-data/gpr-migration/migration/radargram"
	"gonum.org/v1/gonum/interp"
)

// Build maps spec onto rg's (sample, trace) grid and returns the
// resulting migration-velocity Field. Constant specs pass the scalar
// through unchanged; Layered specs produce a length-Snum vector; Gridded
// specs produce a Snum x Tnum matrix.
func Build(rg *radargram.Radargram, spec *Spec) (*Field, error) {
	switch spec.Kind {
	case Constant:
		return &Field{Kind: Constant, Constant: spec.Constant}, nil
	case Layered:
		return buildLayered(rg, spec.Rows)
	case Gridded:
		return buildGridded(rg, spec.Rows)
	default:
		return nil, radargram.Errorf(radargram.InvalidVelocitySpec, "unknown velocity spec kind %d", spec.Kind)
	}
}

func rowsToVZ(rows []Row) (v, z []float64) {
	v = make([]float64, len(rows))
	z = make([]float64, len(rows))
	for i, r := range rows {
		v[i] = r.V
		z[i] = r.Z
	}
	return v, z
}

func validateMonotonicZ(z []float64) error {
	for i := 1; i < len(z); i++ {
		if z[i] <= z[i-1] {
			return radargram.Errorf(radargram.InvalidVelocitySpec, "velocity depths must be strictly increasing, got z[%d]=%g <= z[%d]=%g", i, z[i], i-1, z[i-1])
		}
	}
	return nil
}

func buildLayered(rg *radargram.Radargram, rows []Row) (*Field, error) {
	monitoring.Logf("interpolating v(z) velocity profile over %d samples", rg.Snum)

	velV, velZ := rowsToVZ(rows)
	if err := validateMonotonicZ(velZ); err != nil {
		return nil, err
	}

	twtt := rg.TWTT()
	s := len(twtt)

	maxV := maxFloat(velV)
	zs := make([]float64, s)
	for i := 1; i < s; i++ {
		zs[i] = maxV * twtt[i] / 2
	}
	if s > 0 {
		zs[0] = velV[0] * twtt[0] / 2
	}

	// Extend the input table to bracket the full penetration range if the
	// shallowest/deepest provided depths fall inside it.
	minZs := minFloat(zs)
	maxZs := maxFloat(zs)
	if velZ[0] > minZs {
		vShallow := velV[argmin(velZ)]
		velV = append([]float64{vShallow}, velV...)
		velZ = append([]float64{minZs}, velZ...)
	}
	if velZ[len(velZ)-1] < maxZs {
		vDeep := velV[argmax(velZ)]
		velV = append(velV, vDeep)
		velZ = append(velZ, maxZs)
	}

	velT := make([]float64, len(velV))
	for i := range velV {
		velT[i] = 2 * velZ[i] / velV[i]
	}

	var tOfZInterp interp.PiecewiseLinear
	if err := tOfZInterp.Fit(velZ, velT); err != nil {
		return nil, radargram.Wrap(radargram.InvalidVelocitySpec, "fitting t(z) interpolant", err)
	}
	tofz := make([]float64, s)
	for i, z := range zs {
		tofz[i] = tOfZInterp.Predict(z)
	}

	if twtt[s-1] > tofz[len(tofz)-1] {
		return nil, radargram.Errorf(radargram.OutOfRange, "two-way travel time %g exceeds interpolation range %g", twtt[s-1], tofz[len(tofz)-1])
	}
	var zOfTInterp interp.PiecewiseLinear
	if err := zOfTInterp.Fit(tofz, zs); err != nil {
		return nil, radargram.Wrap(radargram.InvalidVelocitySpec, "fitting z(t) interpolant", err)
	}
	zoft := make([]float64, s)
	for i, t := range twtt {
		zoft[i] = zOfTInterp.Predict(t)
	}

	grad := centralGradient(zoft, twtt)
	vmig := make([]float64, s)
	for i, g := range grad {
		vmig[i] = 2 * g
	}
	return &Field{Kind: Layered, Vector: vmig}, nil
}

func buildGridded(rg *radargram.Radargram, rows []Row) (*Field, error) {
	if !rg.DistanceSet() {
		return nil, radargram.Errorf(radargram.DistanceUnset, "v(x,z) migration requires Radargram.Distance to be set")
	}

	monitoring.Logf("interpolating v(x,z) velocity profile over %d samples x %d traces", rg.Snum, rg.Tnum)

	velV, velZ := rowsToVZ(rows)
	velX := make([]float64, len(rows))
	for i, r := range rows {
		velX[i] = r.X
	}

	twtt := rg.TWTT()
	s := len(twtt)
	t := rg.Tnum

	zLo := minFloat(velV) * twtt[0] / 2
	zHi := maxFloat(velV) * twtt[s-1] / 2
	zs := linspace(zLo, zHi, s)

	// Nearest-neighbour grid of the scattered (x, z) velocity samples onto
	// the (distance, zs) mesh.
	mesh := make([][]float64, s)
	for i := 0; i < s; i++ {
		mesh[i] = make([]float64, t)
		for j := 0; j < t; j++ {
			mesh[i][j] = nearestVelocity(rg.Distance[j], zs[i], velX, velZ, velV)
		}
	}

	vmig := make([][]float64, s)
	for i := range vmig {
		vmig[i] = make([]float64, t)
	}

	for col := 0; col < t; col++ {
		velZCol := make([]float64, s)
		velVCol := make([]float64, s)
		copy(velZCol, zs)
		for i := 0; i < s; i++ {
			velVCol[i] = mesh[i][col]
		}

		// Two-way time to depth z_j is 2*integral(0..z_j, dz/v(z)); the
		// integrand is evaluated on the same z grid it is integrated
		// against, so interpolating back onto that grid is the identity.
		velT := make([]float64, s)
		for j := 0; j < s; j++ {
			invV := make([]float64, j+1)
			for k := 0; k <= j; k++ {
				invV[k] = 1 / velVCol[k]
			}
			velT[j] = 2 * trapz(invV, velZCol[:j+1])
		}
		tofz := velT

		var zOfTInterp interp.PiecewiseLinear
		if err := zOfTInterp.Fit(tofz, velZCol); err != nil {
			return nil, radargram.Wrap(radargram.InvalidVelocitySpec, "fitting z(t) interpolant", err)
		}
		if twtt[s-1] > tofz[len(tofz)-1] {
			return nil, radargram.Errorf(radargram.OutOfRange, "two-way travel time %g exceeds interpolation range %g at trace %d", twtt[s-1], tofz[len(tofz)-1], col)
		}
		zoft := make([]float64, s)
		for i, tw := range twtt {
			zoft[i] = zOfTInterp.Predict(tw)
		}
		grad := centralGradient(zoft, twtt)
		for i, g := range grad {
			vmig[i][col] = 2 * g
		}
	}

	return &Field{Kind: Gridded, Grid: vmig}, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

func nearestVelocity(x, z float64, velX, velZ, velV []float64) float64 {
	best := 0
	bestDist := dist2(x, z, velX[0], velZ[0])
	for i := 1; i < len(velV); i++ {
		d := dist2(x, z, velX[i], velZ[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return velV[best]
}

func dist2(x0, z0, x1, z1 float64) float64 {
	dx := x0 - x1
	dz := z0 - z1
	return dx*dx + dz*dz
}
