package phaseshift

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/gpr-migration/migration/radargram"
	"github.com/banshee-data/gpr-migration/migration/velocity"
)

func makeRadargram(snum, tnum int, fill func(i, j int) float64) *radargram.Radargram {
	samples := mat.NewDense(snum, tnum, nil)
	for i := 0; i < snum; i++ {
		for j := 0; j < tnum; j++ {
			samples.Set(i, j, fill(i, j))
		}
	}
	travelTime := make([]float64, snum)
	for i := range travelTime {
		travelTime[i] = float64(i+1) * 10 // microseconds
	}
	traceInterval := make([]float64, tnum)
	for j := range traceInterval {
		traceInterval[j] = 1.0
	}
	return &radargram.Radargram{
		Snum:          snum,
		Tnum:          tnum,
		Samples:       samples,
		Dt:            10e-9,
		TravelTime:    travelTime,
		TraceInterval: traceInterval,
		Distance:      make([]float64, tnum),
	}
}

func TestMigrate_Constant_ZeroInputStaysZero(t *testing.T) {
	rg := makeRadargram(16, 8, func(i, j int) float64 { return 0 })
	vf := &velocity.Field{Kind: velocity.Constant, Constant: 1.68e8}

	require.NoError(t, Migrate(rg, vf))

	s, tr := rg.Samples.Dims()
	for i := 0; i < s; i++ {
		for j := 0; j < tr; j++ {
			assert.InDelta(t, 0, rg.Samples.At(i, j), 1e-6, "(%d,%d)", i, j)
		}
	}
}

func TestMigrate_Constant_PreservesShape(t *testing.T) {
	rg := makeRadargram(32, 16, func(i, j int) float64 {
		if i == 10 && j == 8 {
			return 1
		}
		return 0
	})
	snumBefore, tnumBefore := rg.Samples.Dims()

	vf := &velocity.Field{Kind: velocity.Constant, Constant: 1.68e8}
	require.NoError(t, Migrate(rg, vf))

	snumAfter, tnumAfter := rg.Samples.Dims()
	assert.Equal(t, snumBefore, snumAfter)
	assert.Equal(t, tnumBefore, tnumAfter)
}

func TestMigrate_Constant_OutputIsFinite(t *testing.T) {
	rg := makeRadargram(16, 8, func(i, j int) float64 {
		if i == 5 && j == 4 {
			return 1
		}
		return 0
	})
	vf := &velocity.Field{Kind: velocity.Constant, Constant: 1.68e8}

	require.NoError(t, Migrate(rg, vf))

	s, tr := rg.Samples.Dims()
	for i := 0; i < s; i++ {
		for j := 0; j < tr; j++ {
			v := rg.Samples.At(i, j)
			assert.False(t, math.IsNaN(v), "(%d,%d) is NaN", i, j)
			assert.False(t, math.IsInf(v, 0), "(%d,%d) is Inf", i, j)
		}
	}
}

func TestMigrate_Layered_RunsWithoutError(t *testing.T) {
	rg := makeRadargram(16, 8, func(i, j int) float64 {
		if i == 8 && j == 4 {
			return 1
		}
		return 0
	})
	vector := make([]float64, rg.Snum)
	for i := range vector {
		vector[i] = 1.68e8
	}
	vf := &velocity.Field{Kind: velocity.Layered, Vector: vector}

	require.NoError(t, Migrate(rg, vf))
}

// TestMigrate_Gridded_RunsAndPreservesShape exercises the v(x,z) branch of
// migrateVariable: the Fourier finite-difference correction (ffd.Update)
// and the thin-lens retardation term, both only reachable when vf.Kind is
// Gridded.
func TestMigrate_Gridded_RunsAndPreservesShape(t *testing.T) {
	rg := makeRadargram(30, 6, func(i, j int) float64 {
		if i == 8 && j == 3 {
			return 1
		}
		return 0
	})
	for j := range rg.Distance {
		rg.Distance[j] = float64(j)
	}

	// Same fixture as TestBuild_Gridded_ProducesSnumByTnumMatrix in
	// package velocity: the 1.7e8 row governs the shallow part of every
	// column, which keeps each column's integrated two-way time above the
	// record's last travel time, clear of the OutOfRange boundary.
	spec, err := velocity.NewGridded([]velocity.Row{
		{V: 1.5e8, Z: 0, X: 0},
		{V: 1.7e8, Z: 10, X: 0},
		{V: 1.9e8, Z: 0, X: 5},
		{V: 3.5e8, Z: 10000, X: 100},
	})
	require.NoError(t, err)

	vf, err := velocity.Build(rg, spec)
	require.NoError(t, err)
	require.Equal(t, velocity.Gridded, vf.Kind)

	snumBefore, tnumBefore := rg.Samples.Dims()
	require.NoError(t, Migrate(rg, vf))

	snumAfter, tnumAfter := rg.Samples.Dims()
	assert.Equal(t, snumBefore, snumAfter)
	assert.Equal(t, tnumBefore, tnumAfter)

	for i := 0; i < snumAfter; i++ {
		for j := 0; j < tnumAfter; j++ {
			v := rg.Samples.At(i, j)
			assert.False(t, math.IsNaN(v), "(%d,%d) is NaN", i, j)
			assert.False(t, math.IsInf(v, 0), "(%d,%d) is Inf", i, j)
		}
	}
}
