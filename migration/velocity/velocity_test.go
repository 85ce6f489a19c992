package velocity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/gpr-migration/migration/radargram"
)

func makeRadargram(snum, tnum int, withDistance bool) *radargram.Radargram {
	travelTime := make([]float64, snum)
	for i := range travelTime {
		travelTime[i] = float64(i+1) * 10 // microseconds
	}
	traceInterval := make([]float64, tnum)
	distance := make([]float64, tnum)
	for j := range traceInterval {
		traceInterval[j] = 1.0
		if withDistance {
			distance[j] = float64(j)
		}
	}
	return &radargram.Radargram{
		Snum:          snum,
		Tnum:          tnum,
		Samples:       mat.NewDense(snum, tnum, nil),
		Dt:            1e-8,
		TravelTime:    travelTime,
		TraceInterval: traceInterval,
		Distance:      distance,
	}
}

func TestBuild_Constant_PassesScalarThrough(t *testing.T) {
	rg := makeRadargram(20, 5, false)
	spec := NewConstant(1.5e8)

	f, err := Build(rg, spec)
	require.NoError(t, err)

	want := &Field{Kind: Constant, Constant: 1.5e8}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLayered_RejectsFewerThanTwoRows(t *testing.T) {
	_, err := NewLayered([]Row{{V: 1.5e8, Z: 1}})
	require.Error(t, err)

	var rgErr *radargram.Error
	require.True(t, errors.As(err, &rgErr))
	assert.Equal(t, radargram.InvalidVelocitySpec, rgErr.Kind)
}

func TestBuild_Layered_ProducesPerSampleVector(t *testing.T) {
	rg := makeRadargram(50, 4, false)
	// The deepest row is slower than the shallower peak, so the table's
	// extension to the full penetration depth covers more two-way time
	// than the record requests, comfortably clear of the OutOfRange edge.
	spec, err := NewLayered([]Row{
		{V: 1.5e8, Z: 0},
		{V: 2.0e8, Z: 5},
		{V: 1.8e8, Z: 20},
	})
	require.NoError(t, err)

	f, err := Build(rg, spec)
	require.NoError(t, err)
	require.Equal(t, Layered, f.Kind)
	require.Len(t, f.Vector, rg.Snum)

	for _, v := range f.Vector {
		assert.Greater(t, v, 0.0)
	}
}

func TestBuild_Layered_NonMonotonicDepthIsInvalid(t *testing.T) {
	rg := makeRadargram(10, 4, false)
	spec, err := NewLayered([]Row{
		{V: 1.5e8, Z: 5},
		{V: 1.8e8, Z: 1},
	})
	require.NoError(t, err)

	_, err = Build(rg, spec)
	require.Error(t, err)
	var rgErr *radargram.Error
	require.True(t, errors.As(err, &rgErr))
	assert.Equal(t, radargram.InvalidVelocitySpec, rgErr.Kind)
}

// TestBuild_Layered_TravelTimeBeyondTable_ReturnsOutOfRange covers the
// defensive check in buildLayered: with every row's velocity bounded by
// the table's own max, the z-derived time range always covers the full
// travel-time axis for a physically ordinary table, so this path is
// reached here with a deliberately degenerate row (a negative velocity,
// which NewLayered does not reject) whose naive 2*z/v time runs below
// zero and short-circuits the otherwise-unreachable interpolation range.
func TestBuild_Layered_TravelTimeBeyondTable_ReturnsOutOfRange(t *testing.T) {
	rg := makeRadargram(2, 4, false)
	rg.TravelTime = []float64{5, 10} // microseconds
	spec, err := NewLayered([]Row{
		{V: 1e8, Z: 0},
		{V: -1e8, Z: 1000},
	})
	require.NoError(t, err)

	_, err = Build(rg, spec)
	require.Error(t, err)
	var rgErr *radargram.Error
	require.True(t, errors.As(err, &rgErr))
	assert.Equal(t, radargram.OutOfRange, rgErr.Kind)
}

func TestBuild_Gridded_RequiresDistanceSet(t *testing.T) {
	rg := makeRadargram(10, 4, false)
	spec, err := NewGridded([]Row{
		{V: 1.5e8, Z: 0, X: 0},
		{V: 1.8e8, Z: 10, X: 3},
	})
	require.NoError(t, err)

	_, err = Build(rg, spec)
	require.Error(t, err)
	var rgErr *radargram.Error
	require.True(t, errors.As(err, &rgErr))
	assert.Equal(t, radargram.DistanceUnset, rgErr.Kind)
}

func TestBuild_Gridded_ProducesSnumByTnumMatrix(t *testing.T) {
	rg := makeRadargram(30, 6, true)
	// Traces 0..5 take the 1.7e8 row at the shallow depth-grid points and
	// the fast 3.5e8 row (the global max that sizes the depth grid) at every
	// point below roughly 5 km. The slower shallow part makes each column's
	// integrated two-way time (about 3.23e-4 s at the deepest point) exceed
	// the record's last travel time (3e-4 s), so the fixture stays clear of
	// the OutOfRange boundary.
	spec, err := NewGridded([]Row{
		{V: 1.5e8, Z: 0, X: 0},
		{V: 1.7e8, Z: 10, X: 0},
		{V: 1.9e8, Z: 0, X: 5},
		{V: 3.5e8, Z: 10000, X: 100},
	})
	require.NoError(t, err)

	f, err := Build(rg, spec)
	require.NoError(t, err)
	require.Equal(t, Gridded, f.Kind)
	require.Len(t, f.Grid, rg.Snum)
	for _, row := range f.Grid {
		require.Len(t, row, rg.Tnum)
	}
}

func TestField_AtTau_DispatchesByKind(t *testing.T) {
	cf := &Field{Kind: Constant, Constant: 1.6e8}
	scalar, row, isVector := cf.AtTau(3)
	assert.Equal(t, 1.6e8, scalar)
	assert.Nil(t, row)
	assert.False(t, isVector)

	lf := &Field{Kind: Layered, Vector: []float64{1, 2, 3}}
	scalar, _, isVector = lf.AtTau(1)
	assert.Equal(t, 2.0, scalar)
	assert.False(t, isVector)

	gf := &Field{Kind: Gridded, Grid: [][]float64{{1, 2}, {3, 4}}}
	_, row, isVector = gf.AtTau(1)
	assert.Equal(t, []float64{3, 4}, row)
	assert.True(t, isVector)
}
