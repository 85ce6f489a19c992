// Package radargram defines the shared data contract every migration
// engine consumes: a dense 2-D sample matrix indexed by (sample, trace),
// the time and spatial axes needed to interpret it, and the tagged error
// taxonomy migration calls raise when that contract is violated.
package radargram

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Radargram is a fully populated 2-D radar section. An external loader
// constructs one; a migration engine mutates Samples in place and returns
// the same value. Velocity fields derived from it are ephemeral and are
// never stored back onto the Radargram.
//
// Snum and Tnum are the declared grid shape (carried over from the
// original acquisition header); Samples is the actual sample matrix. A
// loader bug can let these diverge, which is exactly what Validate
// catches.
type Radargram struct {
	// Snum is the declared number of samples per trace.
	Snum int
	// Tnum is the declared number of traces.
	Tnum int

	// Samples holds the dense real-valued matrix, rows = samples along the
	// time axis, columns = traces along the horizontal axis. Its actual
	// shape should be (Snum, Tnum) but is not assumed to be until Validate
	// has confirmed it.
	Samples *mat.Dense

	// Dt is the sample interval along the time axis, in seconds.
	Dt float64

	// TravelTime is the ordered, strictly increasing two-way travel time
	// of each sample row, in microseconds. TravelTime[0] > 0.
	TravelTime []float64

	// TraceInterval gives the per-trace horizontal spacing, in metres.
	// mean(TraceInterval) is used as the horizontal sample interval dx.
	TraceInterval []float64

	// Distance gives the cumulative horizontal position of each trace, in
	// metres. Required (strictly increasing) only for the v(x,z) branch
	// of VelocityProfile; a degenerate all-zero Distance means "unset".
	Distance []float64
}

// Dx is the mean horizontal trace spacing, in metres.
func (rg *Radargram) Dx() float64 {
	return floats.Sum(rg.TraceInterval) / float64(len(rg.TraceInterval))
}

// TWTT returns the two-way travel time of every sample row in seconds
// (TravelTime converted from microseconds).
func (rg *Radargram) TWTT() []float64 {
	twtt := make([]float64, len(rg.TravelTime))
	for i, t := range rg.TravelTime {
		twtt[i] = t / 1e6
	}
	return twtt
}

// DistanceSet reports whether Distance carries real spatial positions, as
// opposed to the degenerate all-zero "unset" sentinel.
func (rg *Radargram) DistanceSet() bool {
	for _, d := range rg.Distance {
		if d != 0 {
			return true
		}
	}
	return false
}

// Validate checks the invariants every migration engine relies on: that
// Samples actually has shape (Snum, Tnum), that the time and trace axes
// are the right length and well-formed, and that dt/dx are positive.
func (rg *Radargram) Validate() error {
	if rg.Samples == nil {
		return Errorf(ShapeMismatch, "samples matrix is nil")
	}
	r, c := rg.Samples.Dims()
	if r != rg.Snum || c != rg.Tnum {
		return Errorf(ShapeMismatch, "samples shape (%d, %d) does not match declared (snum=%d, tnum=%d)", r, c, rg.Snum, rg.Tnum)
	}
	if len(rg.TravelTime) != rg.Snum {
		return Errorf(ShapeMismatch, "travel_time length %d does not match snum %d", len(rg.TravelTime), rg.Snum)
	}
	if len(rg.TraceInterval) != rg.Tnum {
		return Errorf(ShapeMismatch, "trace_interval length %d does not match tnum %d", len(rg.TraceInterval), rg.Tnum)
	}
	if len(rg.Distance) != rg.Tnum {
		return Errorf(ShapeMismatch, "distance length %d does not match tnum %d", len(rg.Distance), rg.Tnum)
	}
	if rg.Snum > 0 && rg.TravelTime[0] <= 0 {
		return Errorf(ShapeMismatch, "travel_time[0] = %g must be > 0", rg.TravelTime[0])
	}
	for i := 1; i < len(rg.TravelTime); i++ {
		if rg.TravelTime[i] <= rg.TravelTime[i-1] {
			return Errorf(ShapeMismatch, "travel_time must be strictly increasing at index %d", i)
		}
	}
	if rg.Dt <= 0 {
		return Errorf(ShapeMismatch, "dt = %g must be > 0", rg.Dt)
	}
	if rg.Dx() <= 0 {
		return Errorf(ShapeMismatch, "dx = mean(trace_interval) = %g must be > 0", rg.Dx())
	}
	return nil
}
