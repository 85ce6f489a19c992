// Package velocity maps a user-supplied velocity specification onto a
// radargram's (sample, trace) grid, producing the migration-velocity
// field each engine needs in two-way-time coordinates.
package velocity

import "github.com/banshee-data/gpr-migration/migration/radargram"

// Kind tags which variant a Spec or Field holds.
type Kind int

const (
	// Constant is a single uniform velocity, in m/s.
	Constant Kind = iota
	// Layered is v(z): rows of (velocity m/s, depth m).
	Layered
	// Gridded is v(x,z): rows of (velocity m/s, depth m, lateral position m).
	Gridded
)

// Row is one (velocity, depth[, x]) sample of a Layered or Gridded spec.
// X is unused (zero) for Layered rows.
type Row struct {
	V float64
	Z float64
	X float64
}

// Spec is the tagged-union input to Build: a scalar, a v(z) table, or a
// v(x,z) table.
type Spec struct {
	Kind     Kind
	Constant float64
	Rows     []Row
}

// NewConstant builds a uniform-velocity Spec.
func NewConstant(v float64) *Spec {
	return &Spec{Kind: Constant, Constant: v}
}

// NewLayered builds a v(z) Spec from at least two (velocity, depth) rows.
func NewLayered(rows []Row) (*Spec, error) {
	if len(rows) < 2 {
		return nil, radargram.Errorf(radargram.InvalidVelocitySpec, "layered velocity needs at least 2 rows, got %d", len(rows))
	}
	return &Spec{Kind: Layered, Rows: rows}, nil
}

// NewGridded builds a v(x,z) Spec from at least two (velocity, depth, x) rows.
func NewGridded(rows []Row) (*Spec, error) {
	if len(rows) < 2 {
		return nil, radargram.Errorf(radargram.InvalidVelocitySpec, "gridded velocity needs at least 2 rows, got %d", len(rows))
	}
	return &Spec{Kind: Gridded, Rows: rows}, nil
}

// Field is the output of Build, sized to the radargram that produced it.
type Field struct {
	Kind Kind
	// Constant holds the scalar value when Kind == Constant.
	Constant float64
	// Vector holds the per-sample migration velocity (length Snum) when
	// Kind == Layered.
	Vector []float64
	// Grid holds the per-sample, per-trace migration velocity (shape
	// Snum x Tnum) when Kind == Gridded.
	Grid [][]float64
}

// AtTau returns the velocity row for output time index tau: a scalar for
// Constant/Layered, or the per-trace row for Gridded.
func (f *Field) AtTau(tau int) (scalar float64, row []float64, isVector bool) {
	switch f.Kind {
	case Constant:
		return f.Constant, nil, false
	case Layered:
		return f.Vector[tau], nil, false
	default:
		return 0, f.Grid[tau], true
	}
}
