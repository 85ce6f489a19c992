// Package migration is the public entry point to the three migration
// engines: Kirchhoff diffraction summation, Stolt f-k migration, and
// Gazdag/phase-shift recursive downward continuation. Each exposes a
// single operation that validates its Radargram, builds whatever velocity
// field it needs, and mutates Samples in place.
package migration

import (
	"github.com/banshee-data/gpr-migration/internal/monitoring"
	"github.com/banshee-data/gpr-migration/migration/kirchhoff"
	"github.com/banshee-data/gpr-migration/migration/phaseshift"
	"github.com/banshee-data/gpr-migration/migration/radargram"
	"github.com/banshee-data/gpr-migration/migration/stolt"
	"github.com/banshee-data/gpr-migration/migration/velocity"
)

// Default migration velocities, in m/s: the speed of radio waves in
// glacial ice. Callers migrating other media override both.
const (
	DefaultKirchhoffVelocity = 1.69e8
	DefaultStoltVelocity     = 1.68e8
)

// Config collects the tuning knobs shared across a session of migration
// calls, following the same commented-defaults builder style as the rest
// of the configuration surface.
type Config struct {
	// KirchhoffVelocity is the constant migration velocity used by
	// Kirchhoff when the caller supplies none (default: 1.69e8 m/s).
	KirchhoffVelocity float64
	// KirchhoffNearField enables the near-field correction term in
	// addition to the far-field approximation (default: false).
	KirchhoffNearField bool
	// StoltVelocity is the constant migration velocity used by Stolt
	// (default: 1.68e8 m/s).
	StoltVelocity float64
}

// DefaultConfig returns a Config with the documented field defaults.
func DefaultConfig() *Config {
	return &Config{
		KirchhoffVelocity:  DefaultKirchhoffVelocity,
		KirchhoffNearField: false,
		StoltVelocity:      DefaultStoltVelocity,
	}
}

// WithKirchhoffVelocity overrides the constant Kirchhoff migration velocity.
func (c *Config) WithKirchhoffVelocity(v float64) *Config {
	c.KirchhoffVelocity = v
	return c
}

// WithKirchhoffNearField toggles the Kirchhoff near-field correction.
func (c *Config) WithKirchhoffNearField(enabled bool) *Config {
	c.KirchhoffNearField = enabled
	return c
}

// WithStoltVelocity overrides the constant Stolt migration velocity.
func (c *Config) WithStoltVelocity(v float64) *Config {
	c.StoltVelocity = v
	return c
}

// MigrateKirchhoff performs space-time diffraction-summation migration of
// rg in place, using cfg's KirchhoffVelocity/KirchhoffNearField (or the
// package defaults if cfg is nil).
func MigrateKirchhoff(rg *radargram.Radargram, cfg *Config) error {
	if err := rg.Validate(); err != nil {
		return err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return kirchhoff.Migrate(rg, cfg.KirchhoffVelocity, cfg.KirchhoffNearField)
}

// MigrateStolt performs constant-velocity f-k migration of rg in place,
// using cfg's StoltVelocity (or the package default if cfg is nil).
func MigrateStolt(rg *radargram.Radargram, cfg *Config) error {
	if err := rg.Validate(); err != nil {
		return err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return stolt.Migrate(rg, cfg.StoltVelocity)
}

// MigratePhaseShift performs recursive downward-continuation migration of
// rg in place for the given velocity specification. If velocityFile is
// non-empty it is parsed (overriding spec) into the VelocitySpec consumed
// by the migration.
func MigratePhaseShift(rg *radargram.Radargram, spec *velocity.Spec, velocityFile string) error {
	if err := rg.Validate(); err != nil {
		return err
	}

	if velocityFile != "" {
		fileSpec, err := velocity.LoadSpecFile(velocityFile)
		if err != nil {
			return err
		}
		spec = fileSpec
	}

	vf, err := velocity.Build(rg, spec)
	if err != nil {
		return err
	}

	monitoring.Logf("migrating %dx%d radargram with phase-shift engine", rg.Tnum, rg.Snum)
	return phaseshift.Migrate(rg, vf)
}
