// Package season partitions the year into the canicula (dry) and wet
// precipitation regimes and dispatches the transitions between them.
package season

import (
	"errors"
	"fmt"
	"math"
)

// DaysPerYear length of the annual loop
const DaysPerYear = 365

var ErrConfig = errors.New("invalid seasonal configuration")

// Regime precipitation regime
type Regime int

const (
	Wet Regime = iota
	Dry
)

func (r Regime) String() string {
	switch r {
	case Wet:
		return "wet"
	case Dry:
		return "dry"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// Storms parameterises one regime's storm arrival process
type Storms struct {
	MeanStorm      float64 `yaml:"mean_storm"`      // [hr]
	MeanInterstorm float64 `yaml:"mean_interstorm"` // [hr]
	MeanDepth      float64 `yaml:"mean_depth"`      // [mm]
}

// Config the immutable seasonal parameters of a run
type Config struct {
	CaniculaStart int    `yaml:"canicula_start"` // Julian day the dry season begins
	CaniculaEnd   int    `yaml:"canicula_end"`   // first Julian day after the dry season
	Wet           Storms `yaml:"wet"`
	Dry           Storms `yaml:"dry"`
}

// DefaultConfig canicula from day 1 through day 99
func DefaultConfig() Config {
	return Config{
		CaniculaStart: 1,
		CaniculaEnd:   100,
		Wet:           Storms{MeanStorm: 2 * 24, MeanInterstorm: 5 * 24, MeanDepth: 10.},
		Dry:           Storms{MeanStorm: 2 * 24, MeanInterstorm: 20 * 24, MeanDepth: .5},
	}
}

// Validate checks 0 <= start < end <= 365. Non-positive storm parameters are
// not errors here; the precipitation generator flags and clamps them.
func (c Config) Validate() error {
	if c.CaniculaStart < 0 || c.CaniculaStart >= c.CaniculaEnd || c.CaniculaEnd > DaysPerYear {
		return fmt.Errorf("%w: canicula [%d, %d) must satisfy 0 <= start < end <= %d", ErrConfig, c.CaniculaStart, c.CaniculaEnd, DaysPerYear)
	}
	return nil
}

// Regime returns DRY for start <= julian < end and WET for every other day
func (c Config) Regime(julian int) Regime {
	if julian >= c.CaniculaStart && julian < c.CaniculaEnd {
		return Dry
	}
	return Wet
}

// Storms returns the storm parameters of a regime
func (c Config) Storms(r Regime) Storms {
	if r == Dry {
		return c.Dry
	}
	return c.Wet
}

const julianTol = 1e-6 // [day]

// Julian returns the zero-based day of year of a clock expressed in years
func Julian(t float64) int {
	d := (t - math.Floor(t)) * DaysPerYear
	j := int(math.Floor(d+julianTol)) % DaysPerYear
	if j < 0 {
		j += DaysPerYear
	}
	return j
}
