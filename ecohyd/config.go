package ecohyd

import (
	"errors"
	"fmt"

	"github.com/WylieMabel/TreesAndThat/grid"
	"github.com/WylieMabel/TreesAndThat/season"
	"github.com/WylieMabel/TreesAndThat/soil"
	"github.com/WylieMabel/TreesAndThat/veg"
)

var ErrConfig = errors.New("invalid ecohydrology configuration")

// rainfall generation modes
const (
	RainSeries   = "series"
	RainOnTheFly = "onthefly"
)

// UTMOrigin locates the grid for the radiation latitude
type UTMOrigin struct {
	Easting  float64 `yaml:"easting"`
	Northing float64 `yaml:"northing"`
	Zone     int     `yaml:"zone"`
	Northern bool    `yaml:"northern"`
}

// SoilHealth bounds and smoothing rate of the end-of-year soil health update
type SoilHealth struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
	Rate  float64 `yaml:"rate"`
}

// Initial field values assigned before the components are built
type Initial struct {
	Saturation float64 `yaml:"saturation"`
	Rainfall   float64 `yaml:"rainfall"` // [mm/day]
	Cover      float64 `yaml:"cover"`
	LAI        float64 `yaml:"lai"`
	Tavg       float64 `yaml:"tavg"` // [°C]
	Tmax       float64 `yaml:"tmax"`
	Tmin       float64 `yaml:"tmin"`
}

// Config annual stepper settings
type Config struct {
	Rows     int        `yaml:"rows"`
	Cols     int        `yaml:"cols"`
	CellSize float64    `yaml:"cellsize"` // [m]
	Latitude float64    `yaml:"latitude"` // [deg], ignored when UTM is set
	UTM      *UTMOrigin `yaml:"utm,omitempty"`
	GridDef  string     `yaml:"grid_def,omitempty"` // .gdef path, overrides rows, cols, cellsize and the UTM position

	Season     season.Config `yaml:"season"`
	StartTime  float64       `yaml:"start_time"` // [yr]
	RainMode   string        `yaml:"rain_mode"`
	Seed       int64         `yaml:"seed"`
	ReinitSoil bool          `yaml:"reinit_soil"` // re-derive soil parameters at each season transition
	SoilStep   float64       `yaml:"soil_step"`   // [hr]
	SoilHealth SoilHealth    `yaml:"soil_health"`
	Initial    Initial       `yaml:"initial"`

	Soil [grid.NumPFT]soil.Params `yaml:"-"`
	Veg  [grid.NumPFT]veg.Params  `yaml:"-"`
}

// DefaultConfig a 51×51 valley of 5 m cells with a canicula from day 1 to day 100
func DefaultConfig() Config {
	return Config{
		Rows:       51,
		Cols:       51,
		CellSize:   5.,
		Latitude:   14.,
		Season:     season.DefaultConfig(),
		StartTime:  1. / season.DaysPerYear,
		RainMode:   RainSeries,
		Seed:       1,
		ReinitSoil: true,
		SoilStep:   24.,
		SoilHealth: SoilHealth{Lower: 1., Upper: 1.3, Rate: .5},
		Initial:    Initial{Saturation: .75, Rainfall: 1., Cover: 1., LAI: 2., Tavg: 23., Tmax: 26., Tmin: 20.},
		Soil:       soil.DefaultParams(),
		Veg:        veg.DefaultParams(),
	}
}

// LoadGridDef reads GridDef, when set, into the grid dimensions; the grid
// centre becomes the UTM position. Returns nil without a GridDef.
func (c *Config) LoadGridDef() (*grid.Definition, error) {
	if c.GridDef == "" {
		return nil, nil
	}
	gd, err := grid.ReadGDEF(c.GridDef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	c.Rows, c.Cols, c.CellSize = gd.Rows, gd.Cols, gd.CellSize
	if c.UTM != nil {
		u := *c.UTM
		u.Easting, u.Northing = gd.Centre()
		c.UTM = &u
	}
	return &gd, nil
}

// Validate checks the settings a run cannot start without
func (c Config) Validate() error {
	if err := c.Season.Validate(); err != nil {
		return err
	}
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid of %d×%d cells", ErrConfig, c.Rows, c.Cols)
	case c.CellSize <= 0.:
		return fmt.Errorf("%w: cell size %f", ErrConfig, c.CellSize)
	case c.StartTime < 0.:
		return fmt.Errorf("%w: start time %f", ErrConfig, c.StartTime)
	case c.RainMode != RainSeries && c.RainMode != RainOnTheFly:
		return fmt.Errorf("%w: unknown rain mode %q", ErrConfig, c.RainMode)
	case c.SoilHealth.Lower > c.SoilHealth.Upper:
		return fmt.Errorf("%w: soil health bounds %f > %f", ErrConfig, c.SoilHealth.Lower, c.SoilHealth.Upper)
	case c.SoilHealth.Rate <= 0. || c.SoilHealth.Rate > 1.:
		return fmt.Errorf("%w: soil health rate %f not in (0,1]", ErrConfig, c.SoilHealth.Rate)
	}
	return nil
}
