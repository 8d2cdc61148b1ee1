// Package ecohyd runs the annual, daily-resolution ecohydrology loop over a
// grid of farm plots: radiation, potential evapotranspiration, rainfall,
// soil moisture and vegetation, switched between the growing season and the
// dry canicula.
package ecohyd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/evap"
	"github.com/WylieMabel/TreesAndThat/grid"
	"github.com/WylieMabel/TreesAndThat/precip"
	"github.com/WylieMabel/TreesAndThat/radiation"
	"github.com/WylieMabel/TreesAndThat/season"
	"github.com/WylieMabel/TreesAndThat/soil"
	"github.com/WylieMabel/TreesAndThat/veg"
)

// Model owns the grid state and the physical components for the life of a run
type Model struct {
	cfg  Config
	g    *grid.State
	sch  *season.Scheduler
	rad  *radiation.Radiation
	pet  *evap.PET
	sm   *soil.Moisture
	veg  *veg.Vegetation
	rain precip.Source

	t    float64 // [yr] authoritative clock
	year int     // completed annual loops
	hist []DayRecord
	log  zerolog.Logger
}

// Option modifies model construction
type Option func(*Model)

// WithLogger sets the logger, zerolog.Nop() otherwise
func WithLogger(l zerolog.Logger) Option { return func(m *Model) { m.log = l } }

// WithRain replaces the configured storm generator
func WithRain(src precip.Source) Option { return func(m *Model) { m.rain = src } }

// WithGrid supplies the raster, elevation included, instead of the default valley
func WithGrid(g *grid.State) Option { return func(m *Model) { m.g = g } }

// New builds the grid and initialises every component in dependency order
func New(cfg Config, opts ...Option) (*Model, error) {
	gd, err := cfg.LoadGridDef()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Model{cfg: cfg, t: cfg.StartTime, log: zerolog.Nop()}
	for _, o := range opts {
		o(m)
	}
	if m.g == nil {
		if gd != nil {
			m.g = gd.Raster()
		} else {
			m.g = grid.NewRaster(cfg.Rows, cfg.Cols, cfg.CellSize)
		}
		m.g.Valley()
	}
	g := m.g
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if m.sch, err = season.NewScheduler(cfg.Season); err != nil {
		return nil, err
	}

	lat := cfg.Latitude
	if u := cfg.UTM; u != nil {
		if lat, err = radiation.Latitude(u.Easting, u.Northing, u.Zone, u.Northern); err != nil {
			return nil, err
		}
	}
	m.rad = radiation.New(g, lat, m.t)
	m.rad.Update(g)

	in := cfg.Initial
	m.pet = evap.New(g, lat, m.t, in.Tavg, in.Tmax, in.Tmin)

	for _, fv := range []struct {
		f grid.Field
		v float64
	}{
		{grid.InitialSaturation, in.Saturation},
		{grid.Saturation, in.Saturation},
		{grid.RainfallDepth, in.Rainfall},
		{grid.CoverFraction, in.Cover},
		{grid.LiveLAI, in.LAI},
		{grid.SoilHealth, cfg.SoilHealth.Lower},
	} {
		if err := g.Fill(fv.f, fv.v); err != nil {
			return nil, err
		}
	}
	if err := g.SetPFT(make([]int, g.NumCells())); err != nil { // grass everywhere
		return nil, err
	}

	if m.sm, err = soil.New(g, cfg.Soil, cfg.SoilStep, m.log.With().Str("component", "soil").Logger()); err != nil {
		return nil, fmt.Errorf("ecohyd.New soil moisture: %w", err)
	}
	if m.veg, err = veg.New(g, cfg.Veg, m.log.With().Str("component", "vegetation").Logger()); err != nil {
		return nil, fmt.Errorf("ecohyd.New vegetation: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if m.rain == nil {
		pl := m.log.With().Str("component", "precip").Logger()
		switch cfg.RainMode {
		case RainOnTheFly:
			m.rain = precip.NewOnTheFly(cfg.Season, cfg.Seed, pl)
		default:
			m.rain = precip.NewSeries(cfg.Season, cfg.Seed, pl)
		}
	}

	m.log.Debug().
		Int("cells", g.NumCells()).
		Float64("latitude", lat).
		Float64("t0", m.t).
		Str("rain", cfg.RainMode).
		Msg("ecohydrology model initialised")
	return m, nil
}

// Grid returns the live grid state
func (m *Model) Grid() *grid.State { return m.g }

// Clock current time [yr]
func (m *Model) Clock() float64 { return m.t }

// Year number of completed annual loops
func (m *Model) Year() int { return m.year }

// Config returns the model settings
func (m *Model) Config() Config { return m.cfg }

// History returns every daily record since construction
func (m *Model) History() []DayRecord { return append([]DayRecord(nil), m.hist...) }
