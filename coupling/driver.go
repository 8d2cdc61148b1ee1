// Package coupling runs the ecohydrology model and a farmer decision model
// against each other, one farming year at a time.
package coupling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/ecohyd"
	"github.com/WylieMabel/TreesAndThat/season"
	"github.com/WylieMabel/TreesAndThat/social"
)

// Climate supplies each simulation year's daily temperatures [°C]
type Climate interface {
	Year(i int, shift float64) (avg, tmax, tmin []float64, err error)
	Years() int
}

// Params coupled run settings
type Params struct {
	Years       int     `yaml:"years"`
	SpinUp      int     `yaml:"spin_up"`      // years run on the initial mask and first climate year
	TempShift   float64 `yaml:"temp_shift"`   // [°C] added to every temperature
	YieldFactor float64 `yaml:"yield_factor"` // yield per unit biomass
}

// DefaultParams ten years after a five year spin-up
func DefaultParams() Params {
	return Params{Years: 10, SpinUp: 5, YieldFactor: 1.}
}

// ClimateScenario names the storm regime of a run
func ClimateScenario(c season.Config) string {
	if c.Wet.MeanDepth == season.DefaultConfig().Wet.MeanDepth {
		return "Current Climate"
	}
	return "Warm Climate"
}

// NewMeta labels a run with a fresh unique identifier
func NewMeta(lead int, socialScenario, climateScenario string) Meta {
	return Meta{LeadFarmers: lead, SocialScenario: socialScenario, ClimateScenario: climateScenario, UniqueID: uuid.NewString()}
}

// Driver couples the models
type Driver struct {
	eco  *ecohyd.Model
	soc  social.Model
	clim Climate
	rec  Recorder
	p    Params
	log  zerolog.Logger

	// OnYear, when set, is called after every recorded year, spin-up excluded
	OnYear func(year int, h *ecohyd.Harvest)
}

// NewDriver checks the climate covers the run
func NewDriver(eco *ecohyd.Model, soc social.Model, clim Climate, rec Recorder, p Params, log zerolog.Logger) (*Driver, error) {
	if p.Years < 0 || p.SpinUp < 0 {
		return nil, fmt.Errorf("coupling.NewDriver: %d years, %d spin-up years", p.Years, p.SpinUp)
	}
	if n := clim.Years(); n < p.Years || (p.SpinUp > 0 && n < 1) {
		return nil, fmt.Errorf("coupling.NewDriver: climate holds %d years, %d required", n, p.Years)
	}
	return &Driver{eco: eco, soc: soc, clim: clim, rec: rec, p: p, log: log}, nil
}

func (d *Driver) step(fields []social.Field, cyr int) (*ecohyd.Harvest, error) {
	g := d.eco.Grid()
	mask, err := Mask(fields, g.Rows, g.Cols)
	if err != nil {
		return nil, err
	}
	avg, tmax, tmin, err := d.clim.Year(cyr, d.p.TempShift)
	if err != nil {
		return nil, err
	}
	return d.eco.Stepper(mask, avg, tmax, tmin)
}

// rainfall totals the last year of the model's daily history [mm]
func (d *Driver) rainfall() float64 {
	h := d.eco.History()
	if len(h) > season.DaysPerYear {
		h = h[len(h)-season.DaysPerYear:]
	}
	s := 0.
	for _, r := range h {
		s += r.Rain
	}
	return s
}

// Run spins the ecohydrology up, then alternates annual loops and farming
// years. ctx is only checked between years.
func (d *Driver) Run(ctx context.Context) error {
	fields := d.soc.Fields()
	if err := d.rec.Record(0, 0., fields); err != nil {
		return err
	}

	for i := 0; i < d.p.SpinUp; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := d.step(fields, 0); err != nil {
			return fmt.Errorf("spin-up year %d: %w", i, err)
		}
		d.log.Debug().Int("spinup", i).Msg("spin-up year complete")
	}

	g := d.eco.Grid()
	for yr := 0; yr < d.p.Years; yr++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, err := d.step(fields, yr)
		if err != nil {
			return fmt.Errorf("year %d: %w", yr, err)
		}
		rain := d.rainfall()

		y, err := Yields(fields, h.Biomass, g.Rows, g.Cols, d.p.YieldFactor)
		if err != nil {
			return fmt.Errorf("year %d: %w", yr, err)
		}
		if err := d.soc.SetYields(y); err != nil {
			return fmt.Errorf("year %d: %w", yr, err)
		}
		if err := d.soc.Step(); err != nil {
			return fmt.Errorf("year %d: %w", yr, err)
		}
		fields = d.soc.Fields()
		if err := d.rec.Record(yr+1, rain, fields); err != nil {
			return err
		}

		nw := 0
		for _, f := range fields {
			if f.ImplementsWSA {
				nw++
			}
		}
		d.log.Info().Int("year", yr+1).Float64("rainfall", rain).Int("wsa", nw).Msg("farming year complete")
		if d.OnYear != nil {
			d.OnYear(yr+1, h)
		}
	}
	return nil
}
