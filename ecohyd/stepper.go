package ecohyd

import (
	"errors"
	"fmt"

	"github.com/WylieMabel/TreesAndThat/season"
)

var (
	ErrMaskShape     = errors.New("adoption mask does not match the grid")
	ErrForcingLength = errors.New("temperature forcing must hold one value per day of year")
)

// Stepper runs one year of the daily loop. mask flags the plots practising
// WSA this year (row-major over the grid cells); avg, tmax and tmin are the
// day's temperatures [°C] indexed by loop day. Shapes are checked before any
// state is touched.
func (m *Model) Stepper(mask []bool, avg, tmax, tmin []float64) (*Harvest, error) {
	g := m.g
	if nc := g.NumCells(); len(mask) != nc {
		return nil, fmt.Errorf("%w: %d entries for %d cells", ErrMaskShape, len(mask), nc)
	}
	for _, f := range []struct {
		n string
		v []float64
	}{{"avg", avg}, {"max", tmax}, {"min", tmin}} {
		if len(f.v) != season.DaysPerYear {
			return nil, fmt.Errorf("%w: %s temperature has %d values", ErrForcingLength, f.n, len(f.v))
		}
	}

	h := &Harvest{
		Year: m.year,
		Stats: YearStats{
			WaterStress: make([]float64, g.NumCells()),
			Days:        make([]DayRecord, 0, season.DaysPerYear),
		},
	}
	ylog := m.log.With().Int("year", m.year).Logger()

	m.sch.BeginYear()
	m.rain.BeginYear()
	for day := 0; day < season.DaysPerYear; day++ {
		t0 := m.t
		j := season.Julian(t0)

		if e := m.sch.Dispatch(j); e != season.NoEvent {
			m.transition(e, mask, h)
			ylog.Debug().Int("julian", j).Stringer("event", e).Msg("season transition")
		}

		m.rad.Update(g)
		m.pet.Update(g, avg[day], tmax[day], tmin[day])

		r := m.sch.Regime(j)
		p := m.rain.Depth(j, r)
		for c := range g.RainfallDepth {
			g.RainfallDepth[c] = p
		}

		// only a strictly advancing clock reaches radiation and PET, on the next day
		if t1 := m.sm.Update(g, t0); t1 > t0 {
			m.t = t1
			m.rad.SetTime(t1)
			m.pet.SetTime(t1)
		} else {
			ylog.Warn().Int("day", day).Float64("t", t0).Float64("t1", t1).Msg("soil moisture clock did not advance")
		}

		m.veg.Update(g)
		m.record(h, day, j, t0, p, r, mask)
	}

	for _, e := range m.sch.Pending() {
		ylog.Warn().Stringer("event", e).Msg("season transition never reached, forced at year end")
		m.transition(e, mask, h)
	}

	sh := m.cfg.SoilHealth
	for c, wsa := range mask {
		x := sh.Lower
		if wsa {
			x = sh.Upper
		}
		g.SoilHealth[c] += (x - g.SoilHealth[c]) * sh.Rate
	}

	m.year++
	ylog.Debug().Float64("rainfall", h.Stats.Rainfall).Float64("t", m.t).Msg("year complete")
	return h, nil
}

// transition applies a season event: functional types from the mask, the
// reporting snapshot, then component re-initialisation.
func (m *Model) transition(e season.Event, mask []bool, h *Harvest) {
	g := m.g
	switch e {
	case season.CaniculaStart:
		h.Biomass = append([]float64(nil), g.LiveBiomass...)
	case season.CaniculaEnd:
		h.SoilMoisture = append([]float64(nil), g.Saturation...)
	default:
		return
	}
	copy(g.PFT, season.FunctionalTypes(e, mask))
	if m.cfg.ReinitSoil {
		m.sm.Initialize(g)
	}
	m.veg.Initialize(g)
}
