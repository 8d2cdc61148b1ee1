// Package soil integrates the root-zone water balance of every cell and
// advances the simulation clock.
package soil

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/grid"
)

const hoursPerYear = 24. * 365.

// Moisture bucket soil moisture model
type Moisture struct {
	tab [grid.NumPFT]Params
	par []Params // [cell]
	pft []int    // [cell]
	dt  float64  // [hr]
	log zerolog.Logger
}

// New builds the component; dt is the integration step [hr]
func New(g *grid.State, tab [grid.NumPFT]Params, dt float64, log zerolog.Logger) (*Moisture, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	m := &Moisture{tab: tab, dt: dt, log: log}
	if dt <= 0. {
		log.Warn().Float64("dt", dt).Msg("non-positive soil moisture step, the clock will not advance")
	}
	m.Initialize(g)
	return m, nil
}

// Initialize re-derives per-cell parameters from the functional type field.
// Soil water storage carries over.
func (m *Moisture) Initialize(g *grid.State) {
	nc := g.NumCells()
	if len(m.par) != nc {
		m.par, m.pft = make([]Params, nc), make([]int, nc)
	}
	for c, t := range g.PFT {
		if t < 0 || t >= grid.NumPFT {
			m.log.Warn().Int("cell", c).Int("pft", t).Msg("unknown functional type, treated as bare")
			t = grid.Bare
		}
		m.par[c], m.pft[c] = m.tab[t], t
	}
}

// Step integration step [hr]
func (m *Moisture) Step() float64 { return m.dt }

// Update integrates one step from the initial saturation field and returns
// the advanced clock [yr]. The new saturation becomes the next step's
// initial saturation.
func (m *Moisture) Update(g *grid.State, t float64) float64 {
	dtd := m.dt / 24.
	for c, p := range m.par {
		r := res{cap: p.Porosity * p.Zr}
		r.sto = clamp01(g.InitialSaturation[c]) * r.cap

		ro := r.overflow(g.RainfallDepth[c] * dtd) // infiltration excess
		s := r.saturation()

		sh := g.SoilHealth[c]
		if sh <= 0. {
			sh = 1.
		}
		pet, cov := g.PET[c]*dtd, clamp01(g.CoverFraction[c])
		if m.pft[c] == grid.Bare {
			cov = 0.
		}
		tr := pet * cov * p.stomatal(s)                          // transpiration
		ev := pet * (1. - cov) * p.Fbare * p.evaporative(s) / sh // soil evaporation, reduced by soil health
		lk := p.leakage(s) * dtd / sh                            // drainage below the root zone
		if x := (s - p.Sfc) * r.cap; lk > x {
			lk = math.Max(x, 0.) // drains no further than field capacity
		}

		if dem := tr + ev + lk; dem > 0. {
			if d := r.overflow(-dem); d < 0. {
				f := (dem + d) / dem // supply-limited
				tr, ev, lk = tr*f, ev*f, lk*f
			}
		}

		s = r.saturation()
		g.Saturation[c] = s
		g.InitialSaturation[c] = s
		g.Evapotranspiration[c] = (tr + ev) / dtdOr1(dtd)
		g.Runoff[c] = ro / dtdOr1(dtd)
		g.Leakage[c] = lk / dtdOr1(dtd)
		if m.pft[c] == grid.Bare {
			g.WaterStress[c] = 0.
		} else {
			g.WaterStress[c] = p.stress(s)
		}
	}
	return t + m.dt/hoursPerYear
}

func dtdOr1(d float64) float64 {
	if d > 0. {
		return d
	}
	return 1.
}

func clamp01(x float64) float64 {
	return math.Max(0., math.Min(1., x))
}

// stomatal fraction of potential transpiration
func (p Params) stomatal(s float64) float64 {
	if p.Sstar <= p.Sw {
		return 1.
	}
	return clamp01((s - p.Sw) / (p.Sstar - p.Sw))
}

// evaporative fraction of potential soil evaporation
func (p Params) evaporative(s float64) float64 {
	if p.Sfc <= p.Sh {
		return 1.
	}
	return clamp01((s - p.Sh) / (p.Sfc - p.Sh))
}

// leakage exponential drainage above field capacity [mm/day] (Laio et al., 2001)
func (p Params) leakage(s float64) float64 {
	if s <= p.Sfc || p.Sfc >= 1. {
		return 0.
	}
	if p.Beta == 0. {
		return p.Ks * (s - p.Sfc) / (1. - p.Sfc)
	}
	return p.Ks * (math.Exp(p.Beta*(s-p.Sfc)) - 1.) / (math.Exp(p.Beta*(1.-p.Sfc)) - 1.)
}

// stress static water stress (Porporato et al., 2001)
func (p Params) stress(s float64) float64 {
	switch {
	case s <= p.Sw:
		return 1.
	case s >= p.Sstar:
		return 0.
	}
	return math.Pow((p.Sstar-s)/(p.Sstar-p.Sw), p.Q)
}
