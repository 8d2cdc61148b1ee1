// Package veg grows live biomass on every cell from its actual
// evapotranspiration, decaying it under water stress and dormancy.
package veg

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/grid"
)

const kext = .75 // light extinction coefficient

// Vegetation live biomass dynamics
type Vegetation struct {
	tab [grid.NumPFT]Params
	par []Params
	pft []int
	log zerolog.Logger
}

// New builds and initialises the component
func New(g *grid.State, tab [grid.NumPFT]Params, log zerolog.Logger) (*Vegetation, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	v := &Vegetation{tab: tab, log: log}
	v.Initialize(g)
	return v, nil
}

// Initialize re-reads the functional type of every cell and resets its
// biomass to that type's initial value (the harvest).
func (v *Vegetation) Initialize(g *grid.State) {
	nc := g.NumCells()
	if len(v.par) != nc {
		v.par, v.pft = make([]Params, nc), make([]int, nc)
	}
	for c, t := range g.PFT {
		if t < 0 || t >= grid.NumPFT {
			v.log.Warn().Int("cell", c).Int("pft", t).Msg("unknown functional type, treated as bare")
			t = grid.Bare
		}
		v.par[c], v.pft[c] = v.tab[t], t
		g.LiveBiomass[c] = v.par[c].Binit
		v.canopy(g, c)
	}
}

func (v *Vegetation) canopy(g *grid.State, c int) {
	p := v.par[c]
	lai := math.Min(p.Cb*g.LiveBiomass[c], p.LAImax)
	g.LiveLAI[c] = lai
	g.CoverFraction[c] = 1. - math.Exp(-kext*lai)
}

// Update advances biomass one day
func (v *Vegetation) Update(g *grid.State) {
	for c, p := range v.par {
		b := g.LiveBiomass[c]
		if v.pft[c] == grid.Bare {
			b = 0.
		} else if g.PET30[c] >= p.PETThreshold {
			sh := g.SoilHealth[c]
			if sh <= 0. {
				sh = 1.
			}
			b += p.WUE*g.Evapotranspiration[c]*sh - p.Kws*g.WaterStress[c]*b
		} else {
			b -= p.Kdd * b
		}
		if b < 0. || math.IsNaN(b) {
			b = 0.
		}
		g.LiveBiomass[c] = b
		v.canopy(g, c)
	}
}
