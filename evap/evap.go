// Package evap computes the daily potential evapotranspiration of every cell
// and its trailing 30-day mean.
package evap

import (
	"math"

	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"

	"github.com/WylieMabel/TreesAndThat/grid"
	"github.com/WylieMabel/TreesAndThat/season"
)

const window = 30 // [days] running mean length

// Bristow-Campbell transmissivity coefficients (tx-tn in °C)
const (
	bcA = .75
	bcB = .01
	bcC = 2.4
)

// Makkink coefficients
const (
	alpha    = .61
	beta     = -1.2e-4 // [m/d]
	pressure = 101300. // [Pa]
)

// PET Makkink potential evapotranspiration driven by the global radiation
// estimated from the diurnal temperature range
type PET struct {
	t   float64
	si  solirrad.SolIrad // horizontal surface at the grid latitude
	buf [][window]float64
	n   int // days held in buf
	i   int // next slot
}

// New builds the component and writes an initial PET field from the given
// temperatures [°C]; the 30-day mean starts equal to that value.
// g.RadiationRatio is read as the slope correction of each cell.
func New(g *grid.State, latitude, t0, tavg, tmax, tmin float64) *PET {
	p := &PET{
		t:   t0,
		si:  solirrad.New(latitude, 0., 0.),
		buf: make([][window]float64, g.NumCells()),
	}
	p.Update(g, tavg, tmax, tmin)
	copy(g.PET30, g.PET)
	return p
}

// SetTime moves the component clock [yr]
func (p *PET) SetTime(t float64) { p.t = t }

// Time component clock [yr]
func (p *PET) Time() float64 { return p.t }

// Julian day of the component clock
func (p *PET) Julian() int { return season.Julian(p.t) }

// Global radiation on a horizontal surface [MJ/m²/day] for the day of the
// component clock
func (p *PET) Global(tmax, tmin float64) float64 {
	if tmax <= tmin {
		return 0.
	}
	return p.si.GlobalFromPotential(tmax, tmin, bcA, bcB, bcC, p.Julian()+1)
}

// Rate potential evapotranspiration [mm/day] from global radiation [MJ/m²/day]
// and mean temperature [°C]
func Rate(kg, tavg float64) float64 {
	e := pet.Makkink(kg, tavg, pressure, alpha, beta) * 1000.
	if math.IsNaN(e) || e < 0. {
		return 0.
	}
	return e
}

// Update writes the PET rate and its 30-day mean for one day's temperatures [°C]
func (p *PET) Update(g *grid.State, tavg, tmax, tmin float64) {
	kg := p.Global(tmax, tmin)
	for c := range p.buf {
		e := Rate(kg*g.RadiationRatio[c], tavg)
		g.PET[c] = e
		p.buf[c][p.i] = e
	}
	p.i = (p.i + 1) % window
	if p.n < window {
		p.n++
	}
	for c := range p.buf {
		s := 0.
		for k := 0; k < p.n; k++ {
			s += p.buf[c][k]
		}
		g.PET30[c] = s / float64(p.n)
	}
}
